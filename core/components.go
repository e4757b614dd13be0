package core

import "slices"

// Components finds the connected components of the subgraph induced by the
// nodes for which keep returns true (every node when keep is nil).
//
// Each component is sorted ascending; components are ordered by their smallest
// member. Kept nodes without kept neighbors form singleton components.
//
// Time:   O(N + E).
// Memory: O(N) for visited flags and output.
func (g *Graph) Components(keep func(v int) bool) [][]int {
	seen := make([]bool, g.n)
	var comps [][]int

	for v0 := 0; v0 < g.n; v0++ {
		if seen[v0] || (keep != nil && !keep(v0)) {
			continue
		}
		// BFS to collect component
		queue := []int{v0}
		seen[v0] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, w := range g.adj[queue[qi]] {
				if seen[w] || (keep != nil && !keep(w)) {
					continue
				}
				seen[w] = true
				queue = append(queue, w)
			}
		}
		slices.Sort(queue)
		comps = append(comps, queue)
	}

	return comps
}
