package core

import "sort"

// Degree returns the number of conflicts of v in the full graph.
// Out-of-range ids report 0.
func (g *Graph) Degree(v int) int {
	if v < 0 || v >= g.n {
		return 0
	}
	return len(g.adj[v])
}

// Neighbors returns v's neighbors sorted ascending. The slice is shared with
// the graph and must not be modified.
func (g *Graph) Neighbors(v int) []int {
	if v < 0 || v >= g.n {
		return nil
	}
	return g.adj[v]
}

// HasEdge reports whether u and v conflict.
//
// Complexity: O(log min(deg u, deg v)).
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n || u == v {
		return false
	}
	if len(g.adj[v]) < len(g.adj[u]) {
		u, v = v, u
	}
	nb := g.adj[u]
	k := sort.SearchInts(nb, v)

	return k < len(nb) && nb[k] == v
}

// Edges returns all edges in natural (U, V) order with U < V.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u := 0; u < g.n; u++ {
		for _, v := range g.adj[u] {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}

	return out
}

// Nodes returns the node set: ids with at least one conflict, ascending.
func (g *Graph) Nodes() []int {
	var out []int
	for v := 0; v < g.n; v++ {
		if len(g.adj[v]) > 0 {
			out = append(out, v)
		}
	}

	return out
}

// Isolated returns ids with no conflict at all, ascending.
func (g *Graph) Isolated() []int {
	var out []int
	for v := 0; v < g.n; v++ {
		if len(g.adj[v]) == 0 {
			out = append(out, v)
		}
	}

	return out
}
