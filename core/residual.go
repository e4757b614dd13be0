package core

import "math/rand"

// Residual is a mutable liveness view over an immutable Graph.
//
// Removing a node marks it dead and decrements the live degree of its live
// neighbors; the Graph itself is never touched, so several Residuals may share
// one Graph. A Residual is not safe for concurrent use: exactly one strategy
// owns it.
type Residual struct {
	g         *Graph
	alive     []bool
	deg       []int
	liveEdges int

	// order holds live nodes densely for O(1) sampling; pos[v] is v's slot
	// in order, or -1 once v is dead.
	order []int
	pos   []int

	onDegree func(v, deg int)
}

// NewResidual returns a view in which the nodes accepted by keep are live
// (every node when keep is nil). Edges touching a dropped node never count.
//
// Complexity: O(N + E).
func NewResidual(g *Graph, keep func(v int) bool) *Residual {
	r := &Residual{
		g:     g,
		alive: make([]bool, g.n),
		deg:   make([]int, g.n),
		order: make([]int, 0, g.n),
		pos:   make([]int, g.n),
	}
	var v int
	for v = 0; v < g.n; v++ {
		r.pos[v] = -1
		if keep == nil || keep(v) {
			r.alive[v] = true
			r.pos[v] = len(r.order)
			r.order = append(r.order, v)
		}
	}
	for v = 0; v < g.n; v++ {
		if !r.alive[v] {
			continue
		}
		for _, w := range g.adj[v] {
			if r.alive[w] {
				r.deg[v]++
			}
		}
		r.liveEdges += r.deg[v]
	}
	r.liveEdges /= 2

	return r
}

// OnDegreeChange registers fn, called with (v, newDegree) whenever a live
// node's degree drops because a neighbor was removed. Pass nil to unset.
func (r *Residual) OnDegreeChange(fn func(v, deg int)) { r.onDegree = fn }

// Alive reports whether v is still live.
func (r *Residual) Alive(v int) bool { return v >= 0 && v < r.g.n && r.alive[v] }

// Degree returns v's live degree; dead nodes report 0.
func (r *Residual) Degree(v int) int {
	if !r.Alive(v) {
		return 0
	}
	return r.deg[v]
}

// LiveCount returns the number of live nodes.
func (r *Residual) LiveCount() int { return len(r.order) }

// LiveEdges returns the number of edges with both endpoints live.
func (r *Residual) LiveEdges() int { return r.liveEdges }

// LiveNeighbors calls fn for each live neighbor of v in ascending order.
func (r *Residual) LiveNeighbors(v int, fn func(w int)) {
	for _, w := range r.g.Neighbors(v) {
		if r.alive[w] {
			fn(w)
		}
	}
}

// LiveNodes returns live nodes ascending.
func (r *Residual) LiveNodes() []int {
	out := make([]int, 0, len(r.order))
	for v := 0; v < r.g.n; v++ {
		if r.alive[v] {
			out = append(out, v)
		}
	}
	return out
}

// Sample returns a uniformly random live node, or -1 when none is left.
func (r *Residual) Sample(rng *rand.Rand) int {
	if len(r.order) == 0 {
		return -1
	}
	return r.order[rng.Intn(len(r.order))]
}

// Remove kills v. It returns false when v was already dead.
//
// Complexity: O(deg v).
func (r *Residual) Remove(v int) bool {
	if !r.Alive(v) {
		return false
	}
	r.alive[v] = false

	last := r.order[len(r.order)-1]
	r.order[r.pos[v]] = last
	r.pos[last] = r.pos[v]
	r.order = r.order[:len(r.order)-1]
	r.pos[v] = -1

	for _, w := range r.g.adj[v] {
		if !r.alive[w] {
			continue
		}
		r.deg[w]--
		r.liveEdges--
		if r.onDegree != nil {
			r.onDegree(w, r.deg[w])
		}
	}
	r.deg[v] = 0

	return true
}

// RemoveClosed kills v and every live neighbor of v. It returns the removed
// neighbors in ascending order (v itself excluded).
func (r *Residual) RemoveClosed(v int) []int {
	if !r.Alive(v) {
		return nil
	}
	var nbrs []int
	r.LiveNeighbors(v, func(w int) { nbrs = append(nbrs, w) })
	r.Remove(v)
	for _, w := range nbrs {
		r.Remove(w)
	}

	return nbrs
}
