package extract

import (
	"container/heap"
	"context"

	"github.com/katalvlaran/primerlib/core"
)

// elimination implements the three DeLOB-style strategies: pick a live node,
// accept it, remove it and its live neighbors, until no live edge is left;
// then accept the remaining live nodes in index order.
//
// They differ only in how the node is picked:
//   - RandomElimination: uniform over live nodes (seeded).
//   - MinDegree: lowest live degree, ties to the lowest index.
//   - MinDegreeNeighbor: within the minimum-degree tier, lowest mean live
//     degree of the neighbors (0 without neighbors), ties to the lowest index.
type elimination struct {
	name Name
}

func (e elimination) Name() Name     { return e.name }
func (elimination) NeedsGraph() bool { return true }

func (e elimination) Extract(ctx context.Context, in Input) (Result, error) {
	if err := in.check(true); err != nil {
		return Result{}, err
	}
	var (
		sel   = newSelection(ctx, &in)
		valid = validMask(&in)
		r     = core.NewResidual(in.Graph, func(v int) bool { return valid[v] })
	)

	// Conflict-free candidates go first and leave the residual.
	var free []int
	for _, v := range r.LiveNodes() {
		if r.Degree(v) == 0 {
			free = append(free, v)
		}
	}
	for _, v := range free {
		if sel.cancelled() {
			return sel.result(), nil
		}
		sel.accept(v)
		r.Remove(v)
	}

	pick := e.picker(&in, r)
	for r.LiveEdges() > 0 {
		if sel.cancelled() {
			return sel.result(), nil
		}
		v := pick()
		sel.accept(v)
		removed := r.RemoveClosed(v)
		in.Metrics.AddIterations(1)
		for range removed {
			in.Metrics.RejectDistance()
		}
	}

	sel.acceptChecked(r.LiveNodes())

	return sel.result(), nil
}

// picker returns the node-selection function for e. The returned function
// is only called while r has at least one live edge.
func (e elimination) picker(in *Input, r *core.Residual) func() int {
	switch e.name {
	case RandomElimination:
		rng := rngFromSeed(in.Seed)
		return func() int { return r.Sample(rng) }
	case MinDegreeNeighbor:
		q := newDegreeQueue(r)
		return func() int { return q.popByNeighbors(r) }
	default:
		q := newDegreeQueue(r)
		return func() int { return q.popMin(r) }
	}
}

// degreeEntry is a (degree, node) snapshot; it is stale when the node died or
// its degree changed since the push.
type degreeEntry struct {
	deg, v int
}

type degreeHeap []degreeEntry

func (h degreeHeap) Len() int { return len(h) }
func (h degreeHeap) Less(i, j int) bool {
	if h[i].deg != h[j].deg {
		return h[i].deg < h[j].deg
	}
	return h[i].v < h[j].v
}
func (h degreeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *degreeHeap) Push(x any)   { *h = append(*h, x.(degreeEntry)) }
func (h *degreeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// degreeQueue is a lazy min-heap over live nodes with live degree >= 1.
// Every degree drop pushes a fresh entry; stale entries are skipped on pop.
type degreeQueue struct {
	h degreeHeap
}

func newDegreeQueue(r *core.Residual) *degreeQueue {
	q := &degreeQueue{}
	for _, v := range r.LiveNodes() {
		if d := r.Degree(v); d > 0 {
			q.h = append(q.h, degreeEntry{deg: d, v: v})
		}
	}
	heap.Init(&q.h)
	r.OnDegreeChange(func(v, deg int) {
		if deg > 0 {
			heap.Push(&q.h, degreeEntry{deg: deg, v: v})
		}
	})
	return q
}

// peek discards stale entries and returns the current minimum, or false.
func (q *degreeQueue) peek(r *core.Residual) (degreeEntry, bool) {
	for q.h.Len() > 0 {
		top := q.h[0]
		if r.Alive(top.v) && r.Degree(top.v) == top.deg {
			return top, true
		}
		heap.Pop(&q.h)
	}
	return degreeEntry{}, false
}

func (q *degreeQueue) popMin(r *core.Residual) int {
	top, _ := q.peek(r)
	heap.Pop(&q.h)
	return top.v
}

// popByNeighbors pops the whole minimum-degree tier, picks the member whose
// live neighbors have the lowest mean live degree and pushes the rest back.
// Tier members share one degree, so comparing neighbor-degree sums is exact.
func (q *degreeQueue) popByNeighbors(r *core.Residual) int {
	first, _ := q.peek(r)
	var tier []degreeEntry
	for {
		top, ok := q.peek(r)
		if !ok || top.deg != first.deg {
			break
		}
		heap.Pop(&q.h)
		tier = append(tier, top)
	}

	best, bestScore := -1, 0
	for _, e := range tier {
		score := 0
		r.LiveNeighbors(e.v, func(w int) { score += r.Degree(w) })
		// Entries pop in ascending index order, so strict < keeps the lowest.
		if best < 0 || score < bestScore {
			best, bestScore = e.v, score
		}
	}
	for _, e := range tier {
		if e.v != best {
			heap.Push(&q.h, e)
		}
	}
	return best
}
