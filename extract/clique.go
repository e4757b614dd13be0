package extract

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/metrics"
)

// checkEvery is the number of search nodes between context polls.
const checkEvery = 1024

// exactClique finds a maximum (weight) clique of the compatibility graph,
// that is a maximum (weight) independent set of the conflict graph.
//
// Search: branch and bound per connected component over bitsets of the
// compatibility graph, bounded by a greedy coloring in the manner of Tomita's
// MCQ. Color classes are cliques of the conflict graph, so on the sparse
// conflict graphs of real pools the bound stays close to the optimum.
// Vertices are tried from the highest color down and a branch is cut once
// score(R) + bound(color) <= best.
//
// Cardinality uses unit weights. The weighted variant gives each candidate the
// sum of its exact distances to every compatible valid candidate; components
// are ordered by descending weight before coloring.
//
// The incumbent starts as a greedy clique. Top-level branches run on up to
// Workers goroutines sharing one incumbent: writes under a mutex, the score
// read lock-free for pruning.
//
// Memory: O(k²/64) words per component of k nodes.
type exactClique struct {
	name     Name
	weighted bool
}

func (e exactClique) Name() Name     { return e.name }
func (exactClique) NeedsGraph() bool { return true }

func (e exactClique) Extract(ctx context.Context, in Input) (Result, error) {
	if err := in.check(true); err != nil {
		return Result{}, err
	}
	var (
		sel             = newSelection(ctx, &in)
		valid           = validMask(&in)
		isolated, comps = splitComponents(in.Graph, valid)
		weights         []int64
	)
	if !sel.acceptChecked(isolated) {
		return sel.result(), nil
	}

	if e.weighted && len(comps) > 0 {
		var err error
		if weights, err = distanceWeights(ctx, &in, valid); err != nil {
			// Only cancellation fails here.
			sel.stopped = true
			return sel.result(), nil
		}
	}

	local := make([]int, in.Graph.Len())
	for i := range local {
		local[i] = -1
	}
	var stop atomic.Bool
	for _, comp := range comps {
		if sel.cancelled() {
			break
		}
		order := comp
		if weights != nil {
			order = slices.Clone(comp)
			slices.SortStableFunc(order, func(a, b int) int {
				switch {
				case weights[a] > weights[b]:
					return -1
				case weights[a] < weights[b]:
					return 1
				}
				return a - b
			})
		}

		lg := newLocalGraph(in.Graph, order, local, weights)
		best := lg.search(ctx, workersOf(&in), in.Metrics, &stop)

		members := make([]int, len(best))
		for k, lv := range best {
			members[k] = order[lv]
		}
		slices.Sort(members)
		for _, v := range members {
			sel.accept(v)
		}
		for range len(comp) - len(members) {
			in.Metrics.RejectDistance()
		}
		if stop.Load() {
			sel.stopped = true
			break
		}
	}

	return sel.result(), nil
}

// localGraph is one component re-indexed 0..k-1 with compatibility bitsets.
type localGraph struct {
	k      int
	compat []core.Bitset
	w      []int64 // nil means unit weights
}

// newLocalGraph builds the compatibility graph on order. local is scratch of
// size N filled with -1; it is restored before return.
func newLocalGraph(g *core.Graph, order []int, local []int, weights []int64) *localGraph {
	k := len(order)
	for i, v := range order {
		local[v] = i
	}
	lg := &localGraph{k: k, compat: make([]core.Bitset, k)}
	if weights != nil {
		lg.w = make([]int64, k)
	}
	for i, v := range order {
		b := core.NewBitset(k)
		for j := 0; j < k; j++ {
			if j != i {
				b.Set(j)
			}
		}
		for _, u := range g.Neighbors(v) {
			if j := local[u]; j >= 0 {
				b.Clear(j)
			}
		}
		lg.compat[i] = b
		if weights != nil {
			lg.w[i] = weights[v]
		}
	}
	for _, v := range order {
		local[v] = -1
	}
	return lg
}

func (lg *localGraph) weight(v int) int64 {
	if lg.w == nil {
		return 1
	}
	return lg.w[v]
}

func (lg *localGraph) weightOf(p core.Bitset) int64 {
	if lg.w == nil {
		return int64(p.Count())
	}
	var s int64
	for v := p.Next(0); v >= 0; v = p.Next(v + 1) {
		s += lg.w[v]
	}
	return s
}

// greedyClique adds vertices in local order while they stay compatible.
func (lg *localGraph) greedyClique() ([]int, int64) {
	var (
		members []int
		score   int64
		p       = core.NewBitset(lg.k)
	)
	for v := 0; v < lg.k; v++ {
		p.Set(v)
	}
	for v := p.Next(0); v >= 0; v = p.Next(v + 1) {
		members = append(members, v)
		score += lg.weight(v)
		p.And(lg.compat[v], p)
	}
	return members, score
}

// incumbent is the best clique found so far in one component.
type incumbent struct {
	mu      sync.Mutex
	score   atomic.Int64
	members []int
}

func (b *incumbent) offer(score int64, r []int) {
	if score <= b.score.Load() {
		return
	}
	b.mu.Lock()
	if score > b.score.Load() {
		b.members = append(b.members[:0], r...)
		b.score.Store(score)
	}
	b.mu.Unlock()
}

// search runs the parallel branch and bound and returns the best clique in
// local indices. On cancellation it sets stop and returns the incumbent.
func (lg *localGraph) search(ctx context.Context, workers int, run *metrics.Run, stop *atomic.Bool) []int {
	inc := &incumbent{}
	seed, seedScore := lg.greedyClique()
	inc.members = seed
	inc.score.Store(seedScore)

	p := core.NewBitset(lg.k)
	for v := 0; v < lg.k; v++ {
		p.Set(v)
	}
	var top frame
	lg.colorSort(p, &top)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := len(top.order) - 1; i >= 0; i-- {
		v, bound := top.order[i], top.bound[i]
		if bound <= inc.score.Load() || stop.Load() {
			break
		}
		bp := p.And(lg.compat[v], core.NewBitset(lg.k))
		p.Clear(v)
		eg.Go(func() error {
			if bound <= inc.score.Load() {
				return nil
			}
			s := &searcher{lg: lg, inc: inc, ctx: ctx, run: run, stop: stop, r: []int{v}}
			s.expand(lg.weight(v), bp, 1)
			run.AddIterations(s.pending)
			return nil
		})
	}
	_ = eg.Wait()

	inc.mu.Lock()
	defer inc.mu.Unlock()
	return slices.Clone(inc.members)
}

// frame is the scratch space of one search depth.
type frame struct {
	child core.Bitset
	rest  core.Bitset
	class core.Bitset
	order []int
	bound []int64
}

// colorSort partitions p greedily into color classes, each an independent set
// of the compatibility graph, so a clique holds at most one member per class.
// It fills f.order with p's members class by class and f.bound[i] with an
// upper bound on the score of any clique drawn from f.order[:i+1]: the class
// count for unit weights, the sum of per-class maximum weights otherwise.
func (lg *localGraph) colorSort(p core.Bitset, f *frame) {
	if f.rest == nil {
		f.rest = core.NewBitset(lg.k)
		f.class = core.NewBitset(lg.k)
	}
	f.order = f.order[:0]
	f.bound = f.bound[:0]
	copy(f.rest, p)

	var total int64
	for !f.rest.Empty() {
		copy(f.class, f.rest)
		start := len(f.order)
		var heaviest int64
		for v := f.class.Next(0); v >= 0; v = f.class.Next(v + 1) {
			f.order = append(f.order, v)
			f.rest.Clear(v)
			if w := lg.weight(v); w > heaviest {
				heaviest = w
			}
			// Keep only vertices incompatible with every member so far.
			f.class.AndNot(lg.compat[v], f.class)
		}
		total += heaviest
		for range len(f.order) - start {
			f.bound = append(f.bound, total)
		}
	}
}

// searcher is the per-goroutine state of one top-level branch.
type searcher struct {
	lg      *localGraph
	inc     *incumbent
	ctx     context.Context
	run     *metrics.Run
	stop    *atomic.Bool
	r       []int
	steps   int
	pending int64

	// frames[d] is reused by every node at depth d.
	frames []*frame
}

func (s *searcher) tick() bool {
	s.steps++
	s.pending++
	if s.steps%checkEvery == 0 {
		s.run.AddIterations(s.pending)
		s.pending = 0
		if s.ctx.Err() != nil {
			s.stop.Store(true)
		}
	}
	return s.stop.Load()
}

func (s *searcher) frame(depth int) *frame {
	for len(s.frames) <= depth {
		s.frames = append(s.frames, &frame{child: core.NewBitset(s.lg.k)})
	}
	return s.frames[depth]
}

// expand explores cliques extending s.r (scored score) with vertices from p.
// p is owned by this call and consumed.
func (s *searcher) expand(score int64, p core.Bitset, depth int) {
	if s.tick() {
		return
	}
	if p.Empty() {
		s.inc.offer(score, s.r)
		return
	}

	f := s.frame(depth)
	s.lg.colorSort(p, f)
	for i := len(f.order) - 1; i >= 0; i-- {
		if score+f.bound[i] <= s.inc.score.Load() || s.stop.Load() {
			return
		}
		v := f.order[i]
		p.And(s.lg.compat[v], f.child)
		s.r = append(s.r, v)
		s.expand(score+s.lg.weight(v), f.child, depth+1)
		s.r = s.r[:len(s.r)-1]
		p.Clear(v)
	}
}
