package extract

import (
	"context"
	"math/rand"
	"slices"

	"github.com/katalvlaran/primerlib/core"
)

// approxMIS computes an approximate maximum independent set with the
// Boppana–Halldórsson clique-removal scheme, which achieves the
// O(V/(log V)²) approximation guarantee.
//
// Per connected component:
//  1. ramsey(S) picks a pivot p in S, splits S into p's neighbors N and
//     non-neighbors M, recurses, and returns
//     clique = max(ramsey(N).clique+p, ramsey(M).clique) and
//     iset   = max(ramsey(N).iset, ramsey(M).iset+p).
//  2. Repeat ramsey on the remaining nodes, removing the returned clique each
//     round, and keep the largest independent set seen.
//
// Partitioning is in place on one slice per component; neighbor membership
// is tested with a stamp array, so each ramsey level costs O(|S| + deg p).
type approxMIS struct{}

func (approxMIS) Name() Name       { return ApproxMIS }
func (approxMIS) NeedsGraph() bool { return true }

func (approxMIS) Extract(ctx context.Context, in Input) (Result, error) {
	if err := in.check(true); err != nil {
		return Result{}, err
	}
	var (
		sel             = newSelection(ctx, &in)
		valid           = validMask(&in)
		isolated, comps = splitComponents(in.Graph, valid)
	)
	if !sel.acceptChecked(isolated) {
		return sel.result(), nil
	}

	rm := &ramsey{
		ctx:   ctx,
		g:     in.Graph,
		rng:   rngFromSeed(in.Seed),
		stamp: make([]uint64, in.Graph.Len()),
	}
	for _, comp := range comps {
		iset := rm.cliqueRemoval(comp)
		in.Metrics.AddIterations(rm.flushSteps())
		if rm.aborted {
			sel.stopped = true
			return sel.result(), nil
		}
		slices.Sort(iset)
		if !sel.acceptChecked(iset) {
			return sel.result(), nil
		}
		for range len(comp) - len(iset) {
			in.Metrics.RejectDistance()
		}
	}

	return sel.result(), nil
}

type ramsey struct {
	ctx     context.Context
	g       *core.Graph
	rng     *rand.Rand
	stamp   []uint64
	token   uint64
	steps   int64
	pending int64
	aborted bool
}

func (rm *ramsey) flushSteps() int64 {
	n := rm.pending
	rm.pending = 0
	return n
}

// tick counts one recursion step and polls the context every 1024 steps.
func (rm *ramsey) tick() bool {
	rm.steps++
	rm.pending++
	if rm.steps&1023 == 0 && rm.ctx.Err() != nil {
		rm.aborted = true
	}
	return rm.aborted
}

// cliqueRemoval returns the best independent set found in comp.
// comp is permuted in place.
func (rm *ramsey) cliqueRemoval(comp []int) []int {
	var (
		rest    = comp
		best    []int
		removed = make(map[int]struct{})
	)
	for len(rest) > 0 {
		clique, iset := rm.split(rest)
		if rm.aborted {
			return nil
		}
		if len(iset) > len(best) {
			best = iset
		}
		clear(removed)
		for _, v := range clique {
			removed[v] = struct{}{}
		}
		rest = slices.DeleteFunc(rest, func(v int) bool {
			_, ok := removed[v]
			return ok
		})
	}
	return best
}

// split is the ramsey recursion over the induced subgraph on s.
func (rm *ramsey) split(s []int) (clique, iset []int) {
	if len(s) == 0 || rm.tick() {
		return nil, nil
	}

	k := rm.rng.Intn(len(s))
	s[0], s[k] = s[k], s[0]
	p := s[0]

	rm.token++
	for _, w := range rm.g.Neighbors(p) {
		rm.stamp[w] = rm.token
	}
	// Neighbors of p to the front of s[1:].
	rest := s[1:]
	nb := 0
	for i, v := range rest {
		if rm.stamp[v] == rm.token {
			rest[nb], rest[i] = rest[i], rest[nb]
			nb++
		}
	}

	c1, i1 := rm.split(rest[:nb])
	c2, i2 := rm.split(rest[nb:])
	c1 = append(c1, p)
	i2 = append(i2, p)

	if len(c1) >= len(c2) {
		clique = c1
	} else {
		clique = c2
	}
	if len(i1) >= len(i2) {
		iset = i1
	} else {
		iset = i2
	}
	return clique, iset
}
