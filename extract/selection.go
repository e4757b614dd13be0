package extract

import (
	"context"
	"runtime"

	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/primer"
)

// selection accumulates accepted indices and latches cancellation.
type selection struct {
	ctx     context.Context
	in      *Input
	out     []int
	stopped bool
}

func newSelection(ctx context.Context, in *Input) *selection {
	return &selection{ctx: ctx, in: in, out: make([]int, 0, 64)}
}

// cancelled reports (and latches) whether the context is done.
func (s *selection) cancelled() bool {
	if !s.stopped && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

func (s *selection) accept(v int) {
	s.out = append(s.out, v)
	s.in.Metrics.Accept()
	if s.in.OnAccept != nil {
		s.in.OnAccept(v)
	}
}

// acceptChecked accepts each index of vs unless cancellation intervenes.
// It returns false once cancelled.
func (s *selection) acceptChecked(vs []int) bool {
	for _, v := range vs {
		if s.cancelled() {
			return false
		}
		s.accept(v)
	}
	return true
}

func (s *selection) result() Result {
	return Result{Indices: s.out, Truncated: s.stopped}
}

// validMask marks individually valid candidates and counts the rest as
// composition rejections.
func validMask(in *Input) []bool {
	ok := make([]bool, len(in.Pool))
	for i, seq := range in.Pool {
		if primer.IndividuallyValid(seq, in.Constraints) {
			ok[i] = true
		} else {
			in.Metrics.RejectComposition()
		}
	}
	return ok
}

// splitComponents returns the valid candidates without valid conflicts
// (ascending) and the remaining connected components of the valid subgraph.
func splitComponents(g *core.Graph, valid []bool) (isolated []int, comps [][]int) {
	for _, c := range g.Components(func(v int) bool { return valid[v] }) {
		if len(c) == 1 {
			isolated = append(isolated, c[0])
		} else {
			comps = append(comps, c)
		}
	}
	return isolated, comps
}

func oracleOf(in *Input) levenshtein.Oracle {
	if in.Oracle == nil {
		return levenshtein.Exact{}
	}
	return in.Oracle
}

func workersOf(in *Input) int {
	if in.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return in.Workers
}
