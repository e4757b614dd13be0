package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

// Name identifies a strategy; the values are the configuration strings.
type Name string

// Strategy names.
const (
	Greedy            Name = "greedy"
	RandomElimination Name = "random-elimination"
	MinDegree         Name = "min-degree-elimination"
	MinDegreeNeighbor Name = "min-degree-neighbor-elimination"
	ApproxMIS         Name = "approx-max-independent-set"
	ExactClique       Name = "exact-max-clique"
	ExactWeightClique Name = "exact-max-weight-clique"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy indicates a name outside Names().
	ErrUnknownStrategy = errors.New("extract: unknown strategy")

	// ErrNilGraph indicates a graph strategy called without a conflict graph.
	ErrNilGraph = errors.New("extract: strategy requires a conflict graph")

	// ErrGraphSize indicates a graph whose node count differs from the pool size.
	ErrGraphSize = errors.New("extract: graph size does not match pool")

	// ErrBadThreshold indicates a negative distance threshold.
	ErrBadThreshold = errors.New("extract: threshold must be non-negative")
)

// Input carries everything a strategy reads. Pool and Graph are read-only.
type Input struct {
	Pool primer.Pool

	// Graph is the conflict graph of Pool at Threshold; ignored by Greedy.
	Graph *core.Graph

	Threshold   int
	Constraints primer.Constraints

	// Oracle answers distance queries; nil means levenshtein.Exact.
	Oracle levenshtein.Oracle

	// Seed drives randomized strategies; 0 selects a fixed default.
	Seed int64

	// Workers bounds parallel work; <= 0 means GOMAXPROCS.
	Workers int

	// Metrics may be nil.
	Metrics *metrics.Run

	// OnAccept, when set, is called with each accepted index in order.
	OnAccept func(idx int)
}

// Result is an ordered selection of pool indices.
type Result struct {
	Indices []int

	// Truncated is set when cancellation stopped the run early.
	Truncated bool
}

// Strategy selects a library from a candidate pool.
type Strategy interface {
	Name() Name
	// NeedsGraph reports whether Extract reads Input.Graph.
	NeedsGraph() bool
	Extract(ctx context.Context, in Input) (Result, error)
}

var registry = map[Name]func() Strategy{
	Greedy:            func() Strategy { return greedy{} },
	RandomElimination: func() Strategy { return elimination{name: RandomElimination} },
	MinDegree:         func() Strategy { return elimination{name: MinDegree} },
	MinDegreeNeighbor: func() Strategy { return elimination{name: MinDegreeNeighbor} },
	ApproxMIS:         func() Strategy { return approxMIS{} },
	ExactClique:       func() Strategy { return exactClique{name: ExactClique} },
	ExactWeightClique: func() Strategy { return exactClique{name: ExactWeightClique, weighted: true} },
}

// Names lists every strategy in documentation order.
func Names() []Name {
	return []Name{Greedy, RandomElimination, MinDegree, MinDegreeNeighbor, ApproxMIS, ExactClique, ExactWeightClique}
}

// ParseName normalizes s (case, surrounding space, '_' for '-') and checks it.
func ParseName(s string) (Name, error) {
	n := Name(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := registry[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return n, nil
}

// New returns the strategy called name.
func New(name Name) (Strategy, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return mk(), nil
}

// Generate runs the named strategy on in.
func Generate(ctx context.Context, name Name, in Input) (Result, error) {
	s, err := New(name)
	if err != nil {
		return Result{}, err
	}
	return s.Extract(ctx, in)
}

// check validates the parts of in that a strategy relies on.
func (in *Input) check(needsGraph bool) error {
	if in.Threshold < 0 {
		return fmt.Errorf("%w: %d", ErrBadThreshold, in.Threshold)
	}
	if !needsGraph {
		return nil
	}
	if in.Graph == nil {
		return ErrNilGraph
	}
	if in.Graph.Len() != len(in.Pool) {
		return fmt.Errorf("%w: graph has %d nodes, pool has %d", ErrGraphSize, in.Graph.Len(), len(in.Pool))
	}
	return nil
}
