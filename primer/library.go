package primer

import (
	"fmt"

	"github.com/katalvlaran/primerlib/levenshtein"
)

// ViolationKind names the rule a library breaks.
type ViolationKind string

const (
	// ViolationLength marks a sequence with the wrong length.
	ViolationLength ViolationKind = "length"

	// ViolationComposition marks a sequence with GC content out of bounds.
	ViolationComposition ViolationKind = "composition"

	// ViolationDistance marks a pair closer than the threshold.
	ViolationDistance ViolationKind = "distance"
)

// ViolationError describes the first rule broken by a library.
// It wraps ErrInvariantViolation.
type ViolationError struct {
	Kind ViolationKind

	// I and J are library positions; J is -1 for single-sequence rules.
	I, J int
	A, B Sequence

	// Distance is the observed (possibly capped) distance for ViolationDistance.
	Distance  int
	Threshold int
}

func (e *ViolationError) Error() string {
	switch e.Kind {
	case ViolationDistance:
		return fmt.Sprintf("primer: library invariant violated: %s (#%d) and %s (#%d) are %d apart, need %d",
			e.A, e.I, e.B, e.J, e.Distance, e.Threshold)
	default:
		return fmt.Sprintf("primer: library invariant violated: %s (#%d) fails %s check", e.A, e.I, e.Kind)
	}
}

// Unwrap lets errors.Is match ErrInvariantViolation.
func (e *ViolationError) Unwrap() error { return ErrInvariantViolation }

// CheckLibrary verifies a selected library: every sequence individually valid,
// then every unordered pair at least threshold apart. It returns nil or the
// first *ViolationError found. Pure and repeatable; a nil oracle means Exact.
//
// Complexity: O(n) individual checks + C(n,2) bounded distance queries.
func CheckLibrary(lib []Sequence, c Constraints, threshold int, oracle levenshtein.Oracle) error {
	if oracle == nil {
		oracle = levenshtein.Exact{}
	}

	var i, j, d int
	for i = range lib {
		if !ValidLength(lib[i], c) {
			return &ViolationError{Kind: ViolationLength, I: i, J: -1, A: lib[i]}
		}
		if !ValidComposition(lib[i], c) {
			return &ViolationError{Kind: ViolationComposition, I: i, J: -1, A: lib[i]}
		}
	}

	for i = 0; i < len(lib); i++ {
		for j = i + 1; j < len(lib); j++ {
			if d = oracle.Bounded(lib[i], lib[j], threshold); d < threshold {
				return &ViolationError{
					Kind: ViolationDistance, I: i, J: j, A: lib[i], B: lib[j],
					Distance: d, Threshold: threshold,
				}
			}
		}
	}

	return nil
}

// Select maps pool indices to their sequences, in order.
func (p Pool) Select(indices []int) []Sequence {
	out := make([]Sequence, len(indices))
	for k, idx := range indices {
		out[k] = p[idx]
	}

	return out
}
