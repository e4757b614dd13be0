// Package primer defines candidate sequences, per-sequence constraints, and the
// library-level consistency check.
//
// A Sequence is a fixed-length string over {A, T, G, C}. A Pool is the ordered
// candidate list; a candidate's index in the Pool is its stable identity for
// the whole run.
//
// Errors:
//
//	ErrInput              - umbrella for malformed or unusable input.
//	ErrEmptyPool          - the pool has no sequences.
//	ErrBadSymbol          - a symbol outside {A,T,G,C}.
//	ErrLengthMismatch     - sequences of different lengths in one pool.
//	ErrInvariantViolation - a selected library fails its own constraints.
package primer

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors.
var (
	// ErrInput classifies every input-shaped failure; match with errors.Is.
	ErrInput = errors.New("primer: invalid input")

	// ErrEmptyPool indicates a candidate pool without sequences.
	ErrEmptyPool = fmt.Errorf("%w: candidate pool is empty", ErrInput)

	// ErrBadSymbol indicates a symbol outside the nucleotide alphabet.
	ErrBadSymbol = fmt.Errorf("%w: symbol outside {A,T,G,C}", ErrInput)

	// ErrLengthMismatch indicates a pool with inconsistent sequence lengths.
	ErrLengthMismatch = fmt.Errorf("%w: inconsistent sequence lengths", ErrInput)

	// ErrInvariantViolation indicates a selected library breaks length, GC, or
	// pairwise-distance constraints. It always signals an algorithm defect.
	ErrInvariantViolation = errors.New("primer: library invariant violated")
)

// Default constraint values.
const (
	DefaultLength = 20
	DefaultMinGC  = 0.45
	DefaultMaxGC  = 0.55

	// DefaultDistanceFactor scales the sequence length into the default
	// minimum edit distance.
	DefaultDistanceFactor = 0.4
)

// Sequence is one candidate primer.
type Sequence = string

// Pool is the ordered, read-only candidate list of one run.
type Pool []Sequence

// Len returns the number of candidates.
func (p Pool) Len() int { return len(p) }

// Constraints are the per-sequence acceptance rules.
type Constraints struct {
	// Length is the required sequence length.
	Length int

	// MinGC and MaxGC bound the GC fraction, inclusive.
	MinGC float64
	MaxGC float64
}

// DefaultConstraints returns length 20 and GC in [0.45, 0.55].
func DefaultConstraints() Constraints {
	return Constraints{Length: DefaultLength, MinGC: DefaultMinGC, MaxGC: DefaultMaxGC}
}

// DefaultThreshold returns round(0.4 × length), the default minimum edit distance.
func DefaultThreshold(length int) int {
	return int(math.Round(DefaultDistanceFactor * float64(length)))
}
