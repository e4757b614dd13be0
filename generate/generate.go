// Package generate synthesizes candidate pools and grows libraries online.
//
// Random draws every symbol uniformly. BalancedGC first draws the GC count
// uniformly from the counts admitted by the constraints and then places those
// G/C symbols at random positions, so every generated sequence passes the
// composition check. Both are deterministic for a given *rand.Rand.
//
// Online needs no pool: it draws candidates until the library reaches a
// target size, rejecting each one on GC content or on distance to the
// sequences already accepted.
package generate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/primerlib/primer"
)

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 246

var (
	// ErrNoAdmissibleGC indicates constraints no sequence of the length can meet.
	ErrNoAdmissibleGC = errors.New("generate: no admissible GC count for the constraints")

	// ErrBadCount indicates a negative pool size.
	ErrBadCount = errors.New("generate: count must be non-negative")
)

const (
	weak   = "AT"
	strong = "GC"
	bases  = "ATGC"
)

// Random returns a uniformly random sequence of the given length.
func Random(rng *rand.Rand, length int) primer.Sequence {
	b := make([]byte, length)
	for i := range b {
		b[i] = bases[rng.Intn(len(bases))]
	}
	return string(b)
}

// GCCounts returns the GC counts k with MinGC ≤ k/Length ≤ MaxGC, ascending.
func GCCounts(c primer.Constraints) []int {
	var out []int
	if c.Length <= 0 {
		return out
	}
	lo := int(math.Ceil(c.MinGC * float64(c.Length)))
	hi := int(math.Floor(c.MaxGC * float64(c.Length)))
	for k := max(lo, 0); k <= min(hi, c.Length); k++ {
		// Re-check with the same arithmetic the validator uses.
		gc := float64(k) / float64(c.Length)
		if c.MinGC <= gc && gc <= c.MaxGC {
			out = append(out, k)
		}
	}
	return out
}

// BalancedGC returns a sequence whose GC fraction lies within c.
//
// Errors: ErrNoAdmissibleGC.
func BalancedGC(rng *rand.Rand, c primer.Constraints) (primer.Sequence, error) {
	counts := GCCounts(c)
	if len(counts) == 0 {
		return "", ErrNoAdmissibleGC
	}
	return balanced(rng, c.Length, counts), nil
}

func balanced(rng *rand.Rand, length int, counts []int) primer.Sequence {
	k := counts[rng.Intn(len(counts))]
	b := make([]byte, length)
	for i, p := range rng.Perm(length) {
		if i < k {
			b[p] = strong[rng.Intn(2)]
		} else {
			b[p] = weak[rng.Intn(2)]
		}
	}
	return string(b)
}

// Pool returns n balanced sequences drawn from a generator seeded with seed
// (0 means the default seed). Duplicates are possible; they conflict at
// distance 0 and are resolved by extraction.
//
// Errors: ErrBadCount, ErrNoAdmissibleGC.
func Pool(n int, c primer.Constraints, seed int64) (primer.Pool, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCount, n)
	}
	counts := GCCounts(c)
	if len(counts) == 0 {
		return nil, ErrNoAdmissibleGC
	}
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	pool := make(primer.Pool, n)
	for i := range pool {
		pool[i] = balanced(rng, c.Length, counts)
	}
	return pool, nil
}

// RandomPool returns n uniformly random sequences; some will fail the
// composition check.
//
// Errors: ErrBadCount.
func RandomPool(n, length int, seed int64) (primer.Pool, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCount, n)
	}
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	pool := make(primer.Pool, n)
	for i := range pool {
		pool[i] = Random(rng, length)
	}
	return pool, nil
}
