package primer

import "github.com/katalvlaran/primerlib/levenshtein"

// ValidLength reports whether len(s) equals the configured length.
func ValidLength(s Sequence, c Constraints) bool { return len(s) == c.Length }

// GCFraction returns (count(G)+count(C)) / len(s); 0 for the empty sequence.
func GCFraction(s Sequence) float64 {
	if len(s) == 0 {
		return 0
	}
	var gc int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'C':
			gc++
		}
	}

	return float64(gc) / float64(len(s))
}

// ValidComposition reports whether MinGC ≤ GC fraction ≤ MaxGC.
// The empty sequence never has a valid composition.
func ValidComposition(s Sequence, c Constraints) bool {
	if len(s) == 0 {
		return false
	}
	gc := GCFraction(s)

	return c.MinGC <= gc && gc <= c.MaxGC
}

// IndividuallyValid combines ValidLength and ValidComposition.
func IndividuallyValid(s Sequence, c Constraints) bool {
	return ValidLength(s, c) && ValidComposition(s, c)
}

// PairValid reports whether distance(a, b) ≥ threshold. A nil oracle means
// levenshtein.Exact. Only the bounded query is issued.
func PairValid(a, b Sequence, threshold int, oracle levenshtein.Oracle) bool {
	if oracle == nil {
		oracle = levenshtein.Exact{}
	}

	return oracle.Bounded(a, b, threshold) >= threshold
}
