package levenshtein_test

import (
	"fmt"

	"github.com/katalvlaran/primerlib/levenshtein"
)

// ExampleDistance shows the exact edit distance.
func ExampleDistance() {
	fmt.Println(levenshtein.Distance("kitten", "sitting"))
	// Output: 3
}

// ExampleBounded shows the capped result used for threshold checks.
func ExampleBounded() {
	const threshold = 2
	d := levenshtein.Bounded("AAAA", "TTTT", threshold)
	fmt.Println(d, d >= threshold)
	// Output: 3 true
}
