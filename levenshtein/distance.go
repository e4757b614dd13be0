package levenshtein

// Oracle answers exact and bounded edit-distance queries.
// Implementations must be safe for concurrent use.
type Oracle interface {
	// Distance returns the exact edit distance between a and b.
	Distance(a, b string) int

	// Bounded returns the exact distance when it is ≤ bound and bound+1 otherwise.
	Bounded(a, b string, bound int) int
}

// Exact is the stateless Oracle backed by Distance and Bounded.
type Exact struct{}

// Distance implements Oracle.
func (Exact) Distance(a, b string) int { return Distance(a, b) }

// Bounded implements Oracle.
func (Exact) Bounded(a, b string, bound int) int { return Bounded(a, b, bound) }

// Distance returns the Levenshtein distance between a and b.
//
// Algorithm (two-row rolling DP):
//  1. Keep the shorter string as the column axis so a row holds min(n,m)+1 cells.
//  2. prev[j] = j for the empty prefix of the longer string.
//  3. For each symbol of the longer string compute
//     cur[j] = min(prev[j-1]+cost, prev[j]+1, cur[j-1]+1).
//  4. The answer is the last cell of the last row.
//
// Complexity: O(n·m) time, O(min(n,m)) memory.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	var (
		n    = len(a)
		m    = len(b)
		prev = make([]int, m+1)
		cur  = make([]int, m+1)
		i, j int
		v, d int
	)
	if m == 0 {
		return n
	}
	for j = 0; j <= m; j++ {
		prev[j] = j
	}
	for i = 1; i <= n; i++ {
		cur[0] = i
		for j = 1; j <= m; j++ {
			v = prev[j-1]
			if a[i-1] != b[j-1] {
				v++
			}
			if d = prev[j] + 1; d < v {
				v = d
			}
			if d = cur[j-1] + 1; d < v {
				v = d
			}
			cur[j] = v
		}
		prev, cur = cur, prev
	}

	return prev[m]
}

// Bounded returns the Levenshtein distance between a and b when it does not
// exceed bound, and bound+1 otherwise. A negative bound disables the cut-off
// and Bounded behaves like Distance.
//
// Only cells with |i-j| ≤ bound are evaluated (Ukkonen band): any alignment that
// leaves the band already costs more than bound. Cells outside the band hold
// the cap value bound+1. After each row, if every in-band cell exceeds bound the
// final distance must too, and the function returns early.
//
// Callers must only rely on Bounded(a, b, k) >= k, never on the magnitude of a
// capped result.
//
// Complexity: O(bound·max(n,m)) time, O(min(n,m)) memory.
func Bounded(a, b string, bound int) int {
	if bound < 0 {
		return Distance(a, b)
	}
	if a == b {
		return 0
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	var (
		n     = len(a)
		m     = len(b)
		limit = bound + 1
	)
	// The length gap alone costs n-m insertions.
	if n-m > bound {
		return limit
	}
	if m == 0 {
		return n
	}

	var (
		prev   = make([]int, m+1)
		cur    = make([]int, m+1)
		i, j   int
		lo, hi int
		v, d   int
		rowMin int
	)
	for j = 0; j <= m; j++ {
		prev[j] = min(j, limit)
	}

	for i = 1; i <= n; i++ {
		lo = max(1, i-bound)
		hi = min(m, i+bound)

		if lo == 1 {
			cur[0] = min(i, limit)
		} else {
			cur[lo-1] = limit
		}
		rowMin = cur[lo-1]

		for j = lo; j <= hi; j++ {
			v = prev[j-1]
			if a[i-1] != b[j-1] {
				v++
			}
			if d = prev[j] + 1; d < v {
				v = d
			}
			if d = cur[j-1] + 1; d < v {
				v = d
			}
			if v > limit {
				v = limit
			}
			cur[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		// The next row reads cur[hi+1] as its upper-diagonal neighbour.
		if hi < m {
			cur[hi+1] = limit
		}
		if rowMin > bound {
			return limit
		}
		prev, cur = cur, prev
	}

	return min(prev[m], limit)
}
