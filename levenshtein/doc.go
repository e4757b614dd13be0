// Package levenshtein computes edit distances between primer sequences.
//
// The edit (Levenshtein) distance between a and b is the minimum number of
// single-symbol insertions, deletions, or substitutions that turn a into b.
//
// Two entry points cover the two ways callers use a distance:
//
//   - Distance: exact value, two-row rolling DP.
//     Complexity: O(n·m) time, O(min(n,m)) memory.
//   - Bounded: the answer to "is the distance at least k?".
//     Only the diagonal band |i-j| ≤ bound is evaluated and the DP stops as soon
//     as a whole row exceeds bound. Exact when the distance is ≤ bound,
//     otherwise exactly bound+1.
//     Complexity: O(bound·max(n,m)) time, O(min(n,m)) memory.
//
// Oracle abstracts both calls so that a memoizing wrapper (Cached) can be put in
// front of the pure functions. The cache is explicit and bounded: it never grows
// past its capacity and evicts least-recently-used pairs.
//
// Example:
//
//	d := levenshtein.Distance("ACGT", "AGT")          // 1
//	ok := levenshtein.Bounded(p1, p2, 8) >= 8          // pair is far enough apart
package levenshtein
