// Package conflict builds the conflict graph of a candidate pool and reads or
// writes precomputed edge lists.
//
// An edge (i, j) joins two candidates whose edit distance is strictly below the
// threshold: Bounded(pool[i], pool[j], threshold) < threshold. There are
// C(N,2) pairs, which makes construction the dominant cost of a run:
//
//   - Build partitions rows i (pairs (i, j) with j > i) across workers. Each
//     worker collects edges locally; the merge sorts them into natural (i, j)
//     order. Progress and metrics are updated per row, never per pair.
//   - Stream walks the same pairs on one goroutine and hands each edge to a
//     callback in natural order without holding the list in memory.
//
// Precomputed edge lists are an explicit alternate input, never an implicit
// cache. Two formats are supported:
//
//	text   - any run of digits (optionally signed) is an integer; everything
//	         else separates. Integers pair up into edges, so "0 1\n2 3" and
//	         "[(0, 1), (2, 3)]" are equivalent.
//	binary - the 8-byte magic "PLEDGE01" followed by uvarint pairs up to EOF.
//
// Errors:
//
//	ErrMalformedEdges - odd integer count, bad token, bad header or truncated pair.
//	ErrEdgeOutOfRange - an endpoint outside the pool.
//
// Both wrap primer.ErrInput.
package conflict
