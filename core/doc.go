// Package core provides the conflict graph: an undirected, unweighted graph over
// candidate indices 0..N-1 where an edge (u, v) means "u and v are too similar
// to coexist in one library".
//
// The package separates the immutable structure from mutable elimination state:
//
//   - Graph: built once by New from an edge list; sorted, de-duplicated
//     neighbor lists; never mutated afterwards. Safe for concurrent readers.
//
//   - Residual: an exclusively-owned view over a Graph with a liveness bitmap,
//     live degrees and a live edge count. Elimination strategies remove nodes
//     from a Residual; the Graph underneath stays intact.
//
//   - Bitset: fixed-width bitset used by the exact clique searches.
//
// Invariants:
//
//	- No self-loops: New rejects (v, v) with ErrSelfLoop.
//	- Symmetry:      HasEdge(u, v) == HasEdge(v, u).
//	- Node set:      Nodes() lists ids with at least one conflict; every id in
//	                 Isolated() has zero conflicts with the whole pool.
//
// Errors:
//
//	ErrNodeOutOfRange - edge endpoint outside [0, n).
//	ErrSelfLoop       - edge from a node to itself.
//	ErrNegativeSize   - n < 0.
//
// Complexity:
//
//	New:        O(N + E log E)
//	HasEdge:    O(log deg)
//	Neighbors:  O(1) (shared slice, read-only)
//	Residual:   Remove O(deg), Sample O(1)
package core
