// Package extract selects a pairwise-dissimilar library from a candidate pool.
//
// Every strategy implements Strategy and guarantees the library invariant on
// its output: each selected sequence is individually valid (length, GC
// content), and no two selected candidates are joined by a conflict edge.
// Strategies differ in cardinality, determinism and cost:
//
//	greedy                          pool order, pair checks against the accepted list; no graph
//	random-elimination              seeded uniform pick, remove its closed neighborhood
//	min-degree-elimination          pick the lowest live degree (ties: lowest index)
//	min-degree-neighbor-elimination min-degree tier, then lowest mean neighbor degree
//	approx-max-independent-set      Boppana–Halldórsson clique removal per component
//	exact-max-clique                branch and bound on the compatibility graph
//	exact-max-weight-clique         same, maximizing summed distance weights
//
// Shared rules:
//   - Individually invalid candidates are never selected; each is counted as a
//     composition rejection in the run metrics.
//   - Graph strategies accept candidates without live conflicts first.
//   - Cancellation is cooperative. The context is checked before every
//     acceptance (elimination, greedy) and every 1024 search nodes (exact
//     search). A cancelled run returns what was accepted so far with
//     Result.Truncated set and a nil error. Exact searches commit the best
//     clique of the component being searched when the signal arrives.
//
// Elimination strategies own a core.Residual exclusively; no strategy mutates
// the shared core.Graph.
package extract
