// Package primerlib selects large libraries of mutually dissimilar DNA primers
// from a candidate pool.
//
// What is primerlib?
//
//	Given a pool of fixed-length candidate sequences, a GC-content window and a
//	minimum pairwise edit distance, primerlib picks as many candidates as it can
//	such that every picked sequence has the right length and GC content and
//	every pair of picked sequences is at least the threshold apart:
//		• Conflict graph: one node per candidate, an edge wherever two
//		  candidates are closer than the threshold (built in parallel)
//		• Extraction strategies: greedy scan, random / min-degree /
//		  min-degree-neighbor elimination, approximate maximum independent set,
//		  exact maximum (weighted) clique of the compatibility graph
//		• Post-hoc check: every library is re-verified against its constraints
//
// Layout:
//
//	primer/      - sequences, pools, constraints and the library check
//	levenshtein/ - exact and banded edit distance, bounded LRU cache
//	core/        - immutable conflict graph, residual liveness view, bitsets
//	conflict/    - parallel graph builder, edge-list text/binary I/O
//	extract/     - the Strategy interface and its seven variants
//	metrics/     - run counters, throughput series, Prometheus collector
//	config/      - YAML configuration with validation
//	logging/     - slog setup (text on a terminal, JSON otherwise)
//	library/     - library and series artifacts
//	generate/    - seeded pool synthesis, online target-driven generators
//	pipeline/    - one run end to end
//	cmd/primerlib - the command-line tool
//
// Quick ASCII example (threshold 2, GC exactly one half):
//
//	ATGC───AAGC      GCAT
//	  │
//	ATCC (GC 0.75, rejected)
//
//	Any maximum library is {GCAT} plus one of ATGC / AAGC.
//
//	go install github.com/katalvlaran/primerlib/cmd/primerlib@latest
package primerlib
