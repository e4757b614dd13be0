package core

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for graph construction.
var (
	// ErrNodeOutOfRange indicates an edge endpoint outside [0, n).
	ErrNodeOutOfRange = errors.New("core: node index out of range")

	// ErrSelfLoop indicates an edge (v, v); the conflict graph has no loops.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrNegativeSize indicates a negative node count.
	ErrNegativeSize = errors.New("core: negative node count")
)

// Edge is an undirected conflict between two candidate indices.
// Normalized edges satisfy U < V.
type Edge struct {
	U, V int
}

// Normalize returns the edge with U < V.
func (e Edge) Normalize() Edge {
	if e.V < e.U {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Graph is the immutable conflict graph over nodes 0..n-1.
//
// adj[v] holds v's neighbors sorted ascending without duplicates.
type Graph struct {
	n     int
	adj   [][]int
	edges int
}

// New builds a Graph with n nodes from edges. Edges may arrive in any order and
// orientation; duplicates ((u,v) twice, or (u,v) and (v,u)) collapse into one.
//
// Implementation:
//   - Stage 1: validate endpoints and count degrees (with duplicates).
//   - Stage 2: fill one backing array sliced per node (CSR layout).
//   - Stage 3: sort and compact each neighbor list.
//
// Errors: ErrNegativeSize, ErrNodeOutOfRange, ErrSelfLoop.
//
// Complexity: O(n + E log E) time, O(n + E) space.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	var (
		deg = make([]int, n)
		e   Edge
	)
	for _, e = range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%w: (%d, %d) with n=%d", ErrNodeOutOfRange, e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrSelfLoop, e.U, e.V)
		}
		deg[e.U]++
		deg[e.V]++
	}

	var (
		backing = make([]int, 2*len(edges))
		adj     = make([][]int, n)
		off     int
		v       int
	)
	for v = 0; v < n; v++ {
		adj[v] = backing[off : off : off+deg[v]]
		off += deg[v]
	}
	for _, e = range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	g := &Graph{n: n, adj: adj}
	for v = 0; v < n; v++ {
		slices.Sort(adj[v])
		adj[v] = slices.Compact(adj[v])
		g.edges += len(adj[v])
	}
	g.edges /= 2

	return g, nil
}

// Len returns the number of node slots (the pool size).
func (g *Graph) Len() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }
