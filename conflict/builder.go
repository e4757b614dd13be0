package conflict

import (
	"context"
	"runtime"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

// ProgressFunc receives the number of completed rows and the total row count.
// Build calls it from worker goroutines, so it must be safe for concurrent use.
type ProgressFunc func(done, total int64)

type options struct {
	workers  int
	progress ProgressFunc
	run      *metrics.Run
	oracle   levenshtein.Oracle
}

// Option configures Build and Stream.
type Option func(*options)

// WithWorkers sets the number of goroutines; n <= 0 means GOMAXPROCS.
// Stream ignores it.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithProgress registers a per-row progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithMetrics adds the number of pairs checked in each row to run.
func WithMetrics(run *metrics.Run) Option {
	return func(o *options) { o.run = run }
}

// WithOracle replaces the exact distance oracle.
func WithOracle(oracle levenshtein.Oracle) Option {
	return func(o *options) { o.oracle = oracle }
}

func newOptions(opts []Option) options {
	o := options{oracle: levenshtein.Exact{}}
	for _, fn := range opts {
		fn(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.oracle == nil {
		o.oracle = levenshtein.Exact{}
	}

	return o
}

// Build computes the conflict graph of pool for threshold.
//
// Rows are handed out through a shared counter so that the long early rows and
// the short late rows balance across workers. The context is checked before
// every row; on cancellation Build returns ctx.Err() and no graph.
//
// Complexity: O(N²·L·threshold) time with the banded oracle, O(N + E) memory.
func Build(ctx context.Context, pool primer.Pool, threshold int, opts ...Option) (*core.Graph, error) {
	var (
		o     = newOptions(opts)
		n     = len(pool)
		rows  = int64(max(n-1, 0))
		next  atomic.Int64
		done  atomic.Int64
		parts = make([][]core.Edge, o.workers)
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for w := 0; w < o.workers; w++ {
		eg.Go(func() error {
			var local []core.Edge
			for {
				i := int(next.Add(1) - 1)
				if i >= n-1 {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				local = scanRow(pool, i, threshold, o.oracle, local)
				o.run.AddIterations(int64(n - 1 - i))
				if d := done.Add(1); o.progress != nil {
					o.progress(d, rows)
				}
			}
			parts[w] = local
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	edges := make([]core.Edge, 0, total)
	for _, p := range parts {
		edges = append(edges, p...)
	}
	slices.SortFunc(edges, compareEdges)

	return core.New(n, edges)
}

// Stream emits every conflict edge of pool in natural (i, j) order on the
// calling goroutine. An error from emit stops the walk and is returned as is.
func Stream(ctx context.Context, pool primer.Pool, threshold int, emit func(core.Edge) error, opts ...Option) error {
	var (
		o    = newOptions(opts)
		n    = len(pool)
		rows = int64(max(n-1, 0))
		buf  []core.Edge
	)
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf = scanRow(pool, i, threshold, o.oracle, buf[:0])
		for _, e := range buf {
			if err := emit(e); err != nil {
				return err
			}
		}
		o.run.AddIterations(int64(n - 1 - i))
		if o.progress != nil {
			o.progress(int64(i+1), rows)
		}
	}

	return nil
}

// scanRow appends the edges (i, j), j > i, to dst in ascending j.
func scanRow(pool primer.Pool, i, threshold int, oracle levenshtein.Oracle, dst []core.Edge) []core.Edge {
	a := pool[i]
	for j := i + 1; j < len(pool); j++ {
		if oracle.Bounded(a, pool[j], threshold) < threshold {
			dst = append(dst, core.Edge{U: i, V: j})
		}
	}
	return dst
}

func compareEdges(a, b core.Edge) int {
	if a.U != b.U {
		return a.U - b.U
	}
	return a.V - b.V
}
