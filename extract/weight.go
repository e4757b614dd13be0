package extract

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// distanceWeights gives every valid candidate the sum of its exact edit
// distances to all other valid candidates it does not conflict with.
// Invalid candidates weigh 0.
//
// Rows of the upper triangle are claimed through a shared counter; each
// worker accumulates into its own slice and the slices are summed at the end.
// The context is polled once per row.
//
// Complexity: O(V²) distance computations over the V valid candidates.
func distanceWeights(ctx context.Context, in *Input, valid []bool) ([]int64, error) {
	var (
		oracle  = oracleOf(in)
		workers = workersOf(in)
		ids     = make([]int, 0, len(in.Pool))
		next    atomic.Int64
		parts   = make([][]int64, workers)
	)
	for i, ok := range valid {
		if ok {
			ids = append(ids, i)
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			acc := make([]int64, len(in.Pool))
			for {
				a := int(next.Add(1) - 1)
				if a >= len(ids) {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				u := ids[a]
				for _, v := range ids[a+1:] {
					if in.Graph.HasEdge(u, v) {
						continue
					}
					d := int64(oracle.Distance(in.Pool[u], in.Pool[v]))
					acc[u] += d
					acc[v] += d
				}
				in.Metrics.AddIterations(1)
			}
			parts[w] = acc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	weights := make([]int64, len(in.Pool))
	for _, acc := range parts {
		for i, x := range acc {
			weights[i] += x
		}
	}
	return weights, nil
}
