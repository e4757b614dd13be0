package extract

import "context"

// greedy scans the pool once and keeps every candidate that is far enough
// from everything kept so far.
//
// Complexity: O(N·|accepted|) bounded distance queries.
type greedy struct{}

func (greedy) Name() Name       { return Greedy }
func (greedy) NeedsGraph() bool { return false }

func (greedy) Extract(ctx context.Context, in Input) (Result, error) {
	if err := in.check(false); err != nil {
		return Result{}, err
	}
	var (
		sel    = newSelection(ctx, &in)
		valid  = validMask(&in)
		oracle = oracleOf(&in)
		thr    = in.Threshold
	)

next:
	for i, seq := range in.Pool {
		if sel.cancelled() {
			break
		}
		in.Metrics.AddIterations(1)
		if !valid[i] {
			continue
		}
		for _, a := range sel.out {
			if oracle.Bounded(in.Pool[a], seq, thr) < thr {
				in.Metrics.RejectDistance()
				continue next
			}
		}
		sel.accept(i)
	}

	return sel.result(), nil
}
