package pipeline_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/primerlib/config"
	"github.com/katalvlaran/primerlib/conflict"
	"github.com/katalvlaran/primerlib/extract"
	"github.com/katalvlaran/primerlib/logging"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/pipeline"
	"github.com/katalvlaran/primerlib/primer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pool: 0 conflicts with 1 and 3, 2 is far from all, 3 fails GC.
var pool = primer.Pool{"ATGC", "AAGC", "GCAT", "ATCC"}

func smallConfig(strategy extract.Name) config.Config {
	cfg := config.Default()
	cfg.SequenceLength = 4
	cfg.MinGCFraction = 0.5
	cfg.MaxGCFraction = 0.5
	cfg.MinEditDistance = 2
	cfg.TargetCount = 2
	cfg.Strategy = string(strategy)
	cfg.ProgressInterval = 0
	return cfg
}

func TestRun_EveryStrategy(t *testing.T) {
	for _, name := range extract.Names() {
		t.Run(string(name), func(t *testing.T) {
			rep, err := pipeline.Run(context.Background(), smallConfig(name), pool)
			require.NoError(t, err)

			assert.Equal(t, name, rep.Strategy)
			assert.Len(t, rep.Indices, 2)
			assert.Contains(t, rep.Indices, 2)
			assert.NotContains(t, rep.Indices, 3)
			assert.Equal(t, pool.Select(rep.Indices), rep.Selected)
			assert.NoError(t, rep.Violation)
			assert.False(t, rep.Truncated)
			assert.True(t, rep.TargetReached)
			assert.EqualValues(t, 2, rep.Metrics.Accepted)
			assert.EqualValues(t, 1, rep.Metrics.RejectedComposition)
			assert.NotEmpty(t, rep.RunID)

			if name == extract.Greedy {
				assert.Zero(t, rep.GraphNodes)
				require.NotNil(t, rep.Cache)
				assert.NotZero(t, rep.Cache.Misses)
			} else {
				assert.Equal(t, 4, rep.GraphNodes)
				assert.Equal(t, 2, rep.GraphEdges, "the invalid candidate still has a conflict edge")
				assert.Nil(t, rep.Cache)
			}
		})
	}
}

func TestRun_Greedy(t *testing.T) {
	var (
		buf  bytes.Buffer
		hook []int
		run  = metrics.New()
	)
	cfg := smallConfig(extract.Greedy)
	cfg.TargetCount = 3

	rep, err := pipeline.Run(context.Background(), cfg, pool,
		pipeline.WithLogger(logging.New(logging.Options{Writer: &buf, Format: logging.FormatJSON})),
		pipeline.WithMetrics(run),
		pipeline.WithRunID("run-1"),
		pipeline.WithOnAccept(func(idx int) { hook = append(hook, idx) }),
	)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, rep.Indices)
	assert.Equal(t, []int{0, 2}, hook)
	assert.False(t, rep.TargetReached)
	assert.EqualValues(t, 1, rep.Metrics.RejectedDistance)
	assert.EqualValues(t, 2, run.Accepted())
	assert.Equal(t, "run-1", rep.RunID)

	var msgs []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		assert.Equal(t, "run-1", rec["run_id"])
		assert.Equal(t, "greedy", rec["strategy"])
		msgs = append(msgs, rec["msg"].(string))
	}
	assert.Contains(t, msgs, "run started")
	assert.Contains(t, msgs, "run complete")
}

func TestRun_PrecomputedEdges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 1\n"), 0o644))

	cfg := smallConfig(extract.MinDegree)
	cfg.UsePrecomputedEdges = true
	cfg.EdgesFile = path

	rep, err := pipeline.Run(context.Background(), cfg, pool)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.GraphEdges)
	assert.Equal(t, []int{2, 0}, rep.Indices)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("0 9\n"), 0o644))
	cfg.EdgesFile = bad
	_, err = pipeline.Run(context.Background(), cfg, pool)
	assert.ErrorIs(t, err, conflict.ErrEdgeOutOfRange)
	assert.ErrorIs(t, err, primer.ErrInput)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, name := range []extract.Name{extract.Greedy, extract.ExactClique} {
		t.Run(string(name), func(t *testing.T) {
			rep, err := pipeline.Run(ctx, smallConfig(name), pool)
			require.NoError(t, err)
			assert.True(t, rep.Truncated)
			assert.Empty(t, rep.Indices)
			assert.NoError(t, rep.Violation)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := smallConfig(extract.Greedy)
	cfg.MaxGCFraction = 0.1
	_, err := pipeline.Run(context.Background(), cfg, pool)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = pipeline.Run(context.Background(), smallConfig(extract.Greedy), nil)
	assert.ErrorIs(t, err, primer.ErrEmptyPool)

	_, err = pipeline.Run(context.Background(), smallConfig(extract.Greedy), primer.Pool{"ATGC", "ATG"})
	assert.ErrorIs(t, err, primer.ErrLengthMismatch)
}
