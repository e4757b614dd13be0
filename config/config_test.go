package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/primerlib/config"
	"github.com/katalvlaran/primerlib/extract"
	"github.com/katalvlaran/primerlib/primer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000, cfg.TargetCount)
	assert.Equal(t, primer.DefaultConstraints(), cfg.Constraints())
	assert.Equal(t, 8, cfg.Threshold(), "round(0.4 × 20)")
	assert.Equal(t, extract.Greedy, cfg.StrategyName())
	assert.Equal(t, int64(246), cfg.RandomSeed)
	assert.Equal(t, 2*time.Second, cfg.ProgressInterval)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primerlib.yaml")
	body := `
sequence_length: 10
min_edit_distance: 3
strategy: Min_Degree_Elimination
use_precomputed_edges: true
edges_file: edges.bin
progress_interval: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.SequenceLength)
	assert.Equal(t, 3, cfg.Threshold())
	assert.Equal(t, extract.MinDegree, cfg.StrategyName())
	assert.Equal(t, "edges.bin", cfg.EdgesFile)
	assert.Equal(t, 500*time.Millisecond, cfg.ProgressInterval)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.45, cfg.MinGCFraction)
	assert.Equal(t, 10000, cfg.TargetCount)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour: blue\n"), 0o644))
	_, err = config.Load(unknown)
	assert.ErrorIs(t, err, config.ErrInvalid)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg, err := config.Load(empty)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"gc bounds inverted", func(c *config.Config) { c.MinGCFraction, c.MaxGCFraction = 0.6, 0.4 }, "max_gc_fraction"},
		{"gc out of range", func(c *config.Config) { c.MaxGCFraction = 1.5 }, "max_gc_fraction"},
		{"zero length", func(c *config.Config) { c.SequenceLength = 0 }, "sequence_length"},
		{"threshold above length", func(c *config.Config) { c.MinEditDistance = 21 }, "min_edit_distance"},
		{"negative threshold", func(c *config.Config) { c.MinEditDistance = -1 }, "min_edit_distance"},
		{"unknown strategy", func(c *config.Config) { c.Strategy = "simulated-annealing" }, "unknown strategy"},
		{"edges file missing", func(c *config.Config) { c.UsePrecomputedEdges = true }, "edges_file"},
		{"negative workers", func(c *config.Config) { c.Workers = -2 }, "workers"},
		{"negative cache", func(c *config.Config) { c.DistanceCacheSize = -1 }, "distance_cache_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
