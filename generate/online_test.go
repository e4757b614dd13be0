package generate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primerlib/generate"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

var onlineConstraints = primer.Constraints{Length: 10, MinGC: 0.4, MaxGC: 0.6}

const onlineThreshold = 4

func TestOnline_ReachesTarget(t *testing.T) {
	for _, mode := range generate.Modes() {
		t.Run(string(mode), func(t *testing.T) {
			run := metrics.New()
			res, err := generate.Online(context.Background(), 30, onlineConstraints, onlineThreshold,
				generate.WithMode(mode), generate.WithSeed(11), generate.WithMetrics(run))
			require.NoError(t, err)

			assert.False(t, res.Truncated)
			require.Len(t, res.Sequences, 30)
			require.NoError(t, primer.CheckLibrary(res.Sequences, onlineConstraints, onlineThreshold, levenshtein.Exact{}))

			s := run.Snapshot()
			assert.Equal(t, res.Iterations, s.Iterations)
			assert.Equal(t, int64(30), s.Accepted)
			assert.Equal(t, s.Iterations, s.Accepted+s.RejectedComposition+s.RejectedDistance)
			assert.Len(t, s.Series, 30)
		})
	}
}

func TestOnline_CompositionRejects(t *testing.T) {
	// Balanced and rerolled candidates pass the GC check; uniform ones often
	// do not.
	gc := func(mode generate.Mode) int64 {
		run := metrics.New()
		_, err := generate.Online(context.Background(), 20, onlineConstraints, onlineThreshold,
			generate.WithMode(mode), generate.WithMetrics(run))
		require.NoError(t, err)
		return run.Snapshot().RejectedComposition
	}
	assert.Zero(t, gc(generate.Balanced))
	assert.Zero(t, gc(generate.Frequencies))
	assert.Positive(t, gc(generate.Uniform))
	assert.Positive(t, gc(generate.FrequenciesNoReroll))
}

func TestOnline_SeedDeterminism(t *testing.T) {
	grow := func(mode generate.Mode, seed int64) generate.OnlineResult {
		res, err := generate.Online(context.Background(), 25, onlineConstraints, onlineThreshold,
			generate.WithMode(mode), generate.WithSeed(seed))
		require.NoError(t, err)
		return res
	}
	for _, mode := range generate.Modes() {
		a, b := grow(mode, 5), grow(mode, 5)
		assert.Equal(t, a, b, "mode %s", mode)
		assert.NotEqual(t, a.Sequences, grow(mode, 6).Sequences, "mode %s", mode)
	}
	assert.Equal(t, grow(generate.Balanced, 0), grow(generate.Balanced, 246), "seed 0 means the default seed")
}

func TestOnline_FrequenciesSpreadBases(t *testing.T) {
	res, err := generate.Online(context.Background(), 40, onlineConstraints, onlineThreshold,
		generate.WithMode(generate.Frequencies), generate.WithSeed(3))
	require.NoError(t, err)

	// Inverse-frequency weights pull every position towards an even mix, so
	// no base may dominate a column.
	for i := 0; i < onlineConstraints.Length; i++ {
		counts := map[byte]int{}
		for _, s := range res.Sequences {
			counts[s[i]]++
		}
		for base, n := range counts {
			assert.Less(t, n, 25, "position %d base %c", i, base)
		}
	}
}

func TestOnline_Truncated(t *testing.T) {
	// Length 4 at threshold 4 admits very few mutually distant sequences.
	c := primer.Constraints{Length: 4, MinGC: 0, MaxGC: 1}
	run := metrics.New()
	res, err := generate.Online(context.Background(), 1000, c, 4,
		generate.WithMaxIterations(500), generate.WithMetrics(run))
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, int64(500), res.Iterations)
	assert.Less(t, len(res.Sequences), 1000)
	assert.Positive(t, run.Snapshot().RejectedDistance)
	require.NoError(t, primer.CheckLibrary(res.Sequences, c, 4, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err = generate.Online(ctx, 10, onlineConstraints, onlineThreshold)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Empty(t, res.Sequences)
	assert.Zero(t, res.Iterations)
}

func TestOnline_OnAccept(t *testing.T) {
	var sizes []int
	res, err := generate.Online(context.Background(), 5, onlineConstraints, onlineThreshold,
		generate.WithOnAccept(func(_ primer.Sequence, n int) { sizes = append(sizes, n) }))
	require.NoError(t, err)
	assert.Len(t, res.Sequences, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sizes)
}

func TestOnline_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := generate.Online(ctx, -1, onlineConstraints, onlineThreshold)
	assert.ErrorIs(t, err, generate.ErrBadCount)
	_, err = generate.Online(ctx, 1, primer.Constraints{Length: 3, MinGC: 0.4, MaxGC: 0.6}, 1)
	assert.ErrorIs(t, err, generate.ErrNoAdmissibleGC)
	_, err = generate.Online(ctx, 1, onlineConstraints, onlineThreshold, generate.WithMode("annealing"))
	assert.ErrorIs(t, err, generate.ErrUnknownMode)

	res, err := generate.Online(ctx, 0, onlineConstraints, onlineThreshold)
	require.NoError(t, err)
	assert.Empty(t, res.Sequences)
	assert.False(t, res.Truncated)
}

func TestParseMode(t *testing.T) {
	m, err := generate.ParseMode(" Frequencies_No_Reroll ")
	require.NoError(t, err)
	assert.Equal(t, generate.FrequenciesNoReroll, m)

	_, err = generate.ParseMode("")
	assert.ErrorIs(t, err, generate.ErrUnknownMode)
}
