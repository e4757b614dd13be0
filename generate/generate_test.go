package generate_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/primerlib/generate"
	"github.com/katalvlaran/primerlib/primer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCCounts(t *testing.T) {
	cases := []struct {
		name string
		c    primer.Constraints
		want []int
	}{
		{"default", primer.DefaultConstraints(), []int{9, 10, 11}},
		{"full range", primer.Constraints{Length: 4, MinGC: 0, MaxGC: 1}, []int{0, 1, 2, 3, 4}},
		{"exact half", primer.Constraints{Length: 6, MinGC: 0.5, MaxGC: 0.5}, []int{3}},
		{"none", primer.Constraints{Length: 3, MinGC: 0.4, MaxGC: 0.6}, nil},
		{"zero length", primer.Constraints{Length: 0, MinGC: 0, MaxGC: 1}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, generate.GCCounts(tc.c))
		})
	}
}

func TestBalancedGC(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := primer.DefaultConstraints()
	for i := 0; i < 200; i++ {
		s, err := generate.BalancedGC(rng, c)
		require.NoError(t, err)
		require.True(t, primer.IndividuallyValid(s, c), s)
	}

	_, err := generate.BalancedGC(rng, primer.Constraints{Length: 3, MinGC: 0.4, MaxGC: 0.6})
	assert.ErrorIs(t, err, generate.ErrNoAdmissibleGC)
}

func TestRandom(t *testing.T) {
	s := generate.Random(rand.New(rand.NewSource(7)), 50)
	assert.Len(t, s, 50)
	assert.NoError(t, primer.Pool{s}.Validate())
}

func TestPool(t *testing.T) {
	c := primer.DefaultConstraints()
	a, err := generate.Pool(100, c, 5)
	require.NoError(t, err)
	b, err := generate.Pool(100, c, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same pool")
	require.NoError(t, a.Validate())

	d, err := generate.Pool(100, c, 6)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)

	z1, _ := generate.Pool(10, c, 0)
	z2, _ := generate.Pool(10, c, 246)
	assert.Equal(t, z1, z2, "seed 0 means the default seed")

	empty, err := generate.Pool(0, c, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = generate.Pool(-1, c, 1)
	assert.ErrorIs(t, err, generate.ErrBadCount)
	_, err = generate.Pool(3, primer.Constraints{Length: 3, MinGC: 0.4, MaxGC: 0.6}, 1)
	assert.ErrorIs(t, err, generate.ErrNoAdmissibleGC)
}

func TestRandomPool(t *testing.T) {
	p, err := generate.RandomPool(20, 12, 3)
	require.NoError(t, err)
	assert.Len(t, p, 20)
	require.NoError(t, p.Validate())

	_, err = generate.RandomPool(-1, 12, 3)
	assert.ErrorIs(t, err, generate.ErrBadCount)
}
