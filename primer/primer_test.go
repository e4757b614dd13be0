package primer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/primer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seqATGC  = "ATGCATGCATGCATGCATGC"
	seqGCTA  = "GCTAGCTAGCTAGCTAGCTA"
	seqCGTA  = "CGTACGTACGTACGTACGTA"
	seqLowGC = "ATTCATTCATTCATTCATTC"
)

func TestDefaults(t *testing.T) {
	c := primer.DefaultConstraints()
	assert.Equal(t, 20, c.Length)
	assert.Equal(t, 0.45, c.MinGC)
	assert.Equal(t, 0.55, c.MaxGC)
	assert.Equal(t, 8, primer.DefaultThreshold(20))
	assert.Equal(t, 4, primer.DefaultThreshold(10))
}

func TestValidComposition(t *testing.T) {
	c := primer.DefaultConstraints()
	cases := []struct {
		name string
		seq  string
		want bool
	}{
		{"balanced", seqATGC, true},
		{"low GC", seqLowGC, false},
		{"lower bound 9/20", "GGGGGCCCCAAAAAAAAAAA", true},
		{"upper bound 11/20", "GGGGGGCCCCCAAAAAAAAA", true},
		{"below lower bound 8/20", "GGGGCCCCAAAAAAAAAAAA", false},
		{"above upper bound 12/20", "GGGGGGCCCCCCAAAAAAAA", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, primer.ValidComposition(tc.seq, c))
		})
	}
}

func TestIndividuallyValid(t *testing.T) {
	c := primer.DefaultConstraints()
	assert.True(t, primer.IndividuallyValid(seqATGC, c))
	assert.False(t, primer.IndividuallyValid(seqATGC[:19], c), "wrong length")
	assert.False(t, primer.IndividuallyValid(seqLowGC, c), "wrong composition")
	assert.InDelta(t, 0.25, primer.GCFraction(seqLowGC), 1e-12)
}

// TestPairValid_IdenticalRejected covers the identical-pair scenario: distance 0
// is below any positive threshold.
func TestPairValid_IdenticalRejected(t *testing.T) {
	assert.False(t, primer.PairValid(seqATGC, seqATGC, 8, nil))
	assert.True(t, primer.PairValid(seqATGC, seqGCTA, 8, nil))
	assert.True(t, primer.PairValid(seqATGC, seqGCTA, 12, levenshtein.NewCached(nil, 4)), "distance 12 is exactly the threshold")
	assert.False(t, primer.PairValid(seqATGC, seqGCTA, 13, nil))
}

// TestCheckLibrary_Scenario1 checks the three-primer library with threshold 8.
func TestCheckLibrary_Scenario1(t *testing.T) {
	lib := []string{seqATGC, seqGCTA, seqCGTA}
	c := primer.DefaultConstraints()

	require.NoError(t, primer.CheckLibrary(lib, c, 8, nil))
	// Idempotent: a second run yields the same outcome.
	require.NoError(t, primer.CheckLibrary(lib, c, 8, nil))
}

func TestCheckLibrary_Violations(t *testing.T) {
	c := primer.DefaultConstraints()

	t.Run("length", func(t *testing.T) {
		err := primer.CheckLibrary([]string{seqATGC, "ATGC"}, c, 8, nil)
		var v *primer.ViolationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, primer.ViolationLength, v.Kind)
		assert.Equal(t, 1, v.I)
		assert.ErrorIs(t, err, primer.ErrInvariantViolation)
	})

	t.Run("composition", func(t *testing.T) {
		err := primer.CheckLibrary([]string{seqLowGC}, c, 8, nil)
		var v *primer.ViolationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, primer.ViolationComposition, v.Kind)
	})

	t.Run("distance", func(t *testing.T) {
		lib := []string{seqATGC, seqGCTA, seqATGC}
		err1 := primer.CheckLibrary(lib, c, 8, nil)
		err2 := primer.CheckLibrary(lib, c, 8, nil)
		var v *primer.ViolationError
		require.ErrorAs(t, err1, &v)
		assert.Equal(t, primer.ViolationDistance, v.Kind)
		assert.Equal(t, 0, v.I)
		assert.Equal(t, 2, v.J)
		assert.Equal(t, 0, v.Distance)
		assert.Equal(t, err1.Error(), err2.Error(), "validation must be repeatable")
		assert.Contains(t, err1.Error(), "are 0 apart, need 8")
	})

	t.Run("empty library is valid", func(t *testing.T) {
		assert.NoError(t, primer.CheckLibrary(nil, c, 8, nil))
	})
}

func TestReadPool(t *testing.T) {
	t.Run("ok with comments and case folding", func(t *testing.T) {
		in := "# candidates\n" + strings.ToLower(seqATGC) + "\n\n>second\n" + seqGCTA + "\n"
		pool, err := primer.ReadPool(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, primer.Pool{seqATGC, seqGCTA}, pool)
		assert.Equal(t, 2, pool.Len())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := primer.ReadPool(strings.NewReader("\n# nothing\n"))
		assert.ErrorIs(t, err, primer.ErrEmptyPool)
		assert.ErrorIs(t, err, primer.ErrInput)
	})

	t.Run("bad symbol", func(t *testing.T) {
		_, err := primer.ReadPool(strings.NewReader(seqATGC + "\nATGN\n"))
		assert.ErrorIs(t, err, primer.ErrBadSymbol)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := primer.ReadPool(strings.NewReader(seqATGC + "\nATGC\n"))
		assert.ErrorIs(t, err, primer.ErrLengthMismatch)
		assert.True(t, errors.Is(err, primer.ErrInput))
	})
}

func TestPool_ValidateAndSelect(t *testing.T) {
	pool := primer.Pool{seqATGC, seqGCTA, seqCGTA}
	require.NoError(t, pool.Validate())
	assert.Equal(t, []string{seqCGTA, seqATGC}, pool.Select([]int{2, 0}))

	assert.ErrorIs(t, primer.Pool{}.Validate(), primer.ErrEmptyPool)
	assert.ErrorIs(t, primer.Pool{seqATGC, "ATGX"}.Validate(), primer.ErrBadSymbol)
	assert.ErrorIs(t, primer.Pool{seqATGC, "ATGC"}.Validate(), primer.ErrLengthMismatch)
}
