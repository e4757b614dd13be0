package core_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/primerlib/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidual_RemoveUpdatesDegrees(t *testing.T) {
	g := scenarioGraph(t)
	r := core.NewResidual(g, nil)

	assert.Equal(t, 4, r.LiveCount())
	assert.Equal(t, 2, r.LiveEdges())
	assert.Equal(t, 2, r.Degree(1))

	changed := map[int]int{}
	r.OnDegreeChange(func(v, deg int) { changed[v] = deg })

	require.True(t, r.Remove(0))
	assert.False(t, r.Remove(0), "second removal is a no-op")
	assert.False(t, r.Alive(0))
	assert.Equal(t, 0, r.Degree(0))
	assert.Equal(t, 1, r.Degree(1))
	assert.Equal(t, 1, r.LiveEdges())
	assert.Equal(t, map[int]int{1: 1}, changed)
	assert.Equal(t, []int{1, 2, 3}, r.LiveNodes())

	// The immutable graph is unaffected.
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 2, g.Degree(1))
}

func TestResidual_RemoveClosed(t *testing.T) {
	g := scenarioGraph(t)
	r := core.NewResidual(g, nil)

	assert.Equal(t, []int{0, 2}, r.RemoveClosed(1))
	assert.Equal(t, []int{3}, r.LiveNodes())
	assert.Equal(t, 0, r.LiveEdges())
	assert.Nil(t, r.RemoveClosed(1))
}

func TestResidual_KeepFilter(t *testing.T) {
	g := scenarioGraph(t)
	r := core.NewResidual(g, func(v int) bool { return v != 1 })

	assert.Equal(t, 3, r.LiveCount())
	assert.Equal(t, 0, r.LiveEdges())
	assert.Equal(t, 0, r.Degree(0))

	var nb []int
	r.LiveNeighbors(0, func(w int) { nb = append(nb, w) })
	assert.Empty(t, nb)
}

func TestResidual_SampleCoversLiveNodes(t *testing.T) {
	g := scenarioGraph(t)
	r := core.NewResidual(g, nil)
	r.Remove(2)

	rng := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for k := 0; k < 200; k++ {
		v := r.Sample(rng)
		require.True(t, r.Alive(v))
		seen[v] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 3: true}, seen)

	for _, v := range r.LiveNodes() {
		r.Remove(v)
	}
	assert.Equal(t, -1, r.Sample(rng))
}
