package core_test

import (
	"testing"

	"github.com/katalvlaran/primerlib/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioGraph is nodes {0,1,2,3} with edges (0,1),(1,2); node 3 is isolated.
func scenarioGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.New(4, []core.Edge{{U: 0, V: 1}, {U: 2, V: 1}})
	require.NoError(t, err)
	return g
}

func TestNew_Errors(t *testing.T) {
	_, err := core.New(-1, nil)
	assert.ErrorIs(t, err, core.ErrNegativeSize)

	_, err = core.New(3, []core.Edge{{U: 0, V: 3}})
	assert.ErrorIs(t, err, core.ErrNodeOutOfRange)

	_, err = core.New(3, []core.Edge{{U: -1, V: 0}})
	assert.ErrorIs(t, err, core.ErrNodeOutOfRange)

	_, err = core.New(3, []core.Edge{{U: 2, V: 2}})
	assert.ErrorIs(t, err, core.ErrSelfLoop)
}

func TestNew_DeduplicatesAndSorts(t *testing.T) {
	g, err := core.New(5, []core.Edge{
		{U: 3, V: 1}, {U: 1, V: 3}, {U: 1, V: 0}, {U: 1, V: 3}, {U: 4, V: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []int{0, 3, 4}, g.Neighbors(1))
	assert.Equal(t, 3, g.Degree(1))
	assert.Equal(t, 0, g.Degree(2))
	assert.Equal(t, 0, g.Degree(99))
	assert.Nil(t, g.Neighbors(-1))
	assert.Equal(t, []core.Edge{{U: 0, V: 1}, {U: 1, V: 3}, {U: 1, V: 4}}, g.Edges())
}

func TestGraph_NodeSetAndSymmetry(t *testing.T) {
	g := scenarioGraph(t)

	assert.Equal(t, []int{0, 1, 2}, g.Nodes())
	assert.Equal(t, []int{3}, g.Isolated())

	for u := 0; u < g.Len(); u++ {
		assert.False(t, g.HasEdge(u, u), "self-loop at %d", u)
		for v := 0; v < g.Len(); v++ {
			assert.Equal(t, g.HasEdge(u, v), g.HasEdge(v, u), "asymmetric (%d,%d)", u, v)
		}
	}
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(2, 1))
	assert.False(t, g.HasEdge(0, 2))
	assert.False(t, g.HasEdge(0, 7))
}

func TestEdge_Normalize(t *testing.T) {
	assert.Equal(t, core.Edge{U: 1, V: 4}, core.Edge{U: 4, V: 1}.Normalize())
	assert.Equal(t, core.Edge{U: 1, V: 4}, core.Edge{U: 1, V: 4}.Normalize())
}

func TestComponents(t *testing.T) {
	g, err := core.New(7, []core.Edge{{U: 0, V: 4}, {U: 4, V: 2}, {U: 1, V: 5}})
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0, 2, 4}, {1, 5}, {3}, {6}}, g.Components(nil))

	// Dropping node 4 splits its component.
	keep := func(v int) bool { return v != 4 && v != 6 }
	assert.Equal(t, [][]int{{0}, {1, 5}, {2}, {3}}, g.Components(keep))
}

func TestEmptyGraph(t *testing.T) {
	g, err := core.New(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Isolated())
	assert.Empty(t, g.Components(nil))
}
