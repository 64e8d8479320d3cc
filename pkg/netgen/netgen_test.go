package netgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builds a network from an undirected edge list
func buildNetwork(t *testing.T, n int, edges [][2]int) *Network {
	t.Helper()
	g := NewNetwork(n)
	for _, e := range edges {
		require.NoError(t, g.SetWeight(e[0], e[1], 1))
	}
	return g
}

func TestNewNetwork(t *testing.T) {
	g := NewNetwork(4)
	assert.Equal(t, 4, g.N())
	assert.Equal(t, 0, g.EdgeCount())
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, 0.0, g.Weight(i, j))
		}
	}
}

func TestSetWeight(t *testing.T) {
	g := NewNetwork(3)

	require.NoError(t, g.SetWeight(0, 1, 0.5))
	assert.Equal(t, 0.5, g.Weight(0, 1))
	assert.Equal(t, 0.5, g.Weight(1, 0), "weights must be symmetric")

	assert.Error(t, g.SetWeight(1, 1, 1), "self-loops are rejected")
	assert.Error(t, g.SetWeight(0, 2, -1), "negative weights are rejected")
}

func TestDegrees(t *testing.T) {
	// path 0-1-2-3
	g := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	assert.Equal(t, []float64{1, 2, 2, 1}, g.Degrees())
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(0, 2))
	assert.False(t, g.HasEdge(1, 1))
}

func TestSubnetwork(t *testing.T) {
	// path 0-1-2-3; dropping node 1 leaves 0 isolated and 2-3 linked
	g := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	sub := g.Subnetwork([]int{0, 2, 3})
	assert.Equal(t, 3, sub.N())
	assert.Equal(t, 1, sub.EdgeCount())
	assert.False(t, sub.HasEdge(0, 1))
	assert.True(t, sub.HasEdge(1, 2))

	// the original is untouched
	assert.Equal(t, 3, g.EdgeCount())
}

func TestClone(t *testing.T) {
	g := buildNetwork(t, 3, [][2]int{{0, 1}})
	cp := g.Clone()

	require.NoError(t, cp.SetWeight(1, 2, 1))
	assert.Equal(t, 2, cp.EdgeCount())
	assert.Equal(t, 1, g.EdgeCount(), "clone must not share storage")
}
