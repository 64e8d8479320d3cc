package robustness

import (
	"testing"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builds a network from an undirected edge list
func buildNetwork(t *testing.T, n int, edges [][2]int) *netgen.Network {
	t.Helper()
	g := netgen.NewNetwork(n)
	for _, e := range edges {
		require.NoError(t, g.SetWeight(e[0], e[1], 1))
	}
	return g
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"random", PolicyRandom},
		{"connectedness_desc", PolicyConnectednessDesc},
		{"connectedness_asc", PolicyConnectednessAsc},
	}
	for _, tc := range tests {
		policy, err := ParsePolicy(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, policy)
		assert.Equal(t, tc.in, policy.String())
	}

	_, err := ParsePolicy("bogus")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestMeasureTooSmall(t *testing.T) {
	rng := model.NewRand(1)
	net := buildNetwork(t, 2, [][2]int{{0, 1}})

	_, err := Measure(net, PolicyRandom, rng)
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestMeasureUnknownPolicy(t *testing.T) {
	rng := model.NewRand(2)
	net := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	_, err := Measure(net, Policy(99), rng)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

// removing the highest-degree node of the path 0-1-2-3 first (node 1 by
// the lowest-identifier tie-break over nodes 1 and 2) splits the network
func TestMeasurePathDescending(t *testing.T) {
	rng := model.NewRand(3)
	net := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	counts, err := Measure(net, PolicyConnectednessDesc, rng)
	require.NoError(t, err)

	// intact path is one component; removing node 1 leaves {0} and {2,3};
	// removing node 2 leaves {0} and {3}
	assert.Equal(t, []int{1, 2, 2}, counts)

	step, broke := BreakdownStep(counts)
	assert.True(t, broke)
	assert.Equal(t, 1, step)
}

// removing low-degree path ends first never fragments anything
func TestMeasurePathAscending(t *testing.T) {
	rng := model.NewRand(4)
	net := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	counts, err := Measure(net, PolicyConnectednessAsc, rng)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, counts)

	_, broke := BreakdownStep(counts)
	assert.False(t, broke, "the path never fell apart")
}

func TestMeasureSequenceShape(t *testing.T) {
	rng := model.NewRand(5)

	for _, policy := range Policies() {
		net, err := netgen.ErdosRenyi(20, 0.15, rng)
		require.NoError(t, err)

		counts, err := Measure(net, policy, rng)
		require.NoError(t, err)

		assert.Len(t, counts, 19, "n-1 counts for n=20")
		assert.Equal(t, net.Components(), counts[0], "first entry is the intact count")
		for _, c := range counts {
			assert.GreaterOrEqual(t, c, 1)
		}
	}
}

// a removal can only fragment a connected structure further, never glue
// it back together: on a complete network the count stays at 1
func TestMeasureCompleteStaysWhole(t *testing.T) {
	rng := model.NewRand(6)
	n := 10
	net := netgen.NewNetwork(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.NoError(t, net.SetWeight(i, j, 1))
		}
	}

	counts, err := Measure(net, PolicyRandom, rng)
	require.NoError(t, err)
	for _, c := range counts {
		assert.Equal(t, 1, c)
	}
	_, broke := BreakdownStep(counts)
	assert.False(t, broke)
}

// hub removal on a star fragments at the first step
func TestMeasureStarDescending(t *testing.T) {
	rng := model.NewRand(7)
	net := buildNetwork(t, 5, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})

	counts, err := Measure(net, PolicyConnectednessDesc, rng)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 4, counts[1], "losing the hub isolates every leaf")

	step, broke := BreakdownStep(counts)
	assert.True(t, broke)
	assert.Equal(t, 1, step)
}

// the input network must not be modified by a measurement
func TestMeasureLeavesInputIntact(t *testing.T) {
	rng := model.NewRand(8)
	net := buildNetwork(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	_, err := Measure(net, PolicyRandom, rng)
	require.NoError(t, err)

	assert.Equal(t, 4, net.N())
	assert.Equal(t, 3, net.EdgeCount())
}
