package epidemic

import (
	"testing"

	model "gennet-sim/pkg/datamodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdaptiveParams(t *testing.T) {
	params, err := NewAdaptiveParams(0.1, 0.1, 0.1, 0.2, 0.5, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCutWeight, params.CutWeight, "zero cut weight falls back to the default")

	params, err = NewAdaptiveParams(0.1, 0.1, 0.1, 0.2, 0.5, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.01, params.CutWeight)

	_, err = NewAdaptiveParams(0.1, 0.1, 0.1, 1.5, 0.5, 0)
	assert.ErrorIs(t, err, ErrProbability)

	_, err = NewAdaptiveParams(0.1, 0.1, 0.1, 0.2, -0.5, 0)
	assert.ErrorIs(t, err, ErrProbability)

	_, err = NewAdaptiveParams(1.5, 0.1, 0.1, 0.2, 0.5, 0)
	assert.ErrorIs(t, err, ErrProbability)

	_, err = NewAdaptiveParams(0.1, 0.1, 0.1, 0.2, 0.5, -0.001)
	assert.Error(t, err)
}

// below the prevalence threshold nothing is cut
func TestAdjustForPrevalenceBelowThreshold(t *testing.T) {
	rng := model.NewRand(1)
	net := completeNetwork(t, 10)
	s := NewState(10)
	s.Infect(0) // prevalence 0.1

	params, err := NewAdaptiveParams(0.1, 0, 0, 0.5, 1, 0)
	require.NoError(t, err)

	AdjustForPrevalence(net, s, params, rng)
	assert.Equal(t, 10*9/2, net.EdgeCount())
	for i := 0; i < 10; i++ {
		for j := i + 1; j < 10; j++ {
			assert.Equal(t, 1.0, net.Weight(i, j))
		}
	}
}

// above the threshold with p_cut=1 every edge drops to the residual
// weight; the edges stay structurally present
func TestAdjustForPrevalenceCutsAll(t *testing.T) {
	rng := model.NewRand(2)
	net := completeNetwork(t, 6)
	s := NewState(6)
	for i := 0; i < 4; i++ {
		s.Infect(i) // prevalence 0.66
	}

	params, err := NewAdaptiveParams(0.1, 0, 0, 0.5, 1, 0)
	require.NoError(t, err)

	AdjustForPrevalence(net, s, params, rng)
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			assert.Equal(t, DefaultCutWeight, net.Weight(i, j))
		}
	}
	assert.Equal(t, 6*5/2, net.EdgeCount(), "cut edges keep a tiny positive weight")
}

// p_cut=0 leaves the snapshot alone even above the threshold
func TestAdjustForPrevalenceZeroCutProb(t *testing.T) {
	rng := model.NewRand(3)
	net := completeNetwork(t, 4)
	s := NewState(4)
	s.Infect(0)
	s.Infect(1)

	params, err := NewAdaptiveParams(0.1, 0, 0, 0.25, 0, 0)
	require.NoError(t, err)

	AdjustForPrevalence(net, s, params, rng)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			assert.Equal(t, 1.0, net.Weight(i, j))
		}
	}
}

// a cut edge transmits with negligible probability but certain edges
// still transmit; the residual weight only matters for the cut ones
func TestAdaptiveTimestep(t *testing.T) {
	rng := model.NewRand(4)
	net := completeNetwork(t, 4)
	s := NewState(4)
	s.Infect(0)
	s.Infect(1) // prevalence 0.5, above threshold

	params, err := NewAdaptiveParams(1, 0, 0, 0.25, 1, 0)
	require.NoError(t, err)

	require.NoError(t, AdaptiveTimestep(s, net, params, rng))
	assertExclusive(t, s)

	// with all edges at the residual weight, transmission probability per
	// contact is 0.001; two susceptibles with two infectious contacts each
	// almost surely stay susceptible
	assert.LessOrEqual(t, s.CountInfected(), 3)
	assert.GreaterOrEqual(t, s.CountInfected(), 2)
}
