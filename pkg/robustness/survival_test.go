package robustness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurvivalCurve(t *testing.T) {
	// five replicates over a 6-node network: breakdowns at steps 1, 2, 2,
	// one at step 4, and one that never broke
	breakdowns := []Breakdown{
		{Step: 1, Broke: true},
		{Step: 2, Broke: true},
		{Step: 2, Broke: true},
		{Step: 4, Broke: true},
		{Broke: false},
	}

	curve, err := SurvivalCurve(breakdowns, 6)
	require.NoError(t, err)

	// length n-1; at t=0 everyone is intact, at t=1 the first replicate
	// has fragmented, and the unbroken replicate never drops out
	assert.Equal(t, []int{5, 4, 2, 2, 1}, curve)
}

func TestSurvivalCurveProperties(t *testing.T) {
	breakdowns := []Breakdown{
		{Step: 0, Broke: true},
		{Step: 3, Broke: true},
		{Broke: false},
		{Broke: false},
	}

	curve, err := SurvivalCurve(breakdowns, 8)
	require.NoError(t, err)
	require.Len(t, curve, 7)

	for i, v := range curve {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, len(breakdowns))
		if i > 0 {
			assert.LessOrEqual(t, v, curve[i-1], "curve must be non-increasing")
		}
	}

	// the two unbroken replicates survive to the very end
	assert.Equal(t, 2, curve[len(curve)-1])
}

func TestSurvivalCurveNoReplicates(t *testing.T) {
	curve, err := SurvivalCurve(nil, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, curve)
}

func TestSurvivalCurveTooSmall(t *testing.T) {
	_, err := SurvivalCurve([]Breakdown{{Step: 1, Broke: true}}, 2)
	assert.ErrorIs(t, err, ErrTooSmall)
}
