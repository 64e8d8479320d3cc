package epidemic

import (
	"fmt"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"
)

// DefaultCutWeight is the residual weight an edge is cut down to.  Edges
// keep a tiny non-zero weight rather than vanishing so that weight-based
// quantities computed downstream never divide by an empty row.
const DefaultCutWeight = 0.001

// AdaptiveParams extends Params with a prevalence-triggered edge-cutting
// rule: once the infected fraction exceeds PrevThreshold, every edge of
// the current snapshot is cut down to CutWeight with probability CutProb
// before transmission.
type AdaptiveParams struct {
	Params
	PrevThreshold float64
	CutProb       float64
	CutWeight     float64
}

// NewAdaptiveParams validates all probabilities; a CutWeight of zero is
// replaced by DefaultCutWeight.
func NewAdaptiveParams(si, ir, rs, prevThreshold, cutProb, cutWeight float64) (AdaptiveParams, error) {
	params, err := NewParams(si, ir, rs)
	if err != nil {
		return AdaptiveParams{}, err
	}
	for _, p := range []float64{prevThreshold, cutProb} {
		if p < 0 || p > 1 {
			return AdaptiveParams{}, fmt.Errorf("%w: %v", ErrProbability, p)
		}
	}
	if cutWeight == 0 {
		cutWeight = DefaultCutWeight
	}
	if cutWeight < 0 {
		return AdaptiveParams{}, fmt.Errorf("epidemic: negative cut weight %v", cutWeight)
	}
	return AdaptiveParams{
		Params:        params,
		PrevThreshold: prevThreshold,
		CutProb:       cutProb,
		CutWeight:     cutWeight,
	}, nil
}

// AdjustForPrevalence applies the edge-cutting rule to one snapshot.  It
// mutates only the snapshot it is handed; since every timestep consumes
// an independently generated snapshot, nothing is ever restored.
func AdjustForPrevalence(net *netgen.Network, s *State, params AdaptiveParams, rng *model.Rand) {
	if s.Prevalence() <= params.PrevThreshold {
		return
	}
	n := net.N()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if net.Weight(i, j) > params.CutWeight && rng.Bernoulli(params.CutProb) {
				// SetWeight can't fail here: i != j and the weight is positive
				_ = net.SetWeight(i, j, params.CutWeight)
			}
		}
	}
}

// AdaptiveTimestep is Timestep with the edge-cutting rule applied first.
func AdaptiveTimestep(s *State, net *netgen.Network, params AdaptiveParams, rng *model.Rand) error {
	AdjustForPrevalence(net, s, params, rng)
	return Timestep(s, net, params.Params, rng)
}
