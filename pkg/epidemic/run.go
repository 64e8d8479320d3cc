package epidemic

import (
	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"
)

// Run advances the state through one snapshot per timestep and returns
// the prevalence recorded after each step.  The state is mutated in
// place; the caller hands over ownership for the duration of the run.
func Run(s *State, sequence []*netgen.Network, params Params, rng *model.Rand) ([]float64, error) {
	prevalence := make([]float64, 0, len(sequence))
	for _, net := range sequence {
		if err := Timestep(s, net, params, rng); err != nil {
			return nil, err
		}
		prevalence = append(prevalence, s.Prevalence())
	}
	return prevalence, nil
}

// RunAdaptive is Run with the prevalence-triggered edge-cutting rule.
// Snapshots may be mutated by the cutting rule as the run proceeds.
func RunAdaptive(s *State, sequence []*netgen.Network, params AdaptiveParams, rng *model.Rand) ([]float64, error) {
	prevalence := make([]float64, 0, len(sequence))
	for _, net := range sequence {
		if err := AdaptiveTimestep(s, net, params, rng); err != nil {
			return nil, err
		}
		prevalence = append(prevalence, s.Prevalence())
	}
	return prevalence, nil
}
