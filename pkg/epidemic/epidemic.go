// Package epidemic advances a susceptible-infected-recovered compartment
// model over a sequence of social-network snapshots, one snapshot per
// timestep.  Within a timestep, transitions happen in the fixed order
// S->I (transmission), I->R (recovery), R->S (loss of immunity).
package epidemic

import (
	"errors"
	"fmt"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"
)

var (
	// ErrProbability is returned when an epidemiological parameter
	// falls outside [0,1].
	ErrProbability = errors.New("epidemic: probability outside [0,1]")

	// ErrSizeMismatch is returned when a network snapshot does not
	// cover the same individuals as the population state.
	ErrSizeMismatch = errors.New("epidemic: network and population sizes differ")

	// ErrBadSeed is returned when the requested number of initial
	// infections doesn't fit the population.
	ErrBadSeed = errors.New("epidemic: invalid number of initial infections")
)

// State tracks compartment membership for a fixed population.  Exactly
// one of S, I, R is true per individual at all times.
type State struct {
	S []bool
	I []bool
	R []bool
}

// NewState returns a fully susceptible population of n individuals.
func NewState(n int) *State {
	return &State{
		S: makeTrue(n),
		I: make([]bool, n),
		R: make([]bool, n),
	}
}

func makeTrue(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

// N returns the population size.
func (s *State) N() int {
	return len(s.S)
}

// Infect moves individual i into the infected compartment regardless of
// its current compartment.
func (s *State) Infect(i int) {
	s.S[i] = false
	s.I[i] = true
	s.R[i] = false
}

// SeedInfections infects k distinct individuals chosen uniformly.
func (s *State) SeedInfections(k int, rng *model.Rand) error {
	if k < 1 || k > s.N() {
		return fmt.Errorf("%w: k=%d with n=%d", ErrBadSeed, k, s.N())
	}
	perm := rng.Perm(s.N())
	for _, i := range perm[:k] {
		s.Infect(i)
	}
	return nil
}

// CountInfected returns the number of currently infected individuals.
func (s *State) CountInfected() int {
	count := 0
	for _, infected := range s.I {
		if infected {
			count++
		}
	}
	return count
}

// Prevalence returns the infected fraction of the population.
func (s *State) Prevalence() float64 {
	return float64(s.CountInfected()) / float64(s.N())
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	cp := &State{
		S: make([]bool, len(s.S)),
		I: make([]bool, len(s.I)),
		R: make([]bool, len(s.R)),
	}
	copy(cp.S, s.S)
	copy(cp.I, s.I)
	copy(cp.R, s.R)
	return cp
}

// Params holds the per-timestep transition probabilities: transmission
// per infectious contact (SI), recovery (IR), and loss of immunity (RS).
type Params struct {
	SI float64
	IR float64
	RS float64
}

// NewParams validates the transition probabilities up front; the engine
// itself assumes they're in range.
func NewParams(si, ir, rs float64) (Params, error) {
	for _, p := range []float64{si, ir, rs} {
		if p < 0 || p > 1 {
			return Params{}, fmt.Errorf("%w: %v", ErrProbability, p)
		}
	}
	return Params{SI: si, IR: ir, RS: rs}, nil
}

// Transmit spreads infection for one timestep.  Every infected individual
// runs an independent Bernoulli trial against each of its contacts with
// success probability weight*si; a susceptible contact becomes infected
// if at least one trial against it succeeds.  Only the individuals
// infected before the call transmit; recovered contacts are unaffected.
func Transmit(s *State, net *netgen.Network, si float64, rng *model.Rand) error {
	n := s.N()
	if net.N() != n {
		return fmt.Errorf("%w: network %d, population %d", ErrSizeMismatch, net.N(), n)
	}

	newlyInfected := make([]bool, n)
	for i := 0; i < n; i++ {
		if !s.I[i] {
			continue
		}
		for j := 0; j < n; j++ {
			w := net.Weight(i, j)
			if w <= 0 {
				continue
			}
			// the trial is drawn for every contact so the draw sequence
			// depends only on the infected set and the network
			if rng.Bernoulli(w*si) && s.S[j] {
				newlyInfected[j] = true
			}
		}
	}

	for j := 0; j < n; j++ {
		if newlyInfected[j] {
			s.S[j] = false
			s.I[j] = true
		}
	}
	return nil
}

// Timestep advances the population through one snapshot: transmission
// over the pre-step infected set, then recovery of that same set, then
// loss of immunity.  An individual infected this step cannot recover
// this step; an individual recovering this step can lose immunity this
// step.
func Timestep(s *State, net *netgen.Network, params Params, rng *model.Rand) error {
	n := s.N()

	infectedBefore := make([]bool, n)
	copy(infectedBefore, s.I)

	anyInfected := false
	for i := 0; i < n; i++ {
		if infectedBefore[i] {
			anyInfected = true
			break
		}
	}

	if anyInfected {
		if err := Transmit(s, net, params.SI, rng); err != nil {
			return err
		}
	}

	// recovery, over the pre-transmission infected set
	for i := 0; i < n; i++ {
		if infectedBefore[i] && rng.Bernoulli(params.IR) {
			s.I[i] = false
			s.R[i] = true
		}
	}

	// loss of immunity
	for i := 0; i < n; i++ {
		if s.R[i] && rng.Bernoulli(params.RS) {
			s.R[i] = false
			s.S[i] = true
		}
	}
	return nil
}
