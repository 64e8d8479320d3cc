package netgen

import model "gennet-sim/pkg/datamodel"

// TraitPreference describes a trait-preference network request: how many
// trait categories the population carries and whether individuals prefer
// linking to similar or dissimilar others.  The generator itself lives
// outside this module; implementations plug in via Generator.
type TraitPreference struct {
	Categories int
	// Similar is true for homophily (prefer same-category partners) and
	// false for heterophily.
	Similar bool
	// Weighted selects weighted edges over 0/1 links.
	Weighted bool
	// TargetDegree is the average degree the generator should aim for.
	TargetDegree float64
}

// A Generator produces one network snapshot per call.  The engines accept
// any implementation that honors the Network invariants (symmetric,
// non-negative, zero diagonal).  Trait-preference generators additionally
// report the per-individual trait assignment behind the snapshot.
type Generator interface {
	Generate(n int, rng *model.Rand) (*Network, error)
}

// A TraitGenerator also exposes the trait categories it assigned, indexed
// by individual.
type TraitGenerator interface {
	Generator
	Traits() []int
}
