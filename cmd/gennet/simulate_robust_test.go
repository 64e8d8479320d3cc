package main

import (
	"testing"

	model "gennet-sim/pkg/datamodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyGenerator(t *testing.T) {
	cfg := model.MakeDefaultConfig().Robustness
	cfg.Nodes = 20
	cfg.LinkProb = 0.2
	cfg.AttachEdges = 2
	cfg.SingleComp = false

	rng := model.NewRand(1)

	for _, family := range []string{"random", "prefattach"} {
		gen, err := familyGenerator(family, cfg, rng)
		require.NoError(t, err)

		net, err := gen()
		require.NoError(t, err)
		assert.Equal(t, 20, net.N())
	}

	_, err := familyGenerator("smallworld", cfg, rng)
	assert.Error(t, err)
}

func TestFamilyGeneratorSingleComponent(t *testing.T) {
	cfg := model.MakeDefaultConfig().Robustness
	cfg.Nodes = 15
	cfg.LinkProb = 0.5
	cfg.SingleComp = true
	cfg.SingleCompTries = 100

	rng := model.NewRand(2)

	gen, err := familyGenerator("random", cfg, rng)
	require.NoError(t, err)

	net, err := gen()
	require.NoError(t, err)
	assert.Equal(t, 1, net.Components())
}
