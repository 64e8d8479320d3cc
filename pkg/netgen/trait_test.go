package netgen

import (
	"testing"

	model "gennet-sim/pkg/datamodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a minimal homophily generator: individuals get alternating categories and
// only same-category pairs are linked
type blockGenerator struct {
	pref   TraitPreference
	traits []int
}

func (g *blockGenerator) Generate(n int, rng *model.Rand) (*Network, error) {
	g.traits = make([]int, n)
	for i := range g.traits {
		g.traits[i] = i % g.pref.Categories
	}

	net := NewNetwork(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if (g.traits[i] == g.traits[j]) == g.pref.Similar {
				if err := net.SetWeight(i, j, 1); err != nil {
					return nil, err
				}
			}
		}
	}
	return net, nil
}

func (g *blockGenerator) Traits() []int { return g.traits }

func TestTraitGeneratorContract(t *testing.T) {
	var gen TraitGenerator = &blockGenerator{
		pref: TraitPreference{Categories: 2, Similar: true},
	}

	net, err := gen.Generate(6, model.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, 6, net.N())

	traits := gen.Traits()
	require.Len(t, traits, 6)

	for i := 0; i < net.N(); i++ {
		assert.Zero(t, net.Weight(i, i))
		for j := i + 1; j < net.N(); j++ {
			assert.Equal(t, net.Weight(i, j), net.Weight(j, i))
			if net.HasEdge(i, j) {
				assert.Equal(t, traits[i], traits[j], "homophily links same-category pairs only")
			}
		}
	}

	// two homophilous blocks of three nodes each
	assert.Equal(t, 2, net.Components())
}
