package netgen

import (
	"fmt"

	model "gennet-sim/pkg/datamodel"
)

// ErdosRenyi generates a G(n,p) random network: every pair of nodes is
// linked independently with probability p, with weight 1.
func ErdosRenyi(n int, p float64, rng *model.Rand) (*Network, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrTooSmall, n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: p=%v", ErrProbability, p)
	}

	g := NewNetwork(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Bernoulli(p) {
				g.adj.SetSym(i, j, 1)
			}
		}
	}
	return g, nil
}

// PreferentialAttachment grows an n-node network by attaching each new
// node to m distinct existing nodes, chosen with probability proportional
// to their current degree (the Barabasi-Albert scheme).  The seed graph is
// a path over the first m+1 nodes.
func PreferentialAttachment(n, m int, rng *model.Rand) (*Network, error) {
	if m < 1 {
		return nil, fmt.Errorf("netgen: attachment parameter m=%d must be at least 1", m)
	}
	if n < m+2 {
		return nil, fmt.Errorf("%w: n=%d with m=%d", ErrTooSmall, n, m)
	}

	g := NewNetwork(n)

	// attachment targets, one entry per unit of degree
	targets := make([]int, 0, 2*n*m)
	for i := 0; i < m; i++ {
		g.adj.SetSym(i, i+1, 1)
		targets = append(targets, i, i+1)
	}

	for v := m + 1; v < n; v++ {
		// draw m distinct targets; kept as a slice in draw order so the
		// same seed always yields the same network
		chosen := make([]int, 0, m)
		for len(chosen) < m {
			w := targets[rng.Intn(int64(len(targets)))]
			duplicate := false
			for _, c := range chosen {
				if c == w {
					duplicate = true
					break
				}
			}
			if !duplicate {
				chosen = append(chosen, w)
			}
		}
		for _, w := range chosen {
			g.adj.SetSym(v, w, 1)
			targets = append(targets, v, w)
		}
	}
	return g, nil
}

// Connected wraps a generator with the single-component constraint: it
// regenerates until the result is one component, giving up after the
// allotted number of tries.
func Connected(tries int, gen func() (*Network, error)) (*Network, error) {
	for attempt := 0; attempt < tries; attempt++ {
		g, err := gen()
		if err != nil {
			return nil, err
		}
		if g.Components() == 1 {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w after %d tries", ErrNotConnected, tries)
}
