// Package netgen builds the social-network snapshots consumed by the
// simulation engines: symmetric non-negative adjacency matrices with a
// zero diagonal, one row/column per individual.
package netgen

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooSmall is returned when a generator is asked for fewer nodes
	// than its family can produce.
	ErrTooSmall = errors.New("netgen: too few nodes")

	// ErrProbability is returned for a probability outside [0,1].
	ErrProbability = errors.New("netgen: probability outside [0,1]")

	// ErrNotConnected is returned when the single-component constraint
	// could not be met within the allotted attempts.
	ErrNotConnected = errors.New("netgen: could not generate a single-component network")
)

// Network is a social-network snapshot: an n-by-n symmetric matrix of
// non-negative connection weights with a zero diagonal.  A nonzero entry
// means the two individuals can transmit to one another; for unweighted
// families the entry is exactly 1.
type Network struct {
	adj *mat.SymDense
}

// NewNetwork returns an edgeless network over n individuals.
func NewNetwork(n int) *Network {
	return &Network{adj: mat.NewSymDense(n, nil)}
}

// N returns the number of individuals.
func (g *Network) N() int {
	return g.adj.SymmetricDim()
}

// Weight returns the connection weight between i and j.
func (g *Network) Weight(i, j int) float64 {
	return g.adj.At(i, j)
}

// SetWeight sets the symmetric connection weight between i and j.
// Self-loops and negative weights are rejected.
func (g *Network) SetWeight(i, j int, w float64) error {
	if i == j {
		return fmt.Errorf("netgen: self-loop on node %d", i)
	}
	if w < 0 {
		return fmt.Errorf("netgen: negative weight %v on edge %d-%d", w, i, j)
	}
	g.adj.SetSym(i, j, w)
	return nil
}

// HasEdge reports whether i and j are connected by any positive weight.
func (g *Network) HasEdge(i, j int) bool {
	return i != j && g.adj.At(i, j) > 0
}

// Degree returns the row-sum degree of node i.  For unweighted networks
// this is the neighbor count; for weighted ones it is the strength.
func (g *Network) Degree(i int) float64 {
	n := g.N()
	var sum float64
	for j := 0; j < n; j++ {
		sum += g.adj.At(i, j)
	}
	return sum
}

// Degrees returns the row-sum degree of every node.
func (g *Network) Degrees() []float64 {
	n := g.N()
	degrees := make([]float64, n)
	for i := 0; i < n; i++ {
		degrees[i] = g.Degree(i)
	}
	return degrees
}

// EdgeCount returns the number of undirected edges with positive weight.
func (g *Network) EdgeCount() int {
	n := g.N()
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.adj.At(i, j) > 0 {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the network.
func (g *Network) Clone() *Network {
	n := g.N()
	cp := mat.NewSymDense(n, nil)
	cp.CopySym(g.adj)
	return &Network{adj: cp}
}

// Subnetwork returns the network induced by the given nodes, reindexed to
// 0..len(keep)-1 in the order given.
func (g *Network) Subnetwork(keep []int) *Network {
	sub := NewNetwork(len(keep))
	for a, i := range keep {
		for b := a + 1; b < len(keep); b++ {
			j := keep[b]
			sub.adj.SetSym(a, b, g.adj.At(i, j))
		}
	}
	return sub
}
