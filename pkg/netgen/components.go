package netgen

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components returns the number of connected components of the network.
// Component membership follows edge structure only; weights don't matter
// beyond being positive.
func (g *Network) Components() int {
	return len(topo.ConnectedComponents(g.undirected()))
}

// undirected converts the snapshot into a gonum graph, isolated nodes
// included.
func (g *Network) undirected() *simple.UndirectedGraph {
	n := g.N()
	u := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		u.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.adj.At(i, j) > 0 {
				u.SetEdge(u.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	return u
}
