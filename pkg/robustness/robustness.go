// Package robustness measures how a social network falls apart under
// sequential node removal: nodes are deleted one at a time per a removal
// policy, and the number of connected components is recorded after every
// deletion until only two nodes remain.
package robustness

import (
	"errors"
	"fmt"
	"sort"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"
)

var (
	// ErrTooSmall is returned for networks with fewer than three nodes;
	// component counts are only meaningful down to two remaining nodes.
	ErrTooSmall = errors.New("robustness: network needs at least 3 nodes")

	// ErrUnknownPolicy is returned for a removal policy outside the
	// recognized set.
	ErrUnknownPolicy = errors.New("robustness: unrecognized removal policy")
)

// Policy selects the order in which nodes are removed.
type Policy int

const (
	// PolicyRandom removes nodes in a uniform random order.
	PolicyRandom Policy = iota
	// PolicyConnectednessDesc removes the highest-degree node first.
	PolicyConnectednessDesc
	// PolicyConnectednessAsc removes the lowest-degree node first.
	PolicyConnectednessAsc
)

func (p Policy) String() string {
	switch p {
	case PolicyRandom:
		return "random"
	case PolicyConnectednessDesc:
		return "connectedness_desc"
	case PolicyConnectednessAsc:
		return "connectedness_asc"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps a config string onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "random":
		return PolicyRandom, nil
	case "connectedness_desc":
		return PolicyConnectednessDesc, nil
	case "connectedness_asc":
		return PolicyConnectednessAsc, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Policies lists the recognized removal policies.
func Policies() []Policy {
	return []Policy{PolicyRandom, PolicyConnectednessDesc, PolicyConnectednessAsc}
}

// removalOrder computes the full schedule of n-2 removals.  Degree-based
// policies sort the intact network's row-sum degrees with ties broken by
// lowest identifier.
func removalOrder(net *netgen.Network, policy Policy, rng *model.Rand) ([]int, error) {
	n := net.N()

	var order []int
	switch policy {
	case PolicyRandom:
		order = rng.Perm(n)
	case PolicyConnectednessDesc, PolicyConnectednessAsc:
		degrees := net.Degrees()
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			if policy == PolicyConnectednessDesc {
				return degrees[order[a]] > degrees[order[b]]
			}
			return degrees[order[a]] < degrees[order[b]]
		})
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}
	return order[:n-2], nil
}

// Measure removes n-2 nodes one at a time per the policy and returns the
// component counts along the way.  The result has length n-1: the count
// of the intact network followed by one count per removal.  The input
// network is not modified.
func Measure(net *netgen.Network, policy Policy, rng *model.Rand) ([]int, error) {
	n := net.N()
	if n < 3 {
		return nil, fmt.Errorf("%w: n=%d", ErrTooSmall, n)
	}

	order, err := removalOrder(net, policy, rng)
	if err != nil {
		return nil, err
	}

	counts := make([]int, 0, n-1)
	counts = append(counts, net.Components())

	// nodesLeft holds original identifiers; current is reindexed to match
	nodesLeft := make([]int, n)
	for i := range nodesLeft {
		nodesLeft[i] = i
	}
	current := net

	for _, victim := range order {
		keep := make([]int, 0, len(nodesLeft)-1)
		kept := make([]int, 0, len(nodesLeft)-1)
		for idx, id := range nodesLeft {
			if id == victim {
				continue
			}
			keep = append(keep, idx)
			kept = append(kept, id)
		}
		current = current.Subnetwork(keep)
		nodesLeft = kept
		counts = append(counts, current.Components())
	}
	return counts, nil
}

// BreakdownStep returns the index of the first component count above 1,
// i.e. the timestep at which the network fragmented.  The second return
// is false when the network stayed connected through every removal.
func BreakdownStep(counts []int) (int, bool) {
	for step, c := range counts {
		if c > 1 {
			return step, true
		}
	}
	return 0, false
}
