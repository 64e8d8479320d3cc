package robustness

import "fmt"

// A Breakdown is the outcome of one replicate: the removal step at which
// its network first fragmented.  Broke is false for replicates whose
// network stayed connected through all removals, in which case Step is
// meaningless.
type Breakdown struct {
	Step  int
	Broke bool
}

// SurvivalCurve converts per-replicate breakdowns into a curve of length
// n-1 over an n-node network: entry t is the number of replicates whose
// network had not yet fragmented by removal step t.  Replicates that
// never broke keep counting in every entry, so the curve is
// non-increasing and bounded by the replicate count.
func SurvivalCurve(breakdowns []Breakdown, n int) ([]int, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: n=%d", ErrTooSmall, n)
	}

	curve := make([]int, n-1)
	for t := range curve {
		surviving := 0
		for _, b := range breakdowns {
			if !b.Broke || b.Step > t {
				surviving++
			}
		}
		curve[t] = surviving
	}
	return curve, nil
}
