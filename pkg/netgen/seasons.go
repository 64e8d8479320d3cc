package netgen

import (
	"errors"
	"fmt"

	model "gennet-sim/pkg/datamodel"
)

// ErrNoSeasons is returned when a seasonal sequence is requested with an
// empty season list.
var ErrNoSeasons = errors.New("netgen: no seasons given")

// A Season is a stretch of timesteps that share one linking probability.
type Season struct {
	Steps    int
	LinkProb float64
}

// SeasonalSequence pre-generates one independent G(n,p) snapshot per
// timestep, cycling through the seasons until total snapshots have been
// produced.  Season boundaries fall wherever a season's step budget runs
// out; the list repeats as often as needed.
func SeasonalSequence(n, total int, seasons []Season, rng *model.Rand) ([]*Network, error) {
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}
	for _, s := range seasons {
		if s.Steps < 1 {
			return nil, fmt.Errorf("netgen: season with %d steps", s.Steps)
		}
		if s.LinkProb < 0 || s.LinkProb > 1 {
			return nil, fmt.Errorf("%w: season link probability %v", ErrProbability, s.LinkProb)
		}
	}

	sequence := make([]*Network, 0, total)
	season := 0
	left := seasons[0].Steps
	for len(sequence) < total {
		for left <= 0 {
			season = (season + 1) % len(seasons)
			left = seasons[season].Steps
		}
		g, err := ErdosRenyi(n, seasons[season].LinkProb, rng)
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, g)
		left--
	}
	return sequence, nil
}
