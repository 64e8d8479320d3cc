package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"

	"github.com/akamensky/argparse"
	logger "github.com/sirupsen/logrus"
)

// one undirected edge of one timestep's snapshot
type edge struct {
	sim_time int
	node1    int
	node2    int
	weight   float64
}

var log *logger.Logger

func edge_recorder(expected_edges int, output_file string, ch chan *edge, done chan bool) {
	edges := make([]*edge, 0, expected_edges)
	for e := range ch {
		edges = append(edges, e)
		log.Debugf("at time %v, edge %v-%v (weight %v)", e.sim_time, e.node1, e.node2, e.weight)
	}
	log.Info("sorting edges")
	// sort'em!
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].sim_time < edges[j].sim_time
	})
	// and dump'em!
	log.Info("dumping edges to file")
	f, err := os.Create(output_file)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	for _, e := range edges {
		f.WriteString(fmt.Sprintf("%v,%v,%v,%v\n", e.sim_time, e.node1, e.node2, e.weight))
	}
	done <- true
}

// parses "50,50" and "0.06,0.02" into a season list
func parse_seasons(steps_spec, probs_spec string) ([]netgen.Season, error) {
	step_parts := strings.Split(steps_spec, ",")
	prob_parts := strings.Split(probs_spec, ",")
	if len(step_parts) != len(prob_parts) {
		return nil, fmt.Errorf("%d season lengths but %d probabilities", len(step_parts), len(prob_parts))
	}

	seasons := make([]netgen.Season, 0, len(step_parts))
	for i := range step_parts {
		steps, err := strconv.Atoi(strings.TrimSpace(step_parts[i]))
		if err != nil {
			return nil, fmt.Errorf("bad season length %q: %v", step_parts[i], err)
		}
		prob, err := strconv.ParseFloat(strings.TrimSpace(prob_parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad season probability %q: %v", prob_parts[i], err)
		}
		seasons = append(seasons, netgen.Season{Steps: steps, LinkProb: prob})
	}
	return seasons, nil
}

func main() {

	log = logger.New()
	log.SetLevel(logger.InfoLevel)

	parser := argparse.NewParser("gen-netseq", "produces a seasonal network-sequence dataset")

	output_file := parser.String("f", "output", &argparse.Options{
		Help:     "file to (over)write",
		Required: true,
	})
	num_nodes := parser.Int("n", "numnodes", &argparse.Options{
		Help:     "number of individuals in the population",
		Required: true,
	})
	num_steps := parser.Int("t", "timesteps", &argparse.Options{
		Help:     "number of timesteps (one snapshot each)",
		Required: true,
	})
	season_steps := parser.String("s", "seasonsteps", &argparse.Options{
		Help:    "comma-separated season lengths",
		Default: "50,50",
	})
	season_probs := parser.String("p", "seasonprobs", &argparse.Options{
		Help:    "comma-separated per-season linking probabilities",
		Default: "0.06,0.02",
	})
	seed := parser.Int("S", "seed", &argparse.Options{
		Help:    "random seed",
		Default: 12345,
	})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		panic("invalid usage")
	}

	seasons, err := parse_seasons(*season_steps, *season_probs)
	if err != nil {
		log.Fatalf("invalid season spec: %v", err)
	}

	rng := model.NewRand(int64(*seed))
	sequence, err := netgen.SeasonalSequence(*num_nodes, *num_steps, seasons, rng)
	if err != nil {
		log.Fatalf("cannot generate sequence: %v", err)
	}

	ch := make(chan *edge)
	done := make(chan bool)

	go edge_recorder(
		*num_nodes**num_steps,
		*output_file,
		ch, done)

	for sim_time, net := range sequence {
		for i := 0; i < net.N(); i++ {
			for j := i + 1; j < net.N(); j++ {
				if w := net.Weight(i, j); w > 0 {
					ch <- &edge{
						sim_time: sim_time,
						node1:    i,
						node2:    j,
						weight:   w,
					}
				}
			}
		}
	}
	close(ch)
	log.Info("all snapshots done")

	// wait for the edge recorder to finish
	<-done
}
