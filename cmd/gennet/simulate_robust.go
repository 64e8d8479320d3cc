package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/netgen"
	"gennet-sim/pkg/robustness"

	"gonum.org/v1/gonum/stat"
)

// returns a closure producing one fresh network of the requested family
func familyGenerator(family string, cfg model.RobustnessConfig, rng *model.Rand) (func() (*netgen.Network, error), error) {
	var gen func() (*netgen.Network, error)
	switch family {
	case "random":
		gen = func() (*netgen.Network, error) {
			return netgen.ErdosRenyi(cfg.Nodes, cfg.LinkProb, rng)
		}
	case "prefattach":
		gen = func() (*netgen.Network, error) {
			return netgen.PreferentialAttachment(cfg.Nodes, cfg.AttachEdges, rng)
		}
	default:
		return nil, fmt.Errorf("unknown network family %q", family)
	}

	if cfg.SingleComp {
		inner := gen
		gen = func() (*netgen.Network, error) {
			return netgen.Connected(cfg.SingleCompTries, inner)
		}
	}
	return gen, nil
}

// runs the robustness experiment: for every family x policy pair, generate
// fresh networks and wear them down node by node, recording component
// counts, breakdown steps, and the derived survival curves
func simulateRobustness(config *model.Config, investigator string) {
	cfg := config.Robustness

	if cfg.Investigator == "default" {
		cfg.Investigator = investigator
	}

	// fail fast on a bad run shape or unrecognized policies, before the
	// experiment row exists
	if cfg.Nodes < 3 || cfg.Replicates < 1 || len(cfg.Families) == 0 {
		log.Fatalf("invalid experiment shape: nodes=%v replicates=%v families=%v",
			cfg.Nodes, cfg.Replicates, cfg.Families)
	}
	policies := make([]robustness.Policy, 0, len(cfg.Policies))
	for _, name := range cfg.Policies {
		policy, err := robustness.ParsePolicy(name)
		if err != nil {
			log.Fatalf("invalid removal policy: %v", err)
		}
		policies = append(policies, policy)
	}

	// create an experiment and save it in the DB
	exp := &model.Experiment{
		ExperimentName: cfg.ExperimentName,
		Kind:           "robust",
		Investigator:   cfg.Investigator,
		Seed:           config.TopLevel.Seed,
		CommandLine:    strings.Join(os.Args, ";"),
		DateStarted: sql.NullTime{
			Time:  time.Now().UTC(),
			Valid: true,
		},
	}
	if r := model.DB.Create(&exp); r.Error != nil {
		log.Warn("cannot create experiment.  this is likely because an experiment with the same name already exists")
		log.Warn("Recommendation: change the experiment name to something new, and try again")
		log.Fatalf("cannot create experiment: %v", r.Error)
	}

	log.Infof("beginning robustness experiment %v: %v nodes, %v replicates, families %v",
		cfg.ExperimentName, cfg.Nodes, cfg.Replicates, cfg.Families)

	// recorder goroutines for the per-step counts and per-replicate trials
	pointChan := make(chan *model.ComponentPoint, 1000)
	trialChan := make(chan *model.RobustnessTrial, 1000)
	var recorderSyncBarrier sync.WaitGroup
	var recorderSyncBarrierTrials sync.WaitGroup
	go model.RecordComponentPoints(pointChan, &recorderSyncBarrier)
	recorderSyncBarrier.Add(1)
	go model.RecordTrials(trialChan, &recorderSyncBarrierTrials)
	recorderSyncBarrierTrials.Add(1)

	rng := model.NewRand(int64(config.TopLevel.Seed))
	start := time.Now()

	curves := make(map[string][]int)
	for _, family := range cfg.Families {
		gen, err := familyGenerator(family, cfg, rng)
		if err != nil {
			log.Fatalf("cannot run family: %v", err)
		}

		for _, policy := range policies {
			breakdowns := make([]robustness.Breakdown, 0, cfg.Replicates)
			for replicate := 0; replicate < cfg.Replicates; replicate++ {
				net, err := gen()
				if err != nil {
					log.Fatalf("cannot generate %v network: %v", family, err)
				}

				counts, err := robustness.Measure(net, policy, rng)
				if err != nil {
					log.Warnf("replicate %v (%v/%v) aborted: %v", replicate, family, policy, err)
					continue
				}

				for step, components := range counts {
					pointChan <- &model.ComponentPoint{
						ExperimentName: cfg.ExperimentName,
						Family:         family,
						Policy:         policy.String(),
						Replicate:      replicate,
						Step:           step,
						Components:     components,
					}
				}

				step, broke := robustness.BreakdownStep(counts)
				breakdowns = append(breakdowns, robustness.Breakdown{Step: step, Broke: broke})
				trialChan <- &model.RobustnessTrial{
					ExperimentName: cfg.ExperimentName,
					Family:         family,
					Policy:         policy.String(),
					Replicate:      replicate,
					BreakdownStep:  step,
					Broke:          broke,
				}
			}

			curve, err := robustness.SurvivalCurve(breakdowns, cfg.Nodes)
			if err != nil {
				log.Warnf("cannot derive survival curve for %v/%v: %v", family, policy, err)
				continue
			}
			curves[family+"/"+policy.String()] = curve

			points := make([]*model.SurvivalPoint, 0, len(curve))
			for step, surviving := range curve {
				points = append(points, &model.SurvivalPoint{
					ExperimentName: cfg.ExperimentName,
					Family:         family,
					Policy:         policy.String(),
					Step:           step,
					Surviving:      surviving,
				})
			}
			if r := model.DB.Create(&points); r.Error != nil {
				log.Warnf("cannot save survival curve: %v", r.Error)
			}

			logBreakdownSummary(family, policy, breakdowns)
		}
	}

	close(pointChan)
	close(trialChan)
	recorderSyncBarrier.Wait()
	recorderSyncBarrierTrials.Wait()

	if config.Output.PlotPNG {
		for key, curve := range curves {
			name := strings.ReplaceAll(key, "/", "_")
			path := filepath.Join(config.Output.Dir,
				fmt.Sprintf("%s_%s_survival.png", cfg.ExperimentName, name))
			ys := make([]float64, len(curve))
			for i, v := range curve {
				ys[i] = float64(v)
			}
			if err := plotCurve("Survival: "+key, "removals", "replicates intact", ys, path); err != nil {
				log.Warnf("cannot plot survival curve: %v", err)
			} else {
				log.Infof("wrote %v", path)
			}
		}
	}

	// finally, let's update the experiment table and note when it is that
	// this experiment finished
	exp.DateFinished.Time = time.Now().UTC()
	exp.DateFinished.Valid = true
	if r := model.DB.Save(&exp); r.Error != nil {
		log.Fatalf("cannot update experiment: %v", r.Error)
	}
	log.Infof("Elapsed time of simulation: %v", time.Since(start).String())
}

// logs the mean breakdown step among replicates that actually fragmented
func logBreakdownSummary(family string, policy robustness.Policy, breakdowns []robustness.Breakdown) {
	steps := make([]float64, 0, len(breakdowns))
	for _, b := range breakdowns {
		if b.Broke {
			steps = append(steps, float64(b.Step))
		}
	}
	if len(steps) == 0 {
		log.Infof("%v/%v: no replicate fragmented", family, policy)
		return
	}
	log.Infof("%v/%v: %v of %v replicates fragmented; mean breakdown step %.2f",
		family, policy, len(steps), len(breakdowns), stat.Mean(steps, nil))
}
