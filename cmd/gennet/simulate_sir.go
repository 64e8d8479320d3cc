package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	model "gennet-sim/pkg/datamodel"
	"gennet-sim/pkg/epidemic"
	"gennet-sim/pkg/netgen"

	"gonum.org/v1/gonum/stat"
)

// runs the dynamic-network SIR experiment: per replicate, a fresh seasonal
// snapshot sequence is generated, the epidemic is seeded, and the engine is
// stepped through every snapshot while prevalence samples stream into the
// database
func simulateSIR(config *model.Config, investigator string) {
	cfg := config.Epidemic

	if cfg.Investigator == "default" {
		cfg.Investigator = investigator
	}

	// validate the run shape and epidemiological parameters before touching the DB
	if cfg.Individuals < 2 || cfg.Timesteps < 1 || cfg.Replicates < 1 {
		log.Fatalf("invalid experiment shape: individuals=%v timesteps=%v replicates=%v",
			cfg.Individuals, cfg.Timesteps, cfg.Replicates)
	}
	params, err := epidemic.NewParams(cfg.SIProb, cfg.IRProb, cfg.RSProb)
	if err != nil {
		log.Fatalf("invalid epidemic parameters: %v", err)
	}
	var adaptive epidemic.AdaptiveParams
	if cfg.Adaptive {
		adaptive, err = epidemic.NewAdaptiveParams(cfg.SIProb, cfg.IRProb, cfg.RSProb,
			cfg.PrevThreshold, cfg.CutProb, cfg.CutWeight)
		if err != nil {
			log.Fatalf("invalid adaptive parameters: %v", err)
		}
	}

	seasons := make([]netgen.Season, 0, len(cfg.Seasons))
	for _, s := range cfg.Seasons {
		seasons = append(seasons, netgen.Season{Steps: s.Steps, LinkProb: s.LinkProb})
	}

	// create an experiment and save it in the DB
	exp := &model.Experiment{
		ExperimentName: cfg.ExperimentName,
		Kind:           "sir",
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

	log.Infof("beginning SIR experiment %v: %v individuals, %v timesteps, %v replicates",
		cfg.ExperimentName, cfg.Individuals, cfg.Timesteps, cfg.Replicates)
	if cfg.Adaptive {
		log.Infof("adaptive edge cutting enabled: threshold=%v p_cut=%v residual weight=%v",
			adaptive.PrevThreshold, adaptive.CutProb, adaptive.CutWeight)
	}

	// kick off the prevalence recorder as a separate goroutine; it waits for
	// samples on the channel and writes them to the DB in batches
	pointChan := make(chan *model.PrevalencePoint, 1000)
	var recorderSyncBarrier sync.WaitGroup
	go model.RecordPrevalence(pointChan, &recorderSyncBarrier)
	recorderSyncBarrier.Add(1)

	rng := model.NewRand(int64(config.TopLevel.Seed))
	start := time.Now()

	series := make([][]float64, 0, cfg.Replicates)
	for replicate := 0; replicate < cfg.Replicates; replicate++ {
		sequence, err := netgen.SeasonalSequence(cfg.Individuals, cfg.Timesteps, seasons, rng)
		if err != nil {
			log.Fatalf("cannot generate network sequence: %v", err)
		}

		state := epidemic.NewState(cfg.Individuals)
		if err := state.SeedInfections(cfg.InitialInfected, rng); err != nil {
			log.Fatalf("cannot seed infections: %v", err)
		}

		var prevalence []float64
		if cfg.Adaptive {
			prevalence, err = epidemic.RunAdaptive(state, sequence, adaptive, rng)
		} else {
			prevalence, err = epidemic.Run(state, sequence, params, rng)
		}
		if err != nil {
			// replicates are independent; keep going with the next one
			log.Warnf("replicate %v aborted: %v", replicate, err)
			continue
		}

		for step, p := range prevalence {
			pointChan <- &model.PrevalencePoint{
				ExperimentName: cfg.ExperimentName,
				Replicate:      replicate,
				Step:           step,
				Prevalence:     p,
				Infected:       int(p*float64(cfg.Individuals) + 0.5),
			}
		}
		series = append(series, prevalence)
		log.Debugf("replicate %v done; final prevalence %v", replicate, prevalence[len(prevalence)-1])
	}

	close(pointChan)
	recorderSyncBarrier.Wait()

	summarizeEpidemic(config, cfg, series)

	// finally, let's update the experiment table and note when it is that
	// this experiment finished
	exp.DateFinished.Time = time.Now().UTC()
	exp.DateFinished.Valid = true
	if r := model.DB.Save(&exp); r.Error != nil {
		log.Fatalf("cannot update experiment: %v", r.Error)
	}
	log.Infof("Elapsed time of simulation: %v", time.Since(start).String())
}

// condenses the replicate series into a summary row and, if configured,
// a PNG of the mean prevalence curve
func summarizeEpidemic(config *model.Config, cfg model.EpidemicConfig, series [][]float64) {
	if len(series) == 0 {
		log.Warn("no replicates completed; skipping summary")
		return
	}

	meanCurve := make([]float64, cfg.Timesteps)
	column := make([]float64, 0, len(series))
	for step := 0; step < cfg.Timesteps; step++ {
		column = column[:0]
		for _, s := range series {
			column = append(column, s[step])
		}
		meanCurve[step] = stat.Mean(column, nil)
	}

	peak, peakStep := 0.0, 0
	for step, p := range meanCurve {
		if p > peak {
			peak, peakStep = p, step
		}
	}

	summary := &model.EpidemicSummary{
		ExperimentName:  cfg.ExperimentName,
		Replicates:      len(series),
		PeakPrevalence:  peak,
		PeakStep:        peakStep,
		FinalPrevalence: meanCurve[len(meanCurve)-1],
		MeanPrevalence:  stat.Mean(meanCurve, nil),
	}
	if r := model.DB.Save(summary); r.Error != nil {
		log.Warnf("cannot save epidemic summary: %v", r.Error)
	}
	log.Infof("peak mean prevalence %v at step %v; final %v",
		summary.PeakPrevalence, summary.PeakStep, summary.FinalPrevalence)

	if config.Output.PlotPNG {
		path := filepath.Join(config.Output.Dir, cfg.ExperimentName+"_prevalence.png")
		if err := plotCurve("Mean prevalence: "+cfg.ExperimentName,
			"timestep", "prevalence", meanCurve, path); err != nil {
			log.Warnf("cannot plot prevalence curve: %v", err)
		} else {
			log.Infof("wrote %v", path)
		}
	}
}
