// This package defines the data model for gennet-sim.
// It uses gorm (https://gorm.io/) an ORM model for Golang.
package datamodel

import (
	"database/sql"
	"sync"

	logger "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite" // Sqlite driver based on GGO
	"gorm.io/gorm"
)

// a reference to the DB GORM object
var DB *gorm.DB

// our logger
var log *logger.Logger

// An `Experiment` describes a single invocation of one of the simulation
// drivers: a run type ("sir" or "robust") with a particular configuration,
// replicated some number of times.
type Experiment struct {
	ExperimentName string `gorm:"primaryKey"`
	Kind           string
	Investigator   string
	Seed           int
	CommandLine    string
	DateStarted    sql.NullTime
	DateFinished   sql.NullTime
}

// A `PrevalencePoint` is one sample of an epidemic run: the fraction of the
// population infected after a given timestep of a given replicate.
type PrevalencePoint struct {
	ExperimentName string `gorm:"primaryKey"`
	Replicate      int    `gorm:"primaryKey"`
	Step           int    `gorm:"primaryKey"`
	Prevalence     float64
	Infected       int
}

// An `EpidemicSummary` condenses all replicates of an epidemic experiment
// into a handful of headline numbers.
type EpidemicSummary struct {
	ExperimentName  string `gorm:"primaryKey"`
	Replicates      int
	PeakPrevalence  float64
	PeakStep        int
	FinalPrevalence float64
	MeanPrevalence  float64
}

// A `RobustnessTrial` records the outcome of one node-removal replicate:
// the timestep at which the network first fragmented, if it did at all
// before being worn down to two nodes.
type RobustnessTrial struct {
	ExperimentName string `gorm:"primaryKey"`
	Family         string `gorm:"primaryKey"`
	Policy         string `gorm:"primaryKey"`
	Replicate      int    `gorm:"primaryKey"`
	BreakdownStep  int
	Broke          bool
}

// A `ComponentPoint` is the component count of a robustness replicate's
// shrinking network after `Step` removals (step 0 is the intact network).
type ComponentPoint struct {
	ExperimentName string `gorm:"primaryKey"`
	Family         string `gorm:"primaryKey"`
	Policy         string `gorm:"primaryKey"`
	Replicate      int    `gorm:"primaryKey"`
	Step           int    `gorm:"primaryKey"`
	Components     int
}

// A `SurvivalPoint` is one entry of the survival curve for a family/policy
// pair: how many replicates had not yet fragmented by `Step` removals.
type SurvivalPoint struct {
	ExperimentName string `gorm:"primaryKey"`
	Family         string `gorm:"primaryKey"`
	Policy         string `gorm:"primaryKey"`
	Step           int    `gorm:"primaryKey"`
	Surviving      int
}

// initializes the data model, creating (and updating!) tables if necessary
func Init(mainLogger *logger.Logger, config *Config) {

	// extract the database type and file from the config
	dbType := config.TopLevel.DataBase
	dbFileOrDSN := config.TopLevel.DBFile

	var err error

	log = mainLogger

	switch dbType {
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(dbFileOrDSN), &gorm.Config{
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
	case "mysql":
		DB, err = gorm.Open(mysql.Open(dbFileOrDSN), &gorm.Config{
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
	default:
		log.Fatalf("invalid or unsupported database type: %v", dbType)
	}

	if err != nil {
		log.Fatal(err)
	} else {
		log.Infof("using database '%v'", dbFileOrDSN)
	}

	// a list of blank structs
	tablesToMigrate := []interface{}{
		&Experiment{},
		&PrevalencePoint{},
		&EpidemicSummary{},
		&RobustnessTrial{},
		&ComponentPoint{},
		&SurvivalPoint{},
	}

	// use GORM to create a DB table for each of the above structs
	for _, table := range tablesToMigrate {
		if err = DB.AutoMigrate(table); err != nil {
			log.Fatal(err)
		}
	}
}

// Record prevalence samples.  This function should be started as a goroutine.
// It waits for incoming samples and records them in the database, in batches
// for efficiency.
func RecordPrevalence(pointChan chan *PrevalencePoint, barrier *sync.WaitGroup) {
	const batchsize = 1024 // an arbitrary choice
	points := make([]*PrevalencePoint, 0, batchsize)

	for point := range pointChan {
		points = append(points, point)

		// if we've reached our batch size, send them to the DB
		if len(points) >= batchsize {
			if r := DB.Create(&points); r.Error != nil {
				log.Warnf("failed to record prevalence points: %v", r.Error)
			}
			points = nil // reset the buffer
		}
	}

	// if we get here, that means that the channel has been closed.

	// do we have any left over?
	if len(points) > 0 {
		if r := DB.Create(&points); r.Error != nil {
			log.Warnf("failed to record prevalence points: %v", r.Error)
		}
	}

	barrier.Done()
}

// Record component counts.  Same batching scheme as RecordPrevalence.
func RecordComponentPoints(pointChan chan *ComponentPoint, barrier *sync.WaitGroup) {
	const batchsize = 1024
	points := make([]*ComponentPoint, 0, batchsize)

	for point := range pointChan {
		points = append(points, point)
		if len(points) >= batchsize {
			if r := DB.Create(&points); r.Error != nil {
				log.Warnf("failed to record component counts: %v", r.Error)
			}
			points = nil
		}
	}

	if len(points) > 0 {
		if r := DB.Create(&points); r.Error != nil {
			log.Warnf("failed to record component counts: %v", r.Error)
		}
	}

	barrier.Done()
}

// Record robustness trials.  Trials are few, so they're written one by one.
func RecordTrials(trialChan chan *RobustnessTrial, barrier *sync.WaitGroup) {
	for trial := range trialChan {
		if r := DB.Create(trial); r.Error != nil {
			log.Warnf("failed to record robustness trial: %v", r.Error)
		}
	}
	barrier.Done()
}

// returns all experiments, most recent first
func GetExperiments() ([]Experiment, error) {
	var experiments []Experiment
	r := DB.Order("date_started DESC").Find(&experiments)
	if r.Error != nil {
		return nil, r.Error
	}
	return experiments, nil
}

// returns the per-step mean prevalence across replicates of an experiment
func GetMeanPrevalence(experimentName string) (steps []int, means []float64, err error) {
	rows, err := DB.Table("prevalence_points").
		Select("step, avg(prevalence)").
		Where("experiment_name=?", experimentName).
		Group("step").Order("step").Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var step int
		var mean float64
		if err := rows.Scan(&step, &mean); err != nil {
			log.Warnf("invalid prevalence row: %v", err)
			continue
		}
		steps = append(steps, step)
		means = append(means, mean)
	}
	return steps, means, nil
}

// returns the survival curves of an experiment, keyed by "family/policy"
func GetSurvivalCurves(experimentName string) (map[string][]SurvivalPoint, error) {
	var points []SurvivalPoint
	r := DB.Where("experiment_name=?", experimentName).
		Order("family, policy, step").Find(&points)
	if r.Error != nil {
		return nil, r.Error
	}

	curves := make(map[string][]SurvivalPoint)
	for _, p := range points {
		key := p.Family + "/" + p.Policy
		curves[key] = append(curves[key], p)
	}
	return curves, nil
}
