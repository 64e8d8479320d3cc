/**
 * configuration for an experiment run, includes default values for all args
 *
 */

package datamodel

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TopLevel   TopLevelConfig   `json:"top_level" yaml:"top_level"`
	Epidemic   EpidemicConfig   `json:"epidemic" yaml:"epidemic"`
	Robustness RobustnessConfig `json:"robustness" yaml:"robustness"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}

type TopLevelConfig struct {
	// top level
	Log      string `json:"log" yaml:"log"`
	DataBase string `json:"db" yaml:"db"`
	DBFile   string `json:"dbfile" yaml:"dbfile"`
	Seed     int    `json:"seed" yaml:"seed"`
}

// a season is a stretch of timesteps sharing one linking probability; the
// season list repeats until the requested number of timesteps is covered
type SeasonConfig struct {
	Steps    int     `json:"steps" yaml:"steps"`
	LinkProb float64 `json:"link_prob" yaml:"link_prob"`
}

type EpidemicConfig struct {
	// experiment name must be unique for each run
	ExperimentName string `json:"experiment_name" yaml:"experiment_name"`
	Investigator   string `json:"investigator" yaml:"investigator"`

	Individuals     int            `json:"individuals" yaml:"individuals"`
	Timesteps       int            `json:"timesteps" yaml:"timesteps"`
	Replicates      int            `json:"replicates" yaml:"replicates"`
	InitialInfected int            `json:"initial_infected" yaml:"initial_infected"`
	Seasons         []SeasonConfig `json:"seasons" yaml:"seasons"`

	SIProb float64 `json:"si_prob" yaml:"si_prob"`
	IRProb float64 `json:"ir_prob" yaml:"ir_prob"`
	RSProb float64 `json:"rs_prob" yaml:"rs_prob"`

	// adaptive edge cutting; ignored unless Adaptive is true
	Adaptive      bool    `json:"adaptive" yaml:"adaptive"`
	PrevThreshold float64 `json:"prev_threshold" yaml:"prev_threshold"`
	CutProb       float64 `json:"cut_prob" yaml:"cut_prob"`
	CutWeight     float64 `json:"cut_weight" yaml:"cut_weight"`
}

type RobustnessConfig struct {
	ExperimentName string `json:"experiment_name" yaml:"experiment_name"`
	Investigator   string `json:"investigator" yaml:"investigator"`

	Nodes      int      `json:"nodes" yaml:"nodes"`
	Replicates int      `json:"replicates" yaml:"replicates"`
	Families   []string `json:"families" yaml:"families"`
	Policies   []string `json:"policies" yaml:"policies"`

	// Erdos-Renyi linking probability and preferential-attachment
	// edges-per-new-node, one per network family
	LinkProb        float64 `json:"link_prob" yaml:"link_prob"`
	AttachEdges     int     `json:"attach_edges" yaml:"attach_edges"`
	SingleComp      bool    `json:"single_component" yaml:"single_component"`
	SingleCompTries int     `json:"single_component_tries" yaml:"single_component_tries"`
}

type OutputConfig struct {
	Dir       string `json:"dir" yaml:"dir"`
	PlotPNG   bool   `json:"plot_png" yaml:"plot_png"`
	ReportPDF string `json:"report_pdf" yaml:"report_pdf"`
}

/**
initializes the configuration to default values
*/
func MakeDefaultConfig() *Config {

	DefaultConfig := new(Config)

	// generate a new experiment name suffix so repeated unconfigured runs
	// don't collide on the experiment primary key
	s := make([]byte, 10)
	rand.Read(s)
	suffix := fmt.Sprintf("%x", s)[2:12]

	DefaultConfig.TopLevel.Log = "DEBUG"
	DefaultConfig.TopLevel.DataBase = "sqlite"
	DefaultConfig.TopLevel.DBFile = "gennet.db"
	DefaultConfig.TopLevel.Seed = 12345

	DefaultConfig.Epidemic.ExperimentName = "SIR-" + suffix
	DefaultConfig.Epidemic.Investigator = "default"
	DefaultConfig.Epidemic.Individuals = 100
	DefaultConfig.Epidemic.Timesteps = 200
	DefaultConfig.Epidemic.Replicates = 20
	DefaultConfig.Epidemic.InitialInfected = 1
	DefaultConfig.Epidemic.Seasons = []SeasonConfig{
		{Steps: 50, LinkProb: 0.06},
		{Steps: 50, LinkProb: 0.02},
	}
	DefaultConfig.Epidemic.SIProb = 0.05
	DefaultConfig.Epidemic.IRProb = 0.1
	DefaultConfig.Epidemic.RSProb = 0.05
	DefaultConfig.Epidemic.Adaptive = false
	DefaultConfig.Epidemic.PrevThreshold = 0.1
	DefaultConfig.Epidemic.CutProb = 0.5
	DefaultConfig.Epidemic.CutWeight = 0.001

	DefaultConfig.Robustness.ExperimentName = "ROBUST-" + suffix
	DefaultConfig.Robustness.Investigator = "default"
	DefaultConfig.Robustness.Nodes = 50
	DefaultConfig.Robustness.Replicates = 50
	DefaultConfig.Robustness.Families = []string{"random", "prefattach"}
	DefaultConfig.Robustness.Policies = []string{"random", "connectedness_desc", "connectedness_asc"}
	DefaultConfig.Robustness.LinkProb = 0.08
	DefaultConfig.Robustness.AttachEdges = 2
	DefaultConfig.Robustness.SingleComp = true
	DefaultConfig.Robustness.SingleCompTries = 100

	DefaultConfig.Output.Dir = "."
	DefaultConfig.Output.PlotPNG = true
	DefaultConfig.Output.ReportPDF = "experiment_analysis.pdf"

	return DefaultConfig
}

// overlays a config file on top of the defaults.  JSON and YAML files are
// both accepted; the format is picked by file extension.
func (c *Config) LoadFile(filename string) error {
	filedata, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(filedata, c)
	default:
		err = json.Unmarshal(filedata, c)
	}
	if err != nil {
		return fmt.Errorf("cannot parse config file %v: %w", filename, err)
	}
	return nil
}
