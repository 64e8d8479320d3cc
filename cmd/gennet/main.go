package main

import (
	"fmt"
	model "gennet-sim/pkg/datamodel"
	"os"
	"os/user"

	logger "github.com/sirupsen/logrus"
)

// create global log variable
var log *logger.Logger

func main() {

	// generate a config for gennet-sim
	config := model.MakeDefaultConfig()

	user, err := user.Current()
	if err != nil {
		panic(err)
	}

	// check for valid command line
	// must have at least one parameter specifying run type
	if len(os.Args) < 2 {
		fmt.Println("missing required run type: sir, robust, report, csv, list")
		os.Exit(1)
	}

	// check for run type
	runType := os.Args[1]

	if (runType != "sir") && (runType != "robust") && (runType != "report") && (runType != "csv") && (runType != "list") {
		fmt.Println("invalid run type: sir, robust, report, csv, list")
		os.Exit(1)
	}

	// parse the command line for a json or yaml config file

	if len(os.Args) > 2 {
		if err := config.LoadFile(os.Args[2]); err != nil {
			fmt.Fprint(os.Stderr, err)
			os.Exit(1)
		}
	}

	// set up the logger
	log = logger.New()
	level, err := logger.ParseLevel(config.TopLevel.Log)

	if err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(1)
	}

	log.SetLevel(level)
	customFormatter := new(logger.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05.000"
	log.SetFormatter(UTCFormatter{customFormatter})
	customFormatter.FullTimestamp = true

	log.Info("running with config:\n", config)
	log.Infof("random seed is %v", config.TopLevel.Seed)
	log.Infof("logging at log level %v; all times in UTC", config.TopLevel.Log)
	if path, err := os.Getwd(); err != nil {
		log.Fatalf("cannot get working directory: %v", err)
	} else {
		log.Debugf("running from %v", path)
	}

	// the listing doesn't need a database
	if runType == "list" {
		printCatalog()
		return
	}

	// initialize the database
	model.Init(log, config)

	// running gennet-sim based on specified runType

	switch runType {
	case "sir":
		simulateSIR(config, user.Username)

	case "robust":
		simulateRobustness(config, user.Username)

	case "report":
		downloadReport(config)

	case "csv":
		exportCSV(config)
	}

	// ending the run

	log.Info(" ... ending ... ")
}
