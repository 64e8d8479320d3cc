package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	model "gennet-sim/pkg/datamodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNames(t *testing.T) {
	names, err := fieldNames(model.SurvivalPoint{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ExperimentName", "Family", "Policy", "Step", "Surviving"}, names)
}

func TestConvertToString(t *testing.T) {
	row, err := convertToString(model.SurvivalPoint{
		ExperimentName: "EXP",
		Family:         "random",
		Policy:         "connectedness_desc",
		Step:           3,
		Surviving:      17,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"EXP", "random", "connectedness_desc", "3", "17"}, row)
}

func TestConvertToStringNullTime(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	row, err := convertToString(model.Experiment{
		ExperimentName: "EXP",
		Kind:           "sir",
		Investigator:   "tester",
		Seed:           7,
		CommandLine:    "gennet sir config.json",
		DateStarted:    sql.NullTime{Time: started, Valid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"EXP", "sir", "tester", "7", "gennet sir config.json",
		"2026-03-14 09:26:53", "",
	}, row)

	names, err := fieldNames(model.Experiment{})
	require.NoError(t, err)
	assert.Len(t, names, len(row))
}

func TestExportTableCSV(t *testing.T) {
	rows := []model.PrevalencePoint{
		{ExperimentName: "EXP", Replicate: 0, Step: 0, Prevalence: 0.25, Infected: 5},
		{ExperimentName: "EXP", Replicate: 0, Step: 1, Prevalence: 0.5, Infected: 10},
	}

	path := filepath.Join(t.TempDir(), "prevalence.csv")
	require.NoError(t, exportTableCSV(rows, "prevalence_points", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ExperimentName,Replicate,Step,Prevalence,Infected", lines[0])
	assert.Equal(t, "EXP,0,0,0.25,5", lines[1])
	assert.Equal(t, "EXP,0,1,0.5,10", lines[2])
}
