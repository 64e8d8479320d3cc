package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	model "gennet-sim/pkg/datamodel"
)

// writes one DB table's rows (a slice of structs) to a CSV file, with a
// header derived from the struct's field names
func exportTableCSV(rows interface{}, tableName string, filePath string) error {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("expected a slice for %s, got %s", tableName, v.Kind())
	}
	if v.Len() == 0 {
		fmt.Printf("No rows in %s; skipping\n", tableName)
		return nil
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("unable to crete csv file for %s: %v", tableName, err)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	defer writer.Flush()

	header, err := fieldNames(v.Index(0).Interface())
	if err != nil {
		return fmt.Errorf("unable to find header of %s: %v", tableName, err)
	}

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing header: %v", err)
	}

	for i := 0; i < v.Len(); i++ {
		row, err := convertToString(v.Index(i).Interface())
		if err != nil {
			return fmt.Errorf("error: %v", err)
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing row: %v", err)
		}
	}
	fmt.Printf("CSV exported successfully to %s\n", filePath)
	return nil
}

func convertToString(obj interface{}) ([]string, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem() // Dereference if it's a pointer
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct, got %s", v.Kind())
	}

	var result []string
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		// Handle nested structs (e.g., sql.NullTime); each struct field
		// flattens to a single column so the header stays aligned
		if field.Kind() == reflect.Struct {
			switch v := field.Interface().(type) {
			case sql.NullTime:
				if v.Valid {
					result = append(result, v.Time.UTC().Format("2006-01-02 15:04:05"))
				} else {
					result = append(result, "")
				}
			case interface{ String() string }:
				result = append(result, v.String())
			default:
				result = append(result, fmt.Sprintf("%v", field.Interface()))
			}
			continue
		}

		// Convert field value to string
		var value string
		switch field.Kind() {
		case reflect.String:
			value = field.String()
		case reflect.Bool:
			value = strconv.FormatBool(field.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value = strconv.FormatInt(field.Int(), 10)
		case reflect.Float32, reflect.Float64:
			value = strconv.FormatFloat(field.Float(), 'f', -1, 64)
		default:
			value = fmt.Sprintf("%v", field.Interface())
		}
		result = append(result, value)
	}
	return result, nil
}

func fieldNames(obj interface{}) ([]string, error) {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var fieldNames []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldNames = append(fieldNames, field.Name)
	}
	return fieldNames, nil
}

func exportCSV(config *model.Config) {
	dir := config.Output.Dir

	var experiments []model.Experiment
	if r := model.DB.Find(&experiments); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(experiments, "experiments", filepath.Join(dir, "experiments.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	var prevalence []model.PrevalencePoint
	if r := model.DB.Order("experiment_name, replicate, step").Find(&prevalence); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(prevalence, "prevalence_points", filepath.Join(dir, "prevalence_points.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	var summaries []model.EpidemicSummary
	if r := model.DB.Find(&summaries); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(summaries, "epidemic_summaries", filepath.Join(dir, "epidemic_summaries.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	var trials []model.RobustnessTrial
	if r := model.DB.Order("experiment_name, family, policy, replicate").Find(&trials); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(trials, "robustness_trials", filepath.Join(dir, "robustness_trials.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	var components []model.ComponentPoint
	if r := model.DB.Order("experiment_name, family, policy, replicate, step").Find(&components); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(components, "component_points", filepath.Join(dir, "component_points.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	var survival []model.SurvivalPoint
	if r := model.DB.Order("experiment_name, family, policy, step").Find(&survival); r.Error != nil {
		fmt.Printf("Error: %v\n", r.Error)
		return
	}
	if err := exportTableCSV(survival, "survival_points", filepath.Join(dir, "survival_points.csv")); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}
