package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	model "gennet-sim/pkg/datamodel"

	"github.com/jung-kurt/gofpdf"
	"github.com/wcharczuk/go-chart"
)

// downloadReport renders a PDF summarizing every experiment in the DB:
// the experiment table, mean prevalence charts for SIR runs, and survival
// charts for robustness runs
func downloadReport(config *model.Config) {
	experiments, err := model.GetExperiments()
	if err != nil {
		log.Fatalf("Failed to fetch experiments data: %v", err)
	}

	pdfFilename := filepath.Join(config.Output.Dir, config.Output.ReportPDF)
	if err := getReport(experiments, pdfFilename); err != nil {
		log.Fatalf("Failed to generate PDF: %v", err)
	}

	fmt.Printf("PDF report saved as '%s'\n", pdfFilename)
}

func getReport(experiments []model.Experiment, filename string) error {
	//Create a pdf file
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()
	//Title
	pdf.Cell(40, 10, "Experiment Analysis Report")
	pdf.Ln(12)
	//Experiments Info
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Experiments")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if len(experiments) == 0 {
		pdf.Cell(0, 10, "No experiments were found.")
		pdf.Ln(10)
	} else {
		for index, record := range experiments {
			paragraph := fmt.Sprintf("%d. Experiment Name: %s, Kind: %s, Investigator: %s, Seed: %d, Date Started: %s, Date Finished: %s",
				index+1, record.ExperimentName, record.Kind, record.Investigator, record.Seed,
				record.DateStarted.Time.Format("2006-01-02"), record.DateFinished.Time.Format("2006-01-02"))
			pdf.MultiCell(0, 10, paragraph, "", "L", false)
			pdf.Ln(5)
		}
	}

	//Prevalence curves of the SIR experiments
	addPage := 0
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Mean Prevalence by Experiment")
	pdf.Ln(10)
	for _, experiment := range experiments {
		if experiment.Kind != "sir" {
			continue
		}
		steps, means, err := model.GetMeanPrevalence(experiment.ExperimentName)
		if err != nil || len(steps) == 0 {
			log.Warnf("no prevalence data for %v: %v", experiment.ExperimentName, err)
			continue
		}
		if addPage != 0 && addPage%2 == 0 {
			pdf.AddPage()
		}
		addPage += 1
		// Generate line chart for this experiment
		chartPath := fmt.Sprintf("%s_prevalence_chart.png", experiment.ExperimentName)
		xs := make([]float64, len(steps))
		for i, s := range steps {
			xs[i] = float64(s)
		}
		if err := createLineGraph("Mean prevalence: "+experiment.ExperimentName,
			"timestep", "prevalence", xs, means, chartPath); err != nil {
			log.Warnf("cannot chart %v: %v", experiment.ExperimentName, err)
			continue
		}

		// Add the chart to the PDF
		pdf.Image(chartPath, 10, pdf.GetY(), 180, 90, false, "", 0, "")
		pdf.Ln(95) // Add space after the chart

		// Delete the temporary chart file after use
		defer os.Remove(chartPath)
	}

	//Survival curves of the robustness experiments
	addPage = 0
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Survival Curves by Experiment")
	pdf.Ln(10)
	for _, experiment := range experiments {
		if experiment.Kind != "robust" {
			continue
		}
		curves, err := model.GetSurvivalCurves(experiment.ExperimentName)
		if err != nil || len(curves) == 0 {
			log.Warnf("no survival data for %v: %v", experiment.ExperimentName, err)
			continue
		}
		for key, points := range curves {
			if addPage != 0 && addPage%2 == 0 {
				pdf.AddPage()
			}
			addPage += 1
			xs := make([]float64, len(points))
			ys := make([]float64, len(points))
			for i, p := range points {
				xs[i] = float64(p.Step)
				ys[i] = float64(p.Surviving)
			}
			chartPath := fmt.Sprintf("%s_%s_survival_chart.png",
				experiment.ExperimentName, strings.ReplaceAll(key, "/", "_"))
			if err := createLineGraph(fmt.Sprintf("Survival %s: %s", key, experiment.ExperimentName),
				"removals", "replicates intact", xs, ys, chartPath); err != nil {
				log.Warnf("cannot chart %v %v: %v", experiment.ExperimentName, key, err)
				continue
			}

			pdf.Image(chartPath, 10, pdf.GetY(), 180, 90, false, "", 0, "")
			pdf.Ln(95)

			defer os.Remove(chartPath)
		}
	}

	err := pdf.OutputFileAndClose(filename)
	if err != nil {
		return err
	}
	fmt.Println("PDF generated successfully:", filename)
	return nil
}

func createLineGraph(title, xName, yName string, xs, ys []float64, outputPath string) error {
	// Create the line chart
	lineChart := chart.Chart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   50, // Increased left padding to make room for the Y-axis
				Right:  20,
				Bottom: 60, // Increased bottom padding to make room for the X-axis
			},
		},
		XAxis: chart.XAxis{
			Name:  xName,
			Style: chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Style: chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return lineChart.Render(chart.PNG, f)
}
