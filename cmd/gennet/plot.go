package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// this function plots a single curve into a PNG file
func plotCurve(title, xLabel, yLabel string, ys []float64, outputPath string) error {
	// Initialize plot
	p := plot.New()
	p.Title.Text = title

	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: float64(i), Y: y}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	// Set axis labels and tick marks
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.DefaultTicks{}
	p.Y.Tick.Marker = plot.DefaultTicks{}

	// Save plot to file
	return p.Save(600, 400, outputPath)
}
