package report

import (
	"errors"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"knapsackga/internal/ga"
)

// ErrNoHistory is returned when there is nothing to plot
var ErrNoHistory = errors.New("report: empty history")

// PlotConvergence draws best and mean fitness per generation into a PNG at path
func PlotConvergence(history []ga.Generation, title, path string) error {
	if len(history) == 0 {
		return ErrNoHistory
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "fitness"

	bestPts := make(plotter.XYs, len(history))
	meanPts := make(plotter.XYs, len(history))
	for i, gen := range history {
		bestPts[i].X = float64(gen.Index)
		bestPts[i].Y = gen.Stats.Best
		meanPts[i].X = float64(gen.Index)
		meanPts[i].Y = gen.Stats.Mean
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return err
	}
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = false

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
