package internal

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var validPlotFormats = []string{"bar", "box", "boxplot", "placements", "all"}

// VerifyPlotFormats parses a comma separated list of plot kinds.
func VerifyPlotFormats(formats string) ([]string, error) {
	var formatList []string
	for _, f := range strings.Split(strings.ToLower(formats), ",") {
		f = strings.TrimSpace(f)
		if f == "" || f == "none" {
			continue
		}
		if !slices.Contains(validPlotFormats, f) {
			return nil, fmt.Errorf("invalid plot format: %s", f)
		}
		formatList = append(formatList, f)
	}
	return formatList, nil
}

func titles(s *Summary) []string {
	return MapFunc(func(t TestSummary) string { return t.Title }, s.Tests)
}

func plotWidth(n int) font.Length {
	return font.Length(max(4, n+1)) * vg.Inch
}

// barPlot draws the time per call of every test.
func barPlot(s *Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Time per call"
	p.Y.Label.Text = fmt.Sprintf("Mean time per call (in %s)", s.TimeUnit)

	meanTimes := make(plotter.Values, len(s.Tests))
	copy(meanTimes, MapFunc(func(t TestSummary) float64 { return t.Average }, s.Tests))

	bars, err := plotter.NewBarChart(meanTimes, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = testColor(0)

	p.Add(bars)
	p.NominalX(titles(s)...)
	return p, nil
}

// boxPlot draws the spread of the round totals of every test.
func boxPlot(s *Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Round totals"
	p.Y.Label.Text = fmt.Sprintf("Total time per round (in %s)", s.TimeUnit)

	for i, t := range s.Tests {
		v := make(plotter.Values, len(t.RoundTotals))
		copy(v, t.RoundTotals)
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), v)
		if err != nil {
			return nil, err
		}
		box.FillColor = testColor(i)
		p.Add(box)
	}
	p.NominalX(titles(s)...)
	return p, nil
}

// placementsPlot draws, per finishing position, how often each test took it.
func placementsPlot(s *Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Placements"
	p.Y.Label.Text = "Rounds"

	n := len(s.Tests)
	w := vg.Points(float64(60 / max(1, n)))
	positions := make([]string, n)
	for i := range positions {
		positions[i] = fmt.Sprintf("%d.", i+1)
	}

	for i, t := range s.Tests {
		counts := make(plotter.Values, n)
		for j := range counts {
			if j < len(t.Rankings) {
				counts[j] = float64(t.Rankings[j])
			}
		}
		bars, err := plotter.NewBarChart(counts, w)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = testColor(i)
		bars.Offset = w * vg.Length(float64(i)-float64(n-1)/2)
		p.Add(bars)
		p.Legend.Add(t.Title, bars)
	}
	p.Legend.Top = true
	p.NominalX(positions...)
	return p, nil
}

var plotters = []struct {
	names    []string
	filename string
	draw     func(*Summary) (*plot.Plot, error)
}{
	{[]string{"bar"}, "barchart.png", barPlot},
	{[]string{"box", "boxplot"}, "boxplot.png", boxPlot},
	{[]string{"placements"}, "placements.png", placementsPlot},
}

// Plot draws the requested charts of s into png files.
func Plot(plotFormats []string, s *Summary) {
	if len(s.Tests) == 0 {
		return
	}
	all := slices.Contains(plotFormats, "all")
	for _, pl := range plotters {
		if !all && !slices.ContainsFunc(pl.names, func(n string) bool { return slices.Contains(plotFormats, n) }) {
			continue
		}
		p, err := pl.draw(s)
		if err != nil {
			Log("red", "Failed to draw "+pl.filename+": "+err.Error())
			continue
		}
		if err := p.Save(plotWidth(len(s.Tests)), 4*vg.Inch, pl.filename); err != nil {
			Log("red", "Failed to save "+pl.filename+": "+err.Error())
			continue
		}
		logWritten("plot", pl.filename)
	}
}
