package cmd

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	dashedLine = []vg.Length{vg.Points(6), vg.Points(4)}
	dottedLine = []vg.Length{vg.Points(1), vg.Points(3)}
)

// WritePlots renders, for every experiment, the mean live time and mean count
// against the swept parameter and one stability figure per series.
func WritePlots(dir string, results []ExperimentResult, quantums int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir %s: %w", dir, err)
	}
	for _, exp := range results {
		liveTime := func(r Run) float64 { return r.Result.MeanClientsLiveTime }
		count := func(r Run) float64 { return r.Result.MeanClientsCount }

		p, err := seriesPlot(exp, fmt.Sprintf("Mean clients live time in system (quantums = %d)", quantums), liveTime)
		if err != nil {
			return err
		}
		throttle := plotter.NewFunction(func(float64) float64 { return throttlingThreshold(quantums) })
		throttle.Color = color.Black
		throttle.Dashes = dottedLine
		p.Add(throttle)
		p.Legend.Add("throttling", throttle)
		// Function has no data range; stretch the axis so the line is visible.
		if t := throttlingThreshold(quantums); p.Y.Max < t {
			p.Y.Max = t
		}
		if err := savePlot(p, filepath.Join(dir, exp.Name+"_live_time.png")); err != nil {
			return err
		}

		p, err = seriesPlot(exp, fmt.Sprintf("Mean clients count in system (quantums = %d)", quantums), count)
		if err != nil {
			return err
		}
		if err := savePlot(p, filepath.Join(dir, exp.Name+"_count.png")); err != nil {
			return err
		}

		for _, series := range exp.Series {
			path := filepath.Join(dir, fmt.Sprintf("%s_stability_%s.png", exp.Name, series.Name))
			if err := writeStability(path, series); err != nil {
				return err
			}
		}
	}
	return nil
}

// seriesPlot draws series A as a solid line and series B as a dashed line.
func seriesPlot(exp ExperimentResult, title string, value func(Run) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = exp.ParamLabel
	p.Y.Label.Text = "quantums"
	p.Legend.Top = true
	p.Legend.Left = true

	for i, series := range exp.Series {
		xys := make(plotter.XYs, len(series.Runs))
		for j, run := range series.Runs {
			xys[j].X = run.Param
			xys[j].Y = value(run)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("%s series %s: %w", exp.Name, series.Name, err)
		}
		line.Color = color.Black
		if i > 0 {
			line.Dashes = dashedLine
		}
		p.Add(line)
		p.Legend.Add(series.Name, line)
	}
	return p, nil
}

func savePlot(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	logrus.Debugf("wrote %s", path)
	return nil
}

// writeStability tiles the per-quantum resident count of every run of a
// series, two plots per row.
func writeStability(path string, series Series) error {
	if len(series.Runs) == 0 {
		return nil
	}
	const cols = 2
	rows := int(math.Ceil(float64(len(series.Runs)) / cols))

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	for i, run := range series.Runs {
		p := plot.New()
		p.Title.Text = run.Title
		p.X.Label.Text = "T"
		p.Y.Label.Text = "Count"

		xys := make(plotter.XYs, len(run.Result.ClientsTotal))
		for q, c := range run.Result.ClientsTotal {
			xys[q].X = float64(q)
			xys[q].Y = float64(c)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("stability %s: %w", run.Title, err)
		}
		line.Color = color.Black
		p.Add(line)
		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(vg.Points(cols*360), vg.Points(float64(rows)*220))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logrus.Errorf("Error closing file %s: %v", path, closeErr)
		}
	}()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logrus.Debugf("wrote %s", path)
	return nil
}
