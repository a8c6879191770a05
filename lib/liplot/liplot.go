// Package liplot renders sweep results to image files: the L-I, I-V,
// and L-I-V presets the measurement panels produce. It consumes the
// (x, y[, y2]) tuples from lib/sweep, so it neither knows nor cares
// whether the bench was real.
package liplot

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gotmc/visamock/lib/sweep"
)

var (
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}
	red   = color.RGBA{R: 220, A: 255}
)

// LI writes an L-I characteristic (light vs current) plot to path.
// The image format follows the file extension (.png, .pdf, .svg).
func LI(points []sweep.Point, path string) error {
	p := newPlot("L-I Characteristic", "Device Current (mA)", "Light Output (W)")
	if err := addLine(p, points, primaryXY, "Light", blue); err != nil {
		return err
	}
	return save(p, path)
}

// IV writes an I-V characteristic (readback vs current) plot to path.
func IV(points []sweep.Point, path string) error {
	p := newPlot("I-V Characteristic", "Device Current (mA)", "Device Voltage (V)")
	if err := addLine(p, points, secondaryXY, "Voltage", green); err != nil {
		return err
	}
	return save(p, path)
}

// LIV writes both series on a shared axis with a legend.
func LIV(points []sweep.Point, path string) error {
	p := newPlot("L-I-V Characteristic", "Device Current (mA)", "Light (W) / Voltage (V)")
	if err := addLine(p, points, primaryXY, "Light", blue); err != nil {
		return err
	}
	if err := addLine(p, points, secondaryXY, "Voltage", red); err != nil {
		return err
	}
	return save(p, path)
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func primaryXY(pt sweep.Point) (x, y float64)   { return pt.X, pt.Y }
func secondaryXY(pt sweep.Point) (x, y float64) { return pt.X, pt.Y2 }

func addLine(p *plot.Plot, points []sweep.Point, pick func(sweep.Point) (float64, float64), name string, c color.Color) error {
	if len(points) == 0 {
		return errors.New("liplot: no points to plot")
	}
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X, xys[i].Y = pick(pt)
	}
	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return errors.Wrap(err, "liplot: building series")
	}
	line.Color = c
	marks.Color = c
	p.Add(line, marks)
	p.Legend.Add(name, line)
	return nil
}

func save(p *plot.Plot, path string) error {
	return errors.Wrapf(p.Save(6*vg.Inch, 4*vg.Inch, path), "liplot: saving %s", path)
}
