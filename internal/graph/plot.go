package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/agbru/mathsolve/internal/mathexpr"
)

// Default sampling window and image size.
const (
	DefaultXMin   = -10.0
	DefaultXMax   = 10.0
	DefaultPoints = 1000
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// ErrNoFiniteValues is returned when an expression is undefined over the
// whole sampling window.
var ErrNoFiniteValues = errors.New("expression has no finite values in range")

var lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// PlotRenderer samples an expression over [XMin, XMax] and draws it with
// gonum/plot.
type PlotRenderer struct {
	XMin, XMax    float64
	Points        int
	Width, Height vg.Length
}

// NewPlotRenderer returns a renderer with the default window and size.
func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{
		XMin:   DefaultXMin,
		XMax:   DefaultXMax,
		Points: DefaultPoints,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Render draws y = expression as a PNG image.
func (r *PlotRenderer) Render(ctx context.Context, expression string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := mathexpr.Compile(expression)
	if err != nil {
		return nil, err
	}
	xs, ys := f.Sample(r.XMin, r.XMax, r.Points)
	segments := finiteSegments(xs, ys)
	if len(segments) == 0 {
		return nil, ErrNoFiniteValues
	}

	p := plot.New()
	p.Title.Text = "Graph of y = " + expression
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	for i, seg := range segments {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, fmt.Errorf("build line: %w", err)
		}
		line.Color = lineColor
		line.Width = vg.Points(1.5)
		p.Add(line)
		if i == 0 {
			p.Legend.Add("y = "+expression, line)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// finiteSegments splits the samples at NaN and infinite values, which
// gonum rejects.
func finiteSegments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
