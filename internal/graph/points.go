package graph

import (
	"context"
	"math"

	"github.com/agbru/mathsolve/internal/mathexpr"
)

// SeriesPoints is the number of samples in a Series.
const SeriesPoints = 400

// Series is y = expression sampled at SeriesPoints evenly spaced x values
// over the default window. Y holds nil where the expression is undefined so
// the series stays valid JSON.
type Series struct {
	X []float64  `json:"xValues"`
	Y []*float64 `json:"yValues"`
}

// Points samples expression for clients that draw the curve themselves.
func Points(ctx context.Context, expression string) (Series, error) {
	if err := ctx.Err(); err != nil {
		return Series{}, err
	}
	f, err := mathexpr.Compile(expression)
	if err != nil {
		return Series{}, err
	}
	xs, ys := f.Sample(DefaultXMin, DefaultXMax, SeriesPoints)
	s := Series{X: xs, Y: make([]*float64, len(ys))}
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		s.Y[i] = &y
	}
	return s, nil
}
