package provider

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agbru/mathsolve/internal/mathexpr"
)

// Root search window and grid. The grid step is a power of two so integer
// roots fall exactly on grid points.
const (
	rootSearchMin  = -100.0
	rootSearchMax  = 100.0
	rootGridStep   = 1.0 / 64
	rootTolerance  = 1e-9
	bisectionSteps = 80
)

var (
	leadingVerb   = regexp.MustCompile(`(?i)^\s*(solve|simplify|evaluate|calculate|compute|find|what\s+is|what's)\b[\s:]*`)
	trailingNoise = regexp.MustCompile(`(?i)(\s+for\s+x)?\s*[?.]?\s*$`)
)

// Symbolic is the local solver registered under the SymPy display name. It
// evaluates arithmetic expressions and finds the real roots of equations in
// x numerically, without any network access.
type Symbolic struct{}

// NewSymbolic creates the local solver.
func NewSymbolic() *Symbolic { return &Symbolic{} }

// Name returns "SymPy".
func (s *Symbolic) Name() string { return SymPyName }

// Solve handles two query shapes: "<lhs> = <rhs>" is solved for x, and a
// constant expression is evaluated. Anything else is ErrNoAnswer.
func (s *Symbolic) Solve(ctx context.Context, query string) (string, error) {
	q := trailingNoise.ReplaceAllString(leadingVerb.ReplaceAllString(query, ""), "")
	if strings.TrimSpace(q) == "" {
		return "", ErrNoAnswer
	}

	parts := strings.Split(q, "=")
	switch len(parts) {
	case 1:
		return evaluateConstant(parts[0])
	case 2:
		return solveEquation(ctx, parts[0], parts[1])
	default:
		return "", ErrNoAnswer
	}
}

func evaluateConstant(src string) (string, error) {
	if mathexpr.HasVariable(src) {
		return "", ErrNoAnswer
	}
	f, err := mathexpr.Compile(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoAnswer, err)
	}
	v, err := f.Eval(0)
	if err != nil || math.IsNaN(v) {
		return "", ErrNoAnswer
	}
	return formatNumber(v), nil
}

func solveEquation(ctx context.Context, lhs, rhs string) (string, error) {
	if strings.TrimSpace(lhs) == "" || strings.TrimSpace(rhs) == "" {
		return "", ErrNoAnswer
	}
	if !mathexpr.HasVariable(lhs) && !mathexpr.HasVariable(rhs) {
		return "", ErrNoAnswer
	}
	f, err := mathexpr.Compile(fmt.Sprintf("(%s) - (%s)", lhs, rhs))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoAnswer, err)
	}
	roots, err := findRoots(ctx, f)
	if err != nil {
		return "", err
	}
	if len(roots) == 0 {
		return "", ErrNoAnswer
	}
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = "x = " + formatNumber(r)
	}
	return strings.Join(parts, ", "), nil
}

// findRoots scans the search window for exact zeros and sign changes and
// refines each bracket by bisection.
func findRoots(ctx context.Context, f *mathexpr.Func) ([]float64, error) {
	var roots []float64
	eval := func(x float64) float64 {
		y, err := f.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return y
	}

	steps := int((rootSearchMax - rootSearchMin) / rootGridStep)
	prevX := rootSearchMin
	prevY := eval(prevX)
	if isZero(prevY) {
		roots = append(roots, prevX)
	}
	for i := 1; i <= steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		x := rootSearchMin + float64(i)*rootGridStep
		y := eval(x)
		switch {
		case isZero(y):
			roots = append(roots, x)
		case finite(prevY) && finite(y) && !isZero(prevY) && math.Signbit(prevY) != math.Signbit(y):
			if r, ok := bisect(eval, prevX, x, prevY); ok {
				roots = append(roots, r)
			}
		}
		prevX, prevY = x, y
	}
	return dedupe(roots), nil
}

func bisect(eval func(float64) float64, lo, hi, flo float64) (float64, bool) {
	for range bisectionSteps {
		mid := (lo + hi) / 2
		fm := eval(mid)
		if !finite(fm) {
			return 0, false
		}
		if isZero(fm) {
			return mid, true
		}
		if math.Signbit(fm) == math.Signbit(flo) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	mid := (lo + hi) / 2
	// A sign change across a pole (1/x) converges to a huge residual.
	if math.Abs(eval(mid)) > 1e-6 {
		return 0, false
	}
	return mid, true
}

func dedupe(roots []float64) []float64 {
	sort.Float64s(roots)
	out := roots[:0]
	for _, r := range roots {
		if len(out) > 0 && math.Abs(r-out[len(out)-1]) < 1e-6 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isZero(v float64) bool { return math.Abs(v) < rootTolerance }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// formatNumber prints v with up to 10 significant digits, snapping values
// within 1e-9 of an integer.
func formatNumber(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		v = r
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}
