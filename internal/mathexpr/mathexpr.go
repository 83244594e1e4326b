package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Variable is the name of the free variable.
const Variable = "x"

// ErrEmpty is returned when compiling a blank expression.
var ErrEmpty = errors.New("empty expression")

var (
	implicitNumber = regexp.MustCompile(`(\d)\s*([a-zA-Z(])`)
	implicitParen  = regexp.MustCompile(`\)\s*([a-zA-Z0-9(])`)
	variablePat    = regexp.MustCompile(`\bx\b`)
)

// Func is a compiled expression. It is not safe for concurrent use; compile
// one per goroutine.
type Func struct {
	program *vm.Program
	env     map[string]any
}

func unary(f func(float64) float64) func(any) float64 {
	return func(v any) float64 { return f(toFloat(v)) }
}

// newEnv returns the evaluation environment. abs, floor, ceil, round, min
// and max come from the expr builtins.
func newEnv() map[string]any {
	return map[string]any{
		Variable: 0.0,
		"pi":     math.Pi,
		"e":      math.E,
		"sin":    unary(math.Sin),
		"cos":    unary(math.Cos),
		"tan":    unary(math.Tan),
		"asin":   unary(math.Asin),
		"acos":   unary(math.Acos),
		"atan":   unary(math.Atan),
		"sqrt":   unary(math.Sqrt),
		"log":    unary(math.Log),
		"ln":     unary(math.Log),
		"exp":    unary(math.Exp),
	}
}

// Rewrite applies the implicit multiplication rules to s. Exponents of
// number literals such as 1e-3 or 2.5E+4 are left alone.
func Rewrite(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	last := 0
	for _, m := range implicitNumber.FindAllStringSubmatchIndex(s, -1) {
		digitEnd, next := m[3], m[4]
		if digitEnd == next && isExponent(s, next) {
			continue
		}
		b.WriteString(s[last:digitEnd])
		b.WriteByte('*')
		last = next
	}
	b.WriteString(s[last:])
	return implicitParen.ReplaceAllString(b.String(), ")*$1")
}

// isExponent reports whether s[i:] starts the exponent of a number literal:
// e or E, an optional sign, then a digit.
func isExponent(s string, i int) bool {
	if s[i] != 'e' && s[i] != 'E' {
		return false
	}
	i++
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// HasVariable reports whether s mentions x, including in implicit products
// such as 2x.
func HasVariable(s string) bool {
	return variablePat.MatchString(Rewrite(s))
}

// Compile parses expression into a Func. Unknown names and syntax errors
// fail here rather than at evaluation time.
func Compile(expression string) (*Func, error) {
	src := Rewrite(expression)
	if src == "" {
		return nil, ErrEmpty
	}
	env := newEnv()
	program, err := expr.Compile(src, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Func{program: program, env: env}, nil
}

// Eval evaluates the expression at x.
func (f *Func) Eval(x float64) (float64, error) {
	f.env[Variable] = x
	out, err := expr.Run(f.program, f.env)
	if err != nil {
		return math.NaN(), err
	}
	return toFloat(out), nil
}

// Sample evaluates f at n evenly spaced points over [lo, hi]. Points where
// evaluation fails are returned as NaN.
func (f *Func) Sample(lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range n {
		x := lo + float64(i)*step
		xs[i] = x
		y, err := f.Eval(x)
		if err != nil {
			y = math.NaN()
		}
		ys[i] = y
	}
	return xs, ys
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}
