package mathexpr

import (
	"math"
	"testing"
)

func TestRewrite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"2x + 1", "2*x + 1"},
		{"3(x+1)", "3*(x+1)"},
		{"(x+1)(x-1)", "(x+1)*(x-1)"},
		{"x**2", "x**2"},
		{"  sin(x) ", "sin(x)"},
		{"1e-3", "1e-3"},
		{"2.5E+4x", "2.5E+4*x"},
		{"6.02e23", "6.02e23"},
		{"2e", "2*e"},
		{"2exp(x)", "2*exp(x)"},
		{"2 e-3", "2*e-3"},
	}
	for _, tt := range tests {
		if got := Rewrite(tt.in); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompileAndEval(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{"x^2 - 4", 2, 0},
		{"x**2 + 3*x + 2", 1, 6},
		{"2x + 1", 3, 7},
		{"sqrt(x)", 9, 3},
		{"abs(x)", -5, 5},
		{"0", 7, 0},
		{"1/2", 0, 0.5},
		{"sin(pi/2)", 0, 1},
		{"1e-3", 0, 0.001},
		{"2e3 + x", 1, 2001},
		{"2e", 0, 2 * math.E},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			f, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.expr, err)
			}
			got, err := f.Eval(tt.x)
			if err != nil {
				t.Fatalf("Eval error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("f(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"", "   ", "x +", "y + 1", "foo(x)"} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) expected error", src)
		}
	}
}

func TestSample(t *testing.T) {
	t.Parallel()
	f, err := Compile("x")
	if err != nil {
		t.Fatal(err)
	}
	xs, ys := f.Sample(-10, 10, 1000)
	if len(xs) != 1000 || len(ys) != 1000 {
		t.Fatalf("got %d/%d points, want 1000", len(xs), len(ys))
	}
	if xs[0] != -10 || math.Abs(xs[999]-10) > 1e-9 {
		t.Errorf("range = [%v, %v], want [-10, 10]", xs[0], xs[999])
	}
	if ys[500] != xs[500] {
		t.Errorf("identity mismatch at 500: %v != %v", ys[500], xs[500])
	}
}

func TestHasVariable(t *testing.T) {
	t.Parallel()
	if !HasVariable("x^2 - 4") {
		t.Error("expected x to be detected")
	}
	if HasVariable("exp(2) + 1") {
		t.Error("exp must not count as x")
	}
	for _, s := range []string{"2x + 1", "3x", "(x+1)(x-1)"} {
		if !HasVariable(s) {
			t.Errorf("HasVariable(%q) = false, want true", s)
		}
	}
}
