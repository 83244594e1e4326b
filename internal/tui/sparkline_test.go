package tui

import (
	"slices"
	"testing"
	"unicode/utf8"
)

func TestSampleWindow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		limit int
		push  []float64
		want  []float64
		last  float64
		peak  float64
	}{
		{"empty", 3, nil, nil, 0, 0},
		{"partial", 3, []float64{5, 9}, []float64{5, 9}, 9, 9},
		{"full", 3, []float64{1, 2, 3}, []float64{1, 2, 3}, 3, 3},
		{"rolls over", 3, []float64{80, 2, 3, 4}, []float64{2, 3, 4}, 4, 4},
		{"peak in middle", 4, []float64{10, 70, 20}, []float64{10, 70, 20}, 20, 70},
		{"zero limit keeps one", 0, []float64{1, 2}, []float64{2}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := newSampleWindow(tt.limit)
			for _, v := range tt.push {
				w.Push(v)
			}
			if got := w.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			if got := w.Last(); got != tt.last {
				t.Errorf("Last() = %v, want %v", got, tt.last)
			}
			if got := w.Peak(); got != tt.peak {
				t.Errorf("Peak() = %v, want %v", got, tt.peak)
			}
		})
	}
}

func TestSampleWindow_LongRun(t *testing.T) {
	t.Parallel()
	w := newSampleWindow(sparklineWidth)
	for i := range 500 {
		w.Push(float64(i))
	}
	vals := w.Values()
	if len(vals) != sparklineWidth {
		t.Fatalf("len = %d, want %d", len(vals), sparklineWidth)
	}
	if vals[0] != 480 || w.Last() != 499 {
		t.Errorf("window = [%v .. %v], want [480 .. 499]", vals[0], w.Last())
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 10, ""},
		{"levels", []float64{0, 50, 100}, 0, "▁▄█"},
		{"clamped", []float64{-20, 250}, 0, "▁█"},
		{"trimmed to newest", []float64{100, 100, 0, 0}, 2, "▁▁"},
		{"narrower than width", []float64{100}, 5, "█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := renderSparkline(tt.values, tt.width); got != tt.want {
				t.Errorf("renderSparkline(%v, %d) = %q, want %q", tt.values, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderSparkline_OneRunePerSample(t *testing.T) {
	t.Parallel()
	values := make([]float64, 37)
	for i := range values {
		values[i] = float64(i * 3)
	}
	if n := utf8.RuneCountInString(renderSparkline(values, 0)); n != len(values) {
		t.Errorf("rune count = %d, want %d", n, len(values))
	}
	if n := utf8.RuneCountInString(renderSparkline(values, 12)); n != 12 {
		t.Errorf("rune count with width = %d, want 12", n)
	}
}
