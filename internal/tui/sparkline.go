package tui

import "strings"

// sparkBlocks are the eight bar heights, lowest first.
const sparkBlocks = "▁▂▃▄▅▆▇█"

// sampleWindow keeps the most recent limit samples of a 0..100 series.
type sampleWindow struct {
	samples []float64
	limit   int
}

func newSampleWindow(limit int) *sampleWindow {
	return &sampleWindow{limit: max(limit, 1)}
}

// Push appends v and drops the oldest sample once the window is full.
func (w *sampleWindow) Push(v float64) {
	if len(w.samples) == w.limit {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.limit-1]
	}
	w.samples = append(w.samples, v)
}

// Values returns the samples oldest first. The slice is shared.
func (w *sampleWindow) Values() []float64 { return w.samples }

// Last returns the newest sample, or 0 before the first Push.
func (w *sampleWindow) Last() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return w.samples[len(w.samples)-1]
}

// Peak returns the largest sample in the window.
func (w *sampleWindow) Peak() float64 {
	var p float64
	for _, v := range w.samples {
		p = max(p, v)
	}
	return p
}

// renderSparkline draws percentages as block characters, one per sample,
// keeping only the newest width values when width > 0.
func renderSparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	blocks := []rune(sparkBlocks)
	var b strings.Builder
	for _, v := range values {
		level := int(min(max(v, 0), 100) / 100 * float64(len(blocks)-1))
		b.WriteRune(blocks[level])
	}
	return b.String()
}
