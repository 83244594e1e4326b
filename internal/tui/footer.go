package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/metrics"
)

// sparklineWidth is the number of samples drawn per sparkline.
const sparklineWidth = 20

// Status values shown in the footer.
const (
	statusIdle     = "Ready"
	statusRunning  = "Solving"
	statusDone     = "Done"
	statusNoAnswer = "No answer"
	statusError    = "Error"
	statusCanceled = "Canceled"
)

// FooterModel renders system usage, the run status and the key hints.
type FooterModel struct {
	cpu    *sampleWindow
	mem    *sampleWindow
	memory metrics.MemorySnapshot
	status string
	keymap KeyMap
	width  int
}

// NewFooterModel creates a footer in the idle state.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{
		cpu:    newSampleWindow(sparklineWidth),
		mem:    newSampleWindow(sparklineWidth),
		status: statusIdle,
		keymap: km,
	}
}

// Record adds one sample.
func (f *FooterModel) Record(msg StatsMsg) {
	f.cpu.Push(msg.System.CPUPercent)
	f.mem.Push(msg.System.MemPercent)
	f.memory = msg.Memory
}

// SetStatus updates the run status.
func (f *FooterModel) SetStatus(s string) { f.status = s }

// Status returns the run status.
func (f FooterModel) Status() string { return f.status }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the two footer lines.
func (f FooterModel) View() string {
	var stats strings.Builder
	stats.WriteString(metricLabelStyle.Render("CPU "))
	stats.WriteString(cpuSparklineStyle.Render(renderSparkline(f.cpu.Values(), sparklineWidth)))
	stats.WriteString(metricValueStyle.Render(fmt.Sprintf(" %5.1f%% (peak %.0f%%)", f.cpu.Last(), f.cpu.Peak())))
	stats.WriteString(metricLabelStyle.Render("  MEM "))
	stats.WriteString(memSparklineStyle.Render(renderSparkline(f.mem.Values(), sparklineWidth)))
	stats.WriteString(metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", f.mem.Last())))
	stats.WriteString(metricLabelStyle.Render("  Heap "))
	stats.WriteString(metricValueStyle.Render(format.FormatBytes(f.memory.HeapAlloc)))
	stats.WriteString(metricLabelStyle.Render("  Goroutines "))
	stats.WriteString(metricValueStyle.Render(fmt.Sprintf("%d", f.memory.Goroutines)))

	var help strings.Builder
	help.WriteString(f.statusView())
	for _, b := range f.keymap.ShortHelp() {
		h := b.Help()
		help.WriteString("  ")
		help.WriteString(footerKeyStyle.Render(h.Key))
		help.WriteString(" ")
		help.WriteString(footerDescStyle.Render(h.Desc))
	}

	return " " + stats.String() + "\n " + help.String()
}

func (f FooterModel) statusView() string {
	switch f.status {
	case statusRunning:
		return statusRunningStyle.Render(f.status)
	case statusError, statusNoAnswer, statusCanceled:
		return statusErrorStyle.Render(f.status)
	default:
		return statusDoneStyle.Render(f.status)
	}
}
