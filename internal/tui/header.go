package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/mathsolve/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time of the
// current query.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
}

// NewHeaderModel creates a header with the timer stopped.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// Start restarts the elapsed timer.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.startTime.IsZero() {
		return
	}
	h.endTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the duration of the current or last query.
func (h HeaderModel) Elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	default:
		return time.Since(h.startTime)
	}
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "MathSolve"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	row := titleStyle.Render(titleText)

	if !h.startTime.IsZero() {
		row += versionStyle.Render(" | ") +
			elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	}

	style := headerStyle
	if h.width > 0 {
		style = style.Width(h.width)
	}
	return style.Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
