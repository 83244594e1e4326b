package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/orchestration"
)

type providerRow struct {
	name     string
	done     bool
	outcome  answer.Outcome
	duration time.Duration
	err      error
}

// ProvidersModel renders one status row per provider in registration
// order.
type ProvidersModel struct {
	rows      []providerRow
	completed int
	width     int
	height    int
}

// NewProvidersModel creates the panel for the named providers.
func NewProvidersModel(names []string) ProvidersModel {
	rows := make([]providerRow, len(names))
	for i, n := range names {
		rows[i] = providerRow{name: n}
	}
	return ProvidersModel{rows: rows}
}

// Begin marks every provider as pending.
func (p *ProvidersModel) Begin() {
	for i := range p.rows {
		p.rows[i] = providerRow{name: p.rows[i].name}
	}
	p.completed = 0
}

// Complete records a provider's terminal state. Updates for unknown
// indexes are ignored.
func (p *ProvidersModel) Complete(u orchestration.CompletionUpdate) {
	if u.ProviderIndex < 0 || u.ProviderIndex >= len(p.rows) {
		return
	}
	row := &p.rows[u.ProviderIndex]
	if !row.done {
		p.completed++
	}
	row.done = true
	row.outcome = u.Outcome
	row.duration = u.Duration
}

// SetResults replaces the rows with the final outcomes, errors included.
func (p *ProvidersModel) SetResults(results []answer.ProviderResult) {
	for i, r := range results {
		if i >= len(p.rows) {
			break
		}
		p.rows[i] = providerRow{
			name:     p.rows[i].name,
			done:     true,
			outcome:  r.Outcome,
			duration: r.Duration,
			err:      r.Err,
		}
	}
	p.completed = min(len(results), len(p.rows))
}

// Completed returns the number of providers in a terminal state.
func (p ProvidersModel) Completed() int { return p.completed }

// Len returns the number of providers.
func (p ProvidersModel) Len() int { return len(p.rows) }

// SetSize updates the panel dimensions.
func (p *ProvidersModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// View renders the panel. spinnerFrame is drawn next to pending providers
// while running is true.
func (p ProvidersModel) View(spinnerFrame string, running bool) string {
	nameWidth := 0
	for _, r := range p.rows {
		nameWidth = max(nameWidth, len([]rune(r.name)))
	}

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("Providers %d/%d", p.completed, len(p.rows))))
	for _, r := range p.rows {
		b.WriteString("\n")
		b.WriteString(p.rowView(r, nameWidth, spinnerFrame, running))
	}
	return p.frame(b.String())
}

func (p ProvidersModel) rowView(r providerRow, nameWidth int, spinnerFrame string, running bool) string {
	name := providerNameStyle.Render(r.name + spaces(nameWidth-len([]rune(r.name))))
	if !r.done {
		icon := dimStyle.Render("·")
		if running {
			icon = spinnerFrame
		}
		return icon + " " + name
	}

	dur := dimStyle.Render(format.FormatExecutionDuration(r.duration))
	switch r.outcome {
	case answer.Success:
		return successStyle.Render("✓") + " " + name + " " + dur
	case answer.Failure:
		row := errorStyle.Render("✗") + " " + name + " " + dur
		if r.err != nil {
			row += " " + errorStyle.Render(truncate(r.err.Error(), p.width/2))
		}
		return row
	default:
		return warningStyle.Render("–") + " " + name + " " + dur + " " + dimStyle.Render("no answer")
	}
}

func (p ProvidersModel) frame(content string) string {
	style := panelStyle
	if p.width > 2 {
		style = style.Width(p.width - 2)
	}
	if p.height > 2 {
		style = style.Height(p.height - 2)
	}
	return style.Render(content)
}

// truncate shortens s to at most n runes, marking the cut with an
// ellipsis. n <= 0 disables truncation.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
