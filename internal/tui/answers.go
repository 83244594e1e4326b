package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/format"
)

// AnswersModel shows the best answer, the graph status and every
// provider's normalized answer in a scrollable viewport.
type AnswersModel struct {
	viewport viewport.Model
	result   *answer.AggregateResult
	fallback bool
	err      error
	width    int
	height   int
}

// NewAnswersModel creates an empty answers panel.
func NewAnswersModel() AnswersModel {
	return AnswersModel{viewport: viewport.New(0, 0)}
}

// Clear removes the previous result.
func (a *AnswersModel) Clear() {
	a.result = nil
	a.fallback = false
	a.err = nil
	a.refresh()
}

// SetResult shows an aggregate result.
func (a *AnswersModel) SetResult(r answer.AggregateResult) {
	a.result = &r
	a.err = nil
	a.refresh()
	a.viewport.GotoTop()
}

// SetFallback records whether the best answer came from the fallback.
func (a *AnswersModel) SetFallback(fallback bool) {
	a.fallback = fallback
	a.refresh()
}

// SetError shows a rejected query.
func (a *AnswersModel) SetError(err error) {
	a.result = nil
	a.err = err
	a.refresh()
}

// SetSize updates the panel dimensions.
func (a *AnswersModel) SetSize(w, h int) {
	a.width = w
	a.height = h
	a.viewport.Width = max(w-4, 0)
	a.viewport.Height = max(h-3, 0)
	a.refresh()
}

// Update forwards scroll keys to the viewport.
func (a *AnswersModel) Update(msg tea.Msg) {
	a.viewport, _ = a.viewport.Update(msg)
}

// Content returns the unframed panel text.
func (a AnswersModel) Content() string {
	switch {
	case a.err != nil:
		var ve apperrors.ValidationError
		if errors.As(a.err, &ve) {
			return errorStyle.Render(ve.Message)
		}
		return errorStyle.Render(a.err.Error())
	case a.result == nil:
		return dimStyle.Render("Type a math problem and press enter.")
	}

	wrap := lipgloss.NewStyle()
	if a.viewport.Width > 0 {
		wrap = wrap.Width(a.viewport.Width)
	}

	var b strings.Builder
	b.WriteString(bestAnswerStyle.Render("Best answer"))
	if a.fallback {
		b.WriteString(dimStyle.Render(" (fallback)"))
	}
	b.WriteString("\n")
	b.WriteString(wrap.Render(strings.TrimSpace(a.result.BestAnswer)))
	b.WriteString("\n\n")

	if g := a.result.Graph; g != nil {
		b.WriteString(metricLabelStyle.Render("Graph: "))
		b.WriteString(metricValueStyle.Render(fmt.Sprintf("y = %s", g.Expression)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%s PNG)", format.FormatBytes(uint64(len(g.PNG))))))
		b.WriteString("\n\n")
	}

	for _, ans := range a.result.Answers {
		b.WriteString(panelTitleStyle.Render(ans.ProviderName))
		b.WriteString("\n")
		text := wrap.Render(strings.TrimSpace(ans.Text))
		if ans.IsPlaceholder() {
			text = dimStyle.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *AnswersModel) refresh() {
	a.viewport.SetContent(a.Content())
}

// View renders the framed panel.
func (a AnswersModel) View() string {
	title := panelTitleStyle.Render("Answers")
	if a.viewport.TotalLineCount() > a.viewport.Height && a.viewport.Height > 0 {
		title += dimStyle.Render(fmt.Sprintf(" %3.f%%", a.viewport.ScrollPercent()*100))
	}
	body := a.viewport.View()
	if a.viewport.Height == 0 {
		body = a.Content()
	}

	style := panelStyle
	if a.width > 2 {
		style = style.Width(a.width - 2)
	}
	if a.height > 2 {
		style = style.Height(a.height - 2)
	}
	return style.Render(title + "\n" + body)
}
