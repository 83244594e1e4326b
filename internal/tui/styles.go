package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mathsolve/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	promptStyle        lipgloss.Style
	providerNameStyle  lipgloss.Style
	dimStyle           lipgloss.Style
	successStyle       lipgloss.Style
	warningStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	bestAnswerStyle    lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	versionStyle = lipgloss.NewStyle().Foreground(p.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(p.Accent)

	promptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	providerNameStyle = lipgloss.NewStyle().Foreground(p.Text)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	successStyle = lipgloss.NewStyle().Foreground(p.Success)
	warningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	errorStyle = lipgloss.NewStyle().Foreground(p.Error)

	bestAnswerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Success)

	metricLabelStyle = lipgloss.NewStyle().Foreground(p.Dim)
	metricValueStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(p.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	statusDoneStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)
	statusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().Foreground(p.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(p.Warning)
}
