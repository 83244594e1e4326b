package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme assigns an xterm-256 color index to each role. The CLI turns the
// indexes into ANSI escapes and the dashboard into lipgloss colors, so both
// surfaces always agree. A theme without indexes prints plain text.
type Theme struct {
	Name    string
	Primary string
	Accent  string
	Success string
	Warning string
	Error   string
	Info    string
	Text    string
	Dim     string
}

var (
	DarkTheme = Theme{
		Name: "dark", Primary: "33", Accent: "45", Success: "113", Warning: "215",
		Error: "203", Info: "141", Text: "253", Dim: "242",
	}
	LightTheme = Theme{
		Name: "light", Primary: "25", Accent: "31", Success: "28", Warning: "130",
		Error: "124", Info: "54", Text: "235", Dim: "245",
	}
	NoColorTheme = Theme{Name: "none"}

	// DarkPalette is the dashboard palette of DarkTheme.
	DarkPalette = DarkTheme.Palette()

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Palette holds the lipgloss colors of the dashboard.
type Palette struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

// Palette converts t for lipgloss.
func (t Theme) Palette() Palette {
	color := func(idx string) lipgloss.TerminalColor {
		if idx == "" {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(idx)
	}
	return Palette{
		Text:    color(t.Text),
		Border:  color(t.Primary),
		Accent:  color(t.Accent),
		Success: color(t.Success),
		Warning: color(t.Warning),
		Error:   color(t.Error),
		Dim:     color(t.Dim),
	}
}

func (t Theme) plain() bool { return t.Primary == "" }

// foreground returns the ANSI escape selecting idx, or "" for plain themes.
func (t Theme) foreground(idx string) string {
	if t.plain() || idx == "" {
		return ""
	}
	return "\033[38;5;" + idx + "m"
}

func (t Theme) attr(code string) string {
	if t.plain() {
		return ""
	}
	return "\033[" + code + "m"
}

// CurrentPalette returns the dashboard palette of the active theme.
func CurrentPalette() Palette { return activeTheme().Palette() }

// activeTheme returns the active theme.
func activeTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	currentTheme = t
	themeMutex.Unlock()
}

// SetTheme selects "dark", "light" or "none". Unknown names select dark.
func SetTheme(name string) {
	for _, t := range []Theme{LightTheme, NoColorTheme} {
		if t.Name == name {
			SetCurrentTheme(t)
			return
		}
	}
	SetCurrentTheme(DarkTheme)
}

// InitTheme selects the plain theme when noColor is set or NO_COLOR is
// present (https://no-color.org/), and the dark theme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
