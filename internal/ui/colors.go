package ui

// The Color* helpers return escapes of the active theme, or "" when colors
// are off. Callers close every colored span with ColorReset.

func ColorReset() string     { return activeTheme().attr("0") }
func ColorBold() string      { return activeTheme().attr("1") }
func ColorUnderline() string { return activeTheme().attr("4") }

func ColorRed() string     { t := activeTheme(); return t.foreground(t.Error) }
func ColorGreen() string   { t := activeTheme(); return t.foreground(t.Success) }
func ColorYellow() string  { t := activeTheme(); return t.foreground(t.Warning) }
func ColorBlue() string    { t := activeTheme(); return t.foreground(t.Primary) }
func ColorMagenta() string { t := activeTheme(); return t.foreground(t.Info) }
func ColorCyan() string    { t := activeTheme(); return t.foreground(t.Accent) }
