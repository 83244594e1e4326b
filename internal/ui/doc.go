// Package ui provides theme and color support shared by the CLI and the
// TUI. ANSI codes serve the line-oriented CLI; lipgloss colors serve the
// dashboard.
package ui
