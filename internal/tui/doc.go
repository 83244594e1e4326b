// Package tui implements the interactive dashboard: a query prompt, live
// per-provider status, the selected answer with every candidate, and a
// footer with process and system usage.
package tui
