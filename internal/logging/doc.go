// Package logging provides a unified logging interface for mathsolve.
// It abstracts the underlying logging implementation so the coordinator,
// providers and server can log the faults they swallow without depending on
// a specific backend.
package logging
