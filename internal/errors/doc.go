// Package apperrors holds the error types shared by every mathsolve surface
// (configuration, input validation, provider faults, timeouts) and maps them
// to process exit codes. Wrapping types implement Unwrap so errors.Is and
// errors.As see through them.
package apperrors
