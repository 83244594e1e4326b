package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorNoAnswer = 3 // every provider came back empty
	ExitErrorConfig   = 4 // bad flags, bad config, or a rejected query
	ExitErrorCanceled = 130
)

// ConfigError is raised for flags, files, or environment values that make
// the run impossible.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ProviderError is a fault raised by one answer provider. It stops at the
// aggregation layer and is only ever logged or attached to that provider's
// result.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e ProviderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("provider %q failed", e.Provider)
	}
	return fmt.Sprintf("provider %q: %v", e.Provider, e.Cause)
}

func (e ProviderError) Unwrap() error { return e.Cause }

// TimeoutError names an operation that ran past Limit. It matches
// context.DeadlineExceeded under errors.Is.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

func (e TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ValidationError rejects user input before any provider runs. Message is
// safe to show to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

var (
	// ErrEmptyQuery rejects a blank query.
	ErrEmptyQuery = ValidationError{Field: "query", Message: "Please enter a math problem."}
	// ErrEmptyEquation rejects a blank graph expression.
	ErrEmptyEquation = ValidationError{Field: "equation", Message: "No equation provided"}
)

// WrapError prefixes err with a formatted message, keeping it reachable
// through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps err to a process exit code.
func ExitCodeFor(err error) int {
	var (
		validationErr ValidationError
		configErr     ConfigError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &validationErr), errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}

// HandleQueryError writes a one-line status for a failed run to out and
// returns its exit code. duration is how long the run lasted.
func HandleQueryError(err error, duration time.Duration, out io.Writer) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The query exceeded its time limit after %s.\n", duration)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled by user after %s.\n", duration)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Error: %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
