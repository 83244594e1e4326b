package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	cause := errors.New("HTTP 503")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("unknown arbiter %q", "oracle"), `unknown arbiter "oracle"`},
		{"provider with cause", ProviderError{Provider: "Wolfram Alpha", Cause: cause}, `provider "Wolfram Alpha": HTTP 503`},
		{"provider without cause", ProviderError{Provider: "DeepSeek"}, `provider "DeepSeek" failed`},
		{"timeout", TimeoutError{Operation: "SymPy", Limit: 10 * time.Second}, `operation "SymPy" timed out after 10s`},
		{"validation", ErrEmptyQuery, `validation error for "query": Please enter a math problem.`},
		{"equation", ErrEmptyEquation, `validation error for "equation": No equation provided`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("fan-out: %w", ProviderError{Provider: "Google AI", Cause: context.DeadlineExceeded})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("cause should be reachable through errors.Is")
	}
	var pe ProviderError
	if !errors.As(err, &pe) || pe.Provider != "Google AI" {
		t.Errorf("errors.As = %+v", pe)
	}
	if (ProviderError{Provider: "x"}).Unwrap() != nil {
		t.Error("nil cause should unwrap to nil")
	}
}

func TestTimeoutError_IsDeadline(t *testing.T) {
	t.Parallel()
	err := WrapError(TimeoutError{Operation: "arbiter", Limit: time.Second}, "select")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
	if errors.Is(err, context.Canceled) {
		t.Error("TimeoutError should not match context.Canceled")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ignored %d", 1) != nil {
		t.Fatal("wrapping nil should return nil")
	}

	base := ValidationError{Field: "query", Message: "too long"}
	err := WrapError(base, "request %d", 7)
	if !strings.HasPrefix(err.Error(), "request 7: ") {
		t.Errorf("Error() = %q", err.Error())
	}
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Message != "too long" {
		t.Errorf("errors.As lost the validation error: %+v", ve)
	}

	twice := WrapError(err, "outer")
	if !errors.As(twice, &ve) {
		t.Error("double wrap should keep the chain")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("provider: %w", context.Canceled), true},
		{TimeoutError{Operation: "x"}, true},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", ErrEmptyQuery, ExitErrorConfig},
		{"wrapped config", WrapError(NewConfigError("bad"), "parse"), ExitErrorConfig},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout error", TimeoutError{Operation: "query"}, ExitErrorTimeout},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), ExitErrorCanceled},
		{"other", errors.New("disk full"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandleQueryError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		code int
		out  string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "Status: Failure (Timeout). The query exceeded its time limit after 2s.\n"},
		{"canceled", context.Canceled, ExitErrorCanceled, "Status: Canceled by user after 2s.\n"},
		{"validation", ErrEmptyQuery, ExitErrorConfig, "Error: " + ErrEmptyQuery.Error() + "\n"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "Status: Failure. An unexpected error occurred: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if code := HandleQueryError(tt.err, 2*time.Second, &buf); code != tt.code {
				t.Errorf("code = %d, want %d", code, tt.code)
			}
			if buf.String() != tt.out {
				t.Errorf("output = %q, want %q", buf.String(), tt.out)
			}
		})
	}
}

func TestExitCodesDistinct(t *testing.T) {
	t.Parallel()
	seen := map[int]bool{}
	for _, c := range []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorNoAnswer, ExitErrorConfig, ExitErrorCanceled} {
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
}
