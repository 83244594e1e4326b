//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Display names of the built-in providers, in registration order.
const (
	GoogleAIName      = "Google AI"
	DeepSeekName      = "DeepSeek"
	SymPyName         = "SymPy"
	WolframAlphaName  = "Wolfram Alpha"
	StackExchangeName = "Stack Exchange"
)

var (
	// ErrNoAnswer signals that the provider ran but has nothing to say about
	// the query.
	ErrNoAnswer = errors.New("no answer")
	// ErrNotConfigured signals missing credentials.
	ErrNotConfigured = errors.New("provider not configured")
)

// Provider answers a free-text math query.
type Provider interface {
	// Name returns the display name used in results and placeholders.
	Name() string
	// Solve returns the provider's answer. It must honor ctx cancellation.
	Solve(ctx context.Context, query string) (string, error)
}

// Func adapts a plain function to the Provider interface.
type Func struct {
	ProviderName string
	Fn           func(ctx context.Context, query string) (string, error)
}

// Name returns the configured display name.
func (f Func) Name() string { return f.ProviderName }

// Solve calls the wrapped function.
func (f Func) Solve(ctx context.Context, query string) (string, error) {
	return f.Fn(ctx, query)
}

// StatusError is returned when an upstream API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

const defaultHTTPTimeout = 30 * time.Second

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// readErrBody returns at most 512 bytes of an error response body.
func readErrBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(data))
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{Code: resp.StatusCode, Body: readErrBody(resp.Body)}
}
