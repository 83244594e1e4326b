package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/provider"
)

// DefaultProviderTimeout bounds each provider call when no timeout is set.
const DefaultProviderTimeout = 10 * time.Second

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. Every provider sends exactly one update, so a buffer of
// at least one slot per provider never blocks a provider goroutine.
const ProgressBufferMultiplier = 2

const tracerName = "github.com/agbru/mathsolve/internal/orchestration"

// Coordinator fans a query out to providers. The zero value is not usable;
// create one with NewCoordinator.
type Coordinator struct {
	timeout time.Duration
	logger  logging.Logger
	tracer  trace.Tracer
	metrics *ProviderMetrics
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger used for swallowed provider faults.
func WithLogger(l logging.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = l }
}

// WithTracer sets the tracer used for per-provider spans.
func WithTracer(t trace.Tracer) CoordinatorOption {
	return func(c *Coordinator) { c.tracer = t }
}

// WithMetrics sets the outcome collectors.
func WithMetrics(m *ProviderMetrics) CoordinatorOption {
	return func(c *Coordinator) { c.metrics = m }
}

// NewCoordinator creates a coordinator with the given per-provider timeout.
// A non-positive timeout selects DefaultProviderTimeout.
func NewCoordinator(timeout time.Duration, opts ...CoordinatorOption) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	c := &Coordinator{
		timeout: timeout,
		logger:  logging.NopLogger{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-provider deadline.
func (c *Coordinator) Timeout() time.Duration { return c.timeout }

// ExecuteProviders runs query against providers with a default coordinator.
func ExecuteProviders(ctx context.Context, query string, providers []provider.Provider, timeout time.Duration, progressReporter ProgressReporter, out io.Writer) []answer.ProviderResult {
	return NewCoordinator(timeout).Execute(ctx, query, providers, progressReporter, out)
}

// Execute orchestrates the concurrent execution of every provider.
//
// All providers start at once and Execute returns only when each has
// reached a terminal state. The result slice has one entry per provider in
// the order given, independent of completion order. Provider errors,
// panics and timeouts are recorded in the results and never returned.
func (c *Coordinator) Execute(ctx context.Context, query string, providers []provider.Provider, progressReporter ProgressReporter, out io.Writer) []answer.ProviderResult {
	if progressReporter == nil {
		progressReporter = NullProgressReporter{}
	}
	g, gctx := errgroup.WithContext(ctx)
	results := make([]answer.ProviderResult, len(providers))
	updates := make(chan CompletionUpdate, len(providers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, updates, len(providers), out)

	for i, p := range providers {
		idx, prov := i, p
		g.Go(func() error {
			res := c.run(gctx, idx, prov, query)
			results[idx] = res
			updates <- CompletionUpdate{ProviderIndex: idx, Name: res.Name, Outcome: res.Outcome, Duration: res.Duration}
			return nil
		})
	}

	_ = g.Wait()
	close(updates)
	displayWg.Wait()

	return results
}

type reply struct {
	text string
	err  error
}

// run invokes a single provider under its own deadline. A provider that
// ignores ctx is abandoned when the deadline fires; its goroutine finishes
// in the background and its late reply is discarded.
func (c *Coordinator) run(ctx context.Context, idx int, p provider.Provider, query string) answer.ProviderResult {
	name := providerName(idx, p)
	ctx, span := c.tracer.Start(ctx, "provider.solve", trace.WithAttributes(
		attribute.String("provider.name", name),
		attribute.Int("provider.index", idx),
	))
	defer span.End()

	pctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		text, err := p.Solve(pctx, query)
		done <- reply{text: text, err: err}
	}()

	var res answer.ProviderResult
	select {
	case r := <-done:
		res = classify(name, r.text, r.err, c.timeout)
	case <-pctx.Done():
		res = classify(name, "", pctx.Err(), c.timeout)
	}
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.String("provider.outcome", res.Outcome.String()))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		c.logger.Error("provider failed", res.Err, logging.String("provider", name), logging.Duration("duration", res.Duration))
	} else {
		c.logger.Debug("provider finished", logging.String("provider", name), logging.String("outcome", res.Outcome.String()), logging.Duration("duration", res.Duration))
	}
	c.metrics.observe(res)
	return res
}

// classify maps an adapter's return values to a three-state result.
func classify(name, text string, err error, timeout time.Duration) answer.ProviderResult {
	res := answer.ProviderResult{Name: name}
	switch {
	case err == nil:
		res.Outcome = answer.Success
		res.Text = text
	case errors.Is(err, provider.ErrNoAnswer):
		res.Outcome = answer.Absent
	case errors.Is(err, context.DeadlineExceeded):
		res.Outcome = answer.Failure
		res.Err = apperrors.ProviderError{Provider: name, Cause: apperrors.TimeoutError{Operation: name, Limit: timeout}}
	default:
		res.Outcome = answer.Failure
		res.Err = apperrors.ProviderError{Provider: name, Cause: err}
	}
	return res
}

func providerName(idx int, p provider.Provider) (name string) {
	defer func() {
		if recover() != nil {
			name = fmt.Sprintf("provider-%d", idx+1)
		}
	}()
	return p.Name()
}
