package orchestration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/arbiter"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/graph"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/provider"
)

// Report is the outcome of a full query run.
type Report struct {
	Result answer.AggregateResult
	// Results holds the raw per-provider outcomes behind Result.Answers.
	Results []answer.ProviderResult
	// Fallback is true when the best answer did not come from the arbiter.
	Fallback bool
	Elapsed  time.Duration
}

// Aggregator runs the full pipeline: fan-out, normalization, arbitration
// and optional graph rendering.
type Aggregator struct {
	providers   []provider.Provider
	arbiter     arbiter.Arbiter
	renderer    graph.Renderer
	coordinator *Coordinator
	logger      logging.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithGraphRenderer enables graph rendering. Without it no graph is ever
// attached.
func WithGraphRenderer(r graph.Renderer) AggregatorOption {
	return func(a *Aggregator) { a.renderer = r }
}

// WithCoordinator replaces the default coordinator.
func WithCoordinator(c *Coordinator) AggregatorOption {
	return func(a *Aggregator) { a.coordinator = c }
}

// WithAggregatorLogger sets the logger for arbiter and graph faults.
func WithAggregatorLogger(l logging.Logger) AggregatorOption {
	return func(a *Aggregator) { a.logger = l }
}

// NewAggregator creates an aggregator over providers in registration
// order. A nil arbiter always uses the fallback.
func NewAggregator(providers []provider.Provider, arb arbiter.Arbiter, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		providers: providers,
		arbiter:   arb,
		logger:    logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.coordinator == nil {
		a.coordinator = NewCoordinator(DefaultProviderTimeout, WithLogger(a.logger))
	}
	return a
}

// Providers returns the configured providers in registration order.
func (a *Aggregator) Providers() []provider.Provider { return a.providers }

// Solve answers query. The only error is apperrors.ErrEmptyQuery for a
// blank query; every downstream fault degrades the report instead.
func (a *Aggregator) Solve(ctx context.Context, query string, progressReporter ProgressReporter, out io.Writer) (Report, error) {
	if strings.TrimSpace(query) == "" {
		return Report{}, apperrors.ErrEmptyQuery
	}
	start := time.Now()
	ctx, span := a.coordinator.tracer.Start(ctx, "aggregate")
	defer span.End()

	results := a.coordinator.Execute(ctx, query, a.providers, progressReporter, out)
	answers := Normalize(results)

	best, fallback := a.selectBest(ctx, query, answers)
	if fallback {
		a.coordinator.metrics.fallback()
	}
	report := Report{
		Result: answer.AggregateResult{
			Query:      query,
			Answers:    answers,
			BestAnswer: best,
		},
		Results:  results,
		Fallback: fallback,
	}
	report.Result.Graph = a.renderGraph(ctx, query)
	report.Elapsed = time.Since(start)

	span.SetAttributes(
		attribute.Int("providers", len(results)),
		attribute.Bool("arbiter.fallback", fallback),
		attribute.Bool("graph", report.Result.Graph != nil),
	)
	return report, nil
}

// arbiterReply carries the outcome of one Select call.
type arbiterReply struct {
	pick string
	err  error
}

// selectBest runs the arbiter under the provider deadline. Arbiter errors,
// panics, blank picks and an arbiter still running at the deadline all fall
// back deterministically.
func (a *Aggregator) selectBest(ctx context.Context, query string, answers []answer.NormalizedAnswer) (string, bool) {
	if a.arbiter == nil {
		return Fallback(answers), true
	}

	actx, cancel := context.WithTimeout(ctx, a.coordinator.timeout)
	defer cancel()

	// Buffered so an arbiter that ignores ctx can still deliver and exit
	// after it has been abandoned.
	reply := make(chan arbiterReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				reply <- arbiterReply{err: fmt.Errorf("arbiter panicked: %v", r)}
			}
		}()
		pick, err := a.arbiter.Select(actx, query, answer.Texts(answers))
		reply <- arbiterReply{pick: pick, err: err}
	}()

	var r arbiterReply
	select {
	case r = <-reply:
	case <-actx.Done():
		a.logger.Error("arbiter abandoned, using fallback", actx.Err(), logging.Duration("limit", a.coordinator.timeout))
		return Fallback(answers), true
	}
	if r.err != nil {
		a.logger.Error("arbiter failed, using fallback", r.err)
		return Fallback(answers), true
	}
	if strings.TrimSpace(r.pick) == "" {
		a.logger.Info("arbiter returned a blank answer, using fallback")
		return Fallback(answers), true
	}
	return r.pick, false
}

// renderGraph plots the expression after the first "=". Any failure yields
// nil.
func (a *Aggregator) renderGraph(ctx context.Context, query string) (g *answer.Graph) {
	if a.renderer == nil {
		return nil
	}
	expr, ok := graph.ExtractExpression(query)
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("graph renderer panicked", fmt.Errorf("panic: %v", r), logging.String("expression", expr))
			g = nil
		}
	}()
	png, err := a.renderer.Render(ctx, expr)
	if err != nil {
		a.logger.Error("graph rendering failed", err, logging.String("expression", expr))
		return nil
	}
	if len(png) == 0 {
		return nil
	}
	return &answer.Graph{Expression: expr, PNG: png}
}
