package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/mathsolve/internal/answer"
)

// CompletionUpdate is emitted exactly once per provider when it reaches a
// terminal state.
type CompletionUpdate struct {
	// ProviderIndex is the provider's position in registration order.
	ProviderIndex int
	Name          string
	Outcome       answer.Outcome
	Duration      time.Duration
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying fan-out progress.
// This interface decouples the orchestration layer from the presentation
// layer.
//
// Implementations handle the visual representation of progress (spinners,
// dashboards, etc.) while the orchestration layer focuses on coordinating
// the providers.
type ProgressReporter interface {
	// DisplayProgress consumes updates until the channel is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan CompletionUpdate, numProviders int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan CompletionUpdate, numProviders int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan CompletionUpdate, numProviders int, out io.Writer) {
	f(wg, updates, numProviders, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan CompletionUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(updates)
}

// ResultPresenter defines the interface for presenting a query result.
// It allows different output formats (CLI table, JSON, TUI) without
// modifying the orchestration logic.
type ResultPresenter interface {
	// PresentAnswers displays one row per provider.
	PresentAnswers(result answer.AggregateResult, results []answer.ProviderResult, out io.Writer)

	// PresentBestAnswer displays the selected answer and the graph status.
	PresentBestAnswer(result answer.AggregateResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles query errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
