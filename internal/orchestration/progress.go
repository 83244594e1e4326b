package orchestration

import (
	"time"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/format"
)

// ProgressAggregator tracks how many providers have finished. It wraps
// format.ProgressWithETA so the CLI and TUI share the same ETA logic.
type ProgressAggregator struct {
	state     *format.ProgressWithETA
	completed int
	usable    int
}

// NewProgressAggregator creates a new aggregator for the given number of
// providers. Returns nil if numProviders <= 0.
func NewProgressAggregator(numProviders int) *ProgressAggregator {
	if numProviders <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numProviders)}
}

// AggregatedProgress holds the result of processing a single update.
type AggregatedProgress struct {
	// ProviderIndex is the index of the provider that finished.
	ProviderIndex int
	Name          string
	Outcome       answer.Outcome
	// Completed is the number of providers that have finished so far.
	Completed int
	// AverageProgress is the completed fraction of providers.
	AverageProgress float64
	// ETA is the estimated time until the last provider finishes.
	ETA time.Duration
}

// Update processes a single completion update and returns the aggregated
// result.
func (a *ProgressAggregator) Update(update CompletionUpdate) AggregatedProgress {
	a.completed++
	if update.Outcome == answer.Success {
		a.usable++
	}
	avg, eta := a.state.UpdateWithETA(update.ProviderIndex, 1.0)
	return AggregatedProgress{
		ProviderIndex:   update.ProviderIndex,
		Name:            update.Name,
		Outcome:         update.Outcome,
		Completed:       a.completed,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current completed fraction without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Completed returns the number of providers that have finished.
func (a *ProgressAggregator) Completed() int {
	return a.completed
}

// Answered returns the number of providers that finished with Success.
func (a *ProgressAggregator) Answered() int {
	return a.usable
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(updates <-chan CompletionUpdate) {
	for range updates {
	}
}
