package tui

import (
	"time"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/metrics"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/sysmon"
)

// ProviderDoneMsg reports that one provider reached a terminal state.
type ProviderDoneMsg struct {
	Update orchestration.CompletionUpdate
	// Completed is the number of providers finished so far.
	Completed  int
	Generation uint64
}

// AnswersMsg carries the raw per-provider outcomes of a query.
type AnswersMsg struct {
	Results    []answer.ProviderResult
	Generation uint64
}

// BestAnswerMsg carries the aggregate result of a query.
type BestAnswerMsg struct {
	Result     answer.AggregateResult
	Generation uint64
}

// ErrorMsg reports a query rejected before any provider ran.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// QueryDoneMsg ends a query.
type QueryDoneMsg struct {
	ExitCode   int
	Fallback   bool
	Elapsed    time.Duration
	Generation uint64
}

// queryMsg is implemented by every message produced on behalf of one query.
// The model drops those whose generation is not the current one.
type queryMsg interface {
	queryGeneration() uint64
}

func (m ProviderDoneMsg) queryGeneration() uint64 { return m.Generation }
func (m AnswersMsg) queryGeneration() uint64      { return m.Generation }
func (m BestAnswerMsg) queryGeneration() uint64   { return m.Generation }
func (m ErrorMsg) queryGeneration() uint64        { return m.Generation }
func (m QueryDoneMsg) queryGeneration() uint64    { return m.Generation }

// TickMsg drives periodic sampling.
type TickMsg time.Time

// StatsMsg carries one process and system sample.
type StatsMsg struct {
	Memory metrics.MemorySnapshot
	System sysmon.Stats
}
