package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/orchestration"
)

// programRef lets query goroutines reach the running program. The model is
// copied on every Update, so it holds a pointer to this instead of the
// program itself.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram attaches p.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg, or drops it when no program is attached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter turns completion updates into ProviderDoneMsg.
// It drains the completion channel and forwards each update, tagged with
// the query generation, as a bubbletea message.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards completion updates until the channel closes.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.CompletionUpdate, numProviders int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numProviders)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	for update := range updates {
		ap := agg.Update(update)
		t.ref.Send(ProviderDoneMsg{
			Update:     update,
			Completed:  ap.Completed,
			Generation: t.generation,
		})
	}
}

// TUIResultPresenter hands results to the dashboard as messages.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentAnswers sends the per-provider outcomes to the TUI.
func (t *TUIResultPresenter) PresentAnswers(_ answer.AggregateResult, results []answer.ProviderResult, _ io.Writer) {
	t.ref.Send(AnswersMsg{Results: results, Generation: t.generation})
}

// PresentBestAnswer sends the aggregate result to the TUI.
func (t *TUIResultPresenter) PresentBestAnswer(result answer.AggregateResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(BestAnswerMsg{Result: result, Generation: t.generation})
}

// FormatDuration delegates to the shared formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError shows err in the answers panel and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.HandleQueryError(err, duration, io.Discard)
}
