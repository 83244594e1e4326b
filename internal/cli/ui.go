package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a completion bar while providers run.
// It consumes updates until the channel is closed, then prints a one-line
// summary and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.CompletionUpdate, numProviders int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numProviders)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, numProviders, 0, 0, "", answer.Absent))
	s.Start()

	for update := range updates {
		p := agg.Update(update)
		s.UpdateSuffix(progressSuffix(p.Completed, numProviders, p.AverageProgress, p.ETA, p.Name, p.Outcome))
	}
	s.Stop()

	fmt.Fprintf(out, "%s%d/%d providers finished, %d answered.%s\n",
		ui.ColorCyan(), agg.Completed(), numProviders, agg.Answered(), ui.ColorReset())
}

func progressSuffix(done, total int, avg float64, eta time.Duration, last string, outcome answer.Outcome) string {
	suffix := fmt.Sprintf(" Querying providers %d/%d %s", done, total, format.ProgressBar(avg, ProgressBarWidth))
	if done > 0 && done < total {
		suffix += " ETA " + format.FormatETA(eta)
	}
	if last != "" {
		suffix += fmt.Sprintf(" (%s: %s)", last, outcome)
	}
	return suffix
}
