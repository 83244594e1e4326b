package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It shows a spinner and a completion bar while providers run.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner until every provider has finished.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.CompletionUpdate, numProviders int, out io.Writer) {
	DisplayProgress(wg, updates, numProviders, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct {
	// Verbose prints every provider's full answer below the summary table.
	Verbose bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentAnswers displays the provider summary table. Manual padding keeps
// columns aligned despite ANSI color codes.
func (p CLIResultPresenter) PresentAnswers(result answer.AggregateResult, results []answer.ProviderResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Provider Summary ---\n")

	maxNameLen := len("Provider")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(res.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sProvider%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Provider")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-utf8.RuneCountInString(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			statusLabel(res))
	}

	if p.Verbose {
		fmt.Fprintf(out, "\n--- Answers ---\n")
		for _, a := range result.Answers {
			color := ui.ColorGreen()
			if a.IsPlaceholder() {
				color = ui.ColorCyan()
			}
			fmt.Fprintf(out, "%s%s%s:\n  %s%s%s\n", ui.ColorBold(), a.ProviderName, ui.ColorReset(),
				color, indent(a.Text, "  "), ui.ColorReset())
		}
	}
}

// PresentBestAnswer displays the selected answer and whether a graph was
// produced. Quiet mode prints the answer alone.
func (CLIResultPresenter) PresentBestAnswer(result answer.AggregateResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		fmt.Fprintln(out, FormatQuietResult(result))
		return
	}
	fmt.Fprintf(out, "\n%sBest answer:%s\n  %s%s%s\n", ui.ColorBold(), ui.ColorReset(),
		ui.ColorGreen(), indent(result.BestAnswer, "  "), ui.ColorReset())
	if result.Graph != nil {
		fmt.Fprintf(out, "Graph: %sy = %s%s (%s)\n", ui.ColorMagenta(), result.Graph.Expression, ui.ColorReset(),
			format.FormatBytes(uint64(len(result.Graph.PNG))))
	}
}

// statusLabel renders the outcome of one provider invocation.
func statusLabel(res answer.ProviderResult) string {
	switch {
	case res.Outcome == answer.Failure:
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
	case res.Usable():
		return fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
	default:
		return fmt.Sprintf("%s➖ No answer%s", ui.ColorYellow(), ui.ColorReset())
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

func indent(text, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", "\n"+prefix)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles query errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleQueryError(err, duration, out)
}
