package orchestration

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/mathsolve/internal/errors"
)

// AnalyzeResults presents a report and returns the exit code of the run.
//
// The run succeeds when at least one provider produced a usable answer,
// even if the best answer came from the fallback.
func AnalyzeResults(report Report, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	usable := 0
	for _, r := range report.Results {
		if r.Usable() {
			usable++
		}
	}

	if !opts.Quiet {
		presenter.PresentAnswers(report.Result, report.Results, out)
	}

	if usable == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No provider produced an answer.\n")
		}
		presenter.PresentBestAnswer(report.Result, opts, out)
		return apperrors.ExitErrorNoAnswer
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. %d of %d providers answered.\n", usable, len(report.Results))
	}
	presenter.PresentBestAnswer(report.Result, opts, out)
	return apperrors.ExitSuccess
}
