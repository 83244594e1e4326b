package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/mathsolve/internal/cli"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/orchestration"
)

// runQuery answers the configured query once and prints the report.
func (a *Application) runQuery(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	start := time.Now()
	p, err := a.buildPipeline(ctx, a.logger(), nil)
	if err != nil {
		return apperrors.HandleQueryError(err, time.Since(start), a.ErrWriter)
	}
	defer p.close()

	// Skip the banner in quiet and JSON modes
	silent := a.Config.Quiet || a.Config.JSON
	if !silent {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(p.providers, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if silent {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	report, err := p.aggregator.Solve(ctx, a.Config.Query, progressReporter, progressOut)
	if err != nil {
		return apperrors.HandleQueryError(err, time.Since(start), a.ErrWriter)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// The report still carries placeholders; say why before printing it.
		fmt.Fprintf(a.ErrWriter, "Warning: query interrupted: %v\n", ctxErr)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		JSON:       a.Config.JSON,
	}
	code, err := cli.DisplayReport(out, report, outputCfg)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return code
}
