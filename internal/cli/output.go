// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayReport], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem or to a writer
//     in a machine-readable form.
//     Examples: [WriteReportToFile], [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path of the text report (empty for no file output).
	// A rendered graph is saved next to it with a .png extension.
	OutputFile string
	// Quiet prints only the best answer.
	Quiet bool
	// Verbose prints every provider's full answer.
	Verbose bool
	// JSON prints the aggregate result as a JSON document.
	JSON bool
}

// GraphPath returns the path of the PNG written alongside a report file.
func GraphPath(outputFile string) string {
	return strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".png"
}

// WriteReportToFile writes a text report of the query to cfg.OutputFile and,
// when a graph was rendered, the PNG to GraphPath(cfg.OutputFile).
func WriteReportToFile(report orchestration.Report, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	result := report.Result
	fmt.Fprintf(file, "# Math Query Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Query: %s\n", result.Query)
	fmt.Fprintf(file, "# Duration: %s\n", report.Elapsed)
	fmt.Fprintf(file, "# Fallback: %t\n", report.Fallback)
	fmt.Fprintf(file, "\n")
	for _, a := range result.Answers {
		fmt.Fprintf(file, "[%s]\n%s\n\n", a.ProviderName, strings.TrimSpace(a.Text))
	}
	fmt.Fprintf(file, "Best answer:\n%s\n", result.BestAnswer)

	if result.Graph != nil {
		if err := os.WriteFile(GraphPath(cfg.OutputFile), result.Graph.PNG, 0o644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
	}
	return nil
}

// WriteJSON encodes the aggregate result of report to out.
func WriteJSON(out io.Writer, report orchestration.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(answer.NewResponse(report.Result))
}

// FormatQuietResult formats a result for quiet mode output.
func FormatQuietResult(result answer.AggregateResult) string {
	return strings.TrimSpace(result.BestAnswer)
}

// DisplayReport presents report according to cfg, saves it to a file when
// requested and returns the exit code of the run.
func DisplayReport(out io.Writer, report orchestration.Report, cfg OutputConfig) (int, error) {
	var code int
	if cfg.JSON {
		if err := WriteJSON(out, report); err != nil {
			return 0, err
		}
		code = orchestration.AnalyzeResults(report, orchestration.PresentationOptions{Quiet: true}, silentPresenter{}, io.Discard)
	} else {
		opts := orchestration.PresentationOptions{Verbose: cfg.Verbose, Quiet: cfg.Quiet}
		code = orchestration.AnalyzeResults(report, opts, CLIResultPresenter{Verbose: cfg.Verbose}, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteReportToFile(report, cfg); err != nil {
			return code, err
		}
		if !cfg.Quiet && !cfg.JSON {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return code, nil
}

// silentPresenter lets JSON mode reuse AnalyzeResults for the exit code.
type silentPresenter struct{}

func (silentPresenter) PresentAnswers(answer.AggregateResult, []answer.ProviderResult, io.Writer) {}
func (silentPresenter) PresentBestAnswer(answer.AggregateResult, orchestration.PresentationOptions, io.Writer) {
}
