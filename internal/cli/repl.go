// Package cli provides the command-line presentation layer: progress
// display, result presentation, the interactive REPL and shell completion.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/agbru/mathsolve/internal/format"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

// Solver answers a query. *orchestration.Aggregator satisfies it.
type Solver interface {
	Solve(ctx context.Context, query string, reporter orchestration.ProgressReporter, out io.Writer) (orchestration.Report, error)
}

// REPLConfig configures a REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each query.
	Timeout time.Duration
	// Verbose shows every provider's full answer.
	Verbose bool
	// Providers lists the names of the providers queried, for display.
	Providers []string
	// Arbiter is the name of the best-answer strategy, for display.
	Arbiter string
}

// REPL represents an interactive query session.
type REPL struct {
	config REPLConfig
	solver Solver
	last   *orchestration.Report
	in     io.Reader
	out    io.Writer
}

// NewREPL returns a session reading stdin and writing stdout.
func NewREPL(solver Solver, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		solver: solver,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetOutput replaces stdout.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until the user exits, the input ends or ctx is
// canceled.
func (r *REPL) Start(ctx context.Context) {
	fmt.Fprintf(r.out, "\n%s∑ mathsolve%s interactive mode\n\n", ui.ColorBold(), ui.ColorReset())
	r.printHelp()
	fmt.Fprintln(r.out)

	lines := bufio.NewScanner(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"math> "+ui.ColorReset())
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
				return
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if line := strings.TrimSpace(lines.Text()); line != "" && !r.dispatch(ctx, line) {
			return
		}
	}
}

// replCommand is one REPL verb. run returns false to end the session.
type replCommand struct {
	names []string
	usage string
	help  string
	run   func(ctx context.Context, arg string) bool
}

func (r *REPL) commands() []replCommand {
	keepGoing := func(f func(string)) func(context.Context, string) bool {
		return func(_ context.Context, arg string) bool { f(arg); return true }
	}
	return []replCommand{
		{[]string{"solve", "s"}, "solve <query>", "Solve a query that starts with a command word", func(ctx context.Context, q string) bool {
			if q == "" {
				fmt.Fprintf(r.out, "%sUsage: solve <query>%s\n", ui.ColorRed(), ui.ColorReset())
				return true
			}
			r.solve(ctx, q)
			return true
		}},
		{[]string{"providers", "ls"}, "providers", "List the providers queried", keepGoing(func(string) { r.cmdProviders() })},
		{[]string{"verbose", "v"}, "verbose", "Toggle full answers", keepGoing(func(string) {
			r.config.Verbose = !r.config.Verbose
			fmt.Fprintf(r.out, "Verbose answers: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verbose), ui.ColorReset())
		})},
		{[]string{"save"}, "save <file>", "Save the last graph as PNG", keepGoing(r.cmdSave)},
		{[]string{"status", "st"}, "status", "Show the session settings", keepGoing(func(string) { r.cmdStatus() })},
		{[]string{"help", "h", "?"}, "help", "Show this help", keepGoing(func(string) { r.printHelp() })},
		{[]string{"exit", "quit", "q"}, "exit", "Leave the session", func(context.Context, string) bool {
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
			return false
		}},
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s%-15s%s %s\n", ui.ColorYellow(), "<query>", ui.ColorReset(), "Solve a math problem (e.g. solve x^2 - 4 = 0)")
	for _, c := range r.commands() {
		fmt.Fprintf(r.out, "  %s%-15s%s %s\n", ui.ColorYellow(), c.usage, ui.ColorReset(), c.help)
	}
}

// dispatch runs the command named by the first word of line, or solves the
// whole line when that word is not a command.
func (r *REPL) dispatch(ctx context.Context, line string) bool {
	word, arg, _ := strings.Cut(line, " ")
	word = strings.ToLower(word)
	for _, c := range r.commands() {
		if slices.Contains(c.names, word) {
			return c.run(ctx, strings.TrimSpace(arg))
		}
	}
	r.solve(ctx, line)
	return true
}

// solve runs one query through the solver and presents the result.
func (r *REPL) solve(ctx context.Context, query string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	report, err := r.solver.Solve(ctx, query, CLIProgressReporter{}, r.out)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.last = &report

	opts := orchestration.PresentationOptions{Verbose: r.config.Verbose}
	orchestration.AnalyzeResults(report, opts, CLIResultPresenter{Verbose: r.config.Verbose}, r.out)
	fmt.Fprintf(r.out, "  Time: %s%s%s\n\n", ui.ColorGreen(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
}

func (r *REPL) cmdProviders() {
	fmt.Fprintf(r.out, "\n%sProviders:%s\n", ui.ColorBold(), ui.ColorReset())
	for i, name := range r.config.Providers {
		fmt.Fprintf(r.out, "  %d. %s%s%s\n", i+1, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdSave(path string) {
	switch {
	case path == "":
		fmt.Fprintf(r.out, "%sUsage: save <file>%s\n", ui.ColorRed(), ui.ColorReset())
	case r.last == nil || r.last.Result.Graph == nil:
		fmt.Fprintf(r.out, "%sNo graph to save.%s\n", ui.ColorYellow(), ui.ColorReset())
	default:
		if err := os.WriteFile(path, r.last.Result.Graph.PNG, 0o644); err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		fmt.Fprintf(r.out, "Graph saved to: %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
	}
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Providers:  %s%s%s\n", ui.ColorCyan(), strings.Join(r.config.Providers, ", "), ui.ColorReset())
	fmt.Fprintf(r.out, "  Arbiter:    %s%s%s\n", ui.ColorCyan(), r.config.Arbiter, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Verbose:    %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verbose), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
