package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/ui"
)

type fakeSolver struct {
	queries []string
}

func (f *fakeSolver) Solve(_ context.Context, query string, _ orchestration.ProgressReporter, _ io.Writer) (orchestration.Report, error) {
	if strings.TrimSpace(query) == "" {
		return orchestration.Report{}, apperrors.ErrEmptyQuery
	}
	f.queries = append(f.queries, query)
	report := sampleReport()
	report.Result.Query = query
	return report, nil
}

func runREPL(t *testing.T, input string) (*fakeSolver, string) {
	t.Helper()
	ui.SetCurrentTheme(ui.NoColorTheme)
	solver := &fakeSolver{}
	r := NewREPL(solver, REPLConfig{
		Timeout:   time.Second,
		Providers: []string{"Google AI", "DeepSeek", "SymPy"},
		Arbiter:   "gemini",
	})
	var out bytes.Buffer
	r.in = strings.NewReader(input)
	r.SetOutput(&out)
	r.Start(context.Background())
	return solver, out.String()
}

func TestREPL_SolvesBareQueries(t *testing.T) {
	solver, out := runREPL(t, "solve x^2 - 4 = 0\nwhat is 2 + 2\nexit\n")
	if len(solver.queries) != 2 || solver.queries[0] != "x^2 - 4 = 0" || solver.queries[1] != "what is 2 + 2" {
		t.Errorf("queries = %q", solver.queries)
	}
	if !strings.Contains(out, "Best answer:") || !strings.Contains(out, "Goodbye!") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"help", "help\n", []string{"Available commands:"}},
		{"providers", "providers\n", []string{"1. Google AI", "3. SymPy"}},
		{"status", "status\n", []string{"Arbiter:    gemini", "Timeout:    1s", "Verbose:    off"}},
		{"verbose toggle", "verbose\nstatus\n", []string{"Verbose answers: on", "Verbose:    on"}},
		{"solve usage", "solve\n", []string{"Usage: solve <query>"}},
		{"save without graph", "save out.png\n", []string{"No graph to save."}},
		{"eof without newline", "providers", []string{"1. Google AI", "Goodbye!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := runREPL(t, tt.input)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPL_SaveGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.png")
	_, out := runREPL(t, "y = x\nsave "+path+"\nquit\n")
	if !strings.Contains(out, "Graph saved to: "+path) {
		t.Errorf("unexpected output:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) != 2048 {
		t.Errorf("graph not written: %v", err)
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	solver := &fakeSolver{}
	r := NewREPL(solver, REPLConfig{Timeout: time.Second})
	r.in = strings.NewReader("x + 1\n")
	r.SetOutput(io.Discard)
	r.Start(ctx)
	if len(solver.queries) != 0 {
		t.Error("no query should run after cancellation")
	}
}
