package arbiter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/arbiter"
	"github.com/agbru/mathsolve/internal/arbiter/mocks"
)

var placeholders = answer.NewPlaceholders("A", "B", "Google AI", "DeepSeek", "SymPy", "Wolfram Alpha", "Stack Exchange")

const lookAlike = "No solution from the real numbers; x = ±2i."

var scenario = []string{
	"x = 2 or x = -2",
	"No solution from DeepSeek.",
	"x=2,-2",
	"No solution from Wolfram Alpha.",
	"No solution from Stack Exchange.",
}

func TestMajorityVote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		candidates []string
		want       string
		wantErr    error
	}{
		{"clear majority", []string{"x = 2", "x=3", "X = 3", "No solution from A."}, "x=3", nil},
		{"tie goes to earliest", []string{"No solution from A.", "4", "5"}, "4", nil},
		{"whitespace and case ignored", []string{"A B", "ab", "c"}, "A B", nil},
		{"only placeholders", []string{"No solution from A.", "No solution from B."}, "", arbiter.ErrNoCandidates},
		{"empty", nil, "", arbiter.ErrNoCandidates},
		{"look-alike counts", []string{"No solution from A.", lookAlike, "No solution from B."}, lookAlike, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := arbiter.MajorityVote{Placeholders: placeholders}.Select(context.Background(), "q", tt.candidates)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstAvailable(t *testing.T) {
	t.Parallel()
	first := arbiter.FirstAvailable{Placeholders: placeholders}
	got, err := first.Select(context.Background(), "q", scenario)
	if err != nil || got != "x = 2 or x = -2" {
		t.Errorf("Select = (%q, %v)", got, err)
	}
	_, err = first.Select(context.Background(), "q", []string{"No solution from SymPy.", "  "})
	if !errors.Is(err, arbiter.ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
	got, err = first.Select(context.Background(), "q", []string{"No solution from DeepSeek.", lookAlike})
	if err != nil || got != lookAlike {
		t.Errorf("Select = (%q, %v), want the look-alike answer", got, err)
	}
}

func TestArbiters_NilPlaceholders(t *testing.T) {
	t.Parallel()
	candidates := []string{" ", "No solution from A."}
	got, err := arbiter.FirstAvailable{}.Select(context.Background(), "q", candidates)
	if err != nil || got != "No solution from A." {
		t.Errorf("FirstAvailable = (%q, %v)", got, err)
	}
	got, err = arbiter.MajorityVote{}.Select(context.Background(), "q", candidates)
	if err != nil || got != "No solution from A." {
		t.Errorf("MajorityVote = (%q, %v)", got, err)
	}
}

func TestGeminiJudge_Select(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)

	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, prompt string) (string, error) {
		for _, want := range []string{"solve x^2 - 4 = 0", "Answer 1:\nx = 2 or x = -2", "Answer 5:", "No solution from"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
		return "  x = 2 or x = -2\n", nil
	})

	got, err := arbiter.NewGeminiJudge(gen, placeholders).Select(context.Background(), "solve x^2 - 4 = 0", scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x = 2 or x = -2" {
		t.Errorf("Select = %q", got)
	}
}

func TestGeminiJudge_Errors(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	judge := arbiter.NewGeminiJudge(gen, placeholders)

	// No real candidates: the generator must not be called.
	if _, err := judge.Select(context.Background(), "q", []string{"No solution from A."}); !errors.Is(err, arbiter.ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}

	boom := errors.New("quota exceeded")
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", boom)
	if _, err := judge.Select(context.Background(), "q", scenario); !errors.Is(err, boom) {
		t.Errorf("expected wrapped generator error, got %v", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)

	for _, name := range []string{"gemini", "Majority", " first "} {
		if _, err := arbiter.New(name, gen, placeholders); err != nil {
			t.Errorf("New(%q) error: %v", name, err)
		}
	}
	if _, err := arbiter.New("gemini", nil, placeholders); err == nil {
		t.Error("gemini without generator should fail")
	}
	if _, err := arbiter.New("dice", gen, placeholders); err == nil {
		t.Error("unknown arbiter should fail")
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()
	if got := arbiter.Canonical(" X = 2,\t-2\n"); got != "x=2,-2" {
		t.Errorf("Canonical = %q", got)
	}
}
