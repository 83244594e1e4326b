package arbiter

import (
	"context"
	"fmt"
	"strings"

	"github.com/agbru/mathsolve/internal/answer"
)

// GeminiJudge asks a language model to choose among the candidates.
type GeminiJudge struct {
	gen          Generator
	placeholders answer.Placeholders
}

// NewGeminiJudge creates a judge backed by gen. placeholders are the
// fallback texts that do not count as real candidates.
func NewGeminiJudge(gen Generator, placeholders answer.Placeholders) *GeminiJudge {
	return &GeminiJudge{gen: gen, placeholders: placeholders}
}

// Select returns the model's pick. It skips the model call entirely when no
// candidate carries a real answer.
func (j *GeminiJudge) Select(ctx context.Context, query string, candidates []string) (string, error) {
	if _, ok := j.placeholders.FirstReal(candidates); !ok {
		return "", ErrNoCandidates
	}
	out, err := j.gen.Generate(ctx, BuildPrompt(query, candidates))
	if err != nil {
		return "", fmt.Errorf("gemini judge: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// BuildPrompt renders the judging prompt.
func BuildPrompt(query string, candidates []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n\n", query)
	sb.WriteString("Several sources answered the question. Evaluate the answers and pick the one that is most correct and complete.\n")
	sb.WriteString("Answers of the form \"No solution from <source>.\" mean that source had nothing; never pick them.\n\n")
	for i, c := range candidates {
		fmt.Fprintf(&sb, "Answer %d:\n%s\n\n", i+1, c)
	}
	sb.WriteString("Reply with the best answer only, restated clearly, without commentary.")
	return sb.String()
}
