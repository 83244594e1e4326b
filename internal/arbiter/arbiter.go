//go:generate mockgen -source=arbiter.go -destination=mocks/mock_arbiter.go -package=mocks

package arbiter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agbru/mathsolve/internal/answer"
)

// Strategy names accepted by New.
const (
	GeminiName   = "gemini"
	MajorityName = "majority"
	FirstName    = "first"
)

// ErrNoCandidates is returned when every candidate is a placeholder.
var ErrNoCandidates = errors.New("no usable candidates")

// Arbiter picks the best answer. Candidates are in provider registration
// order and include placeholders.
type Arbiter interface {
	Select(ctx context.Context, query string, candidates []string) (string, error)
}

// Func adapts a function to Arbiter.
type Func func(ctx context.Context, query string, candidates []string) (string, error)

// Select calls f.
func (f Func) Select(ctx context.Context, query string, candidates []string) (string, error) {
	return f(ctx, query, candidates)
}

// Generator produces free text from a prompt. The Google AI provider
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New returns the strategy registered under name. gen is only used by the
// gemini strategy. placeholders are the fallback texts of the providers
// whose answers will be judged.
func New(name string, gen Generator, placeholders answer.Placeholders) (Arbiter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case GeminiName:
		if gen == nil {
			return nil, fmt.Errorf("arbiter %q requires a generator", name)
		}
		return NewGeminiJudge(gen, placeholders), nil
	case MajorityName:
		return MajorityVote{Placeholders: placeholders}, nil
	case FirstName:
		return FirstAvailable{Placeholders: placeholders}, nil
	default:
		return nil, fmt.Errorf("unknown arbiter: %q", name)
	}
}
