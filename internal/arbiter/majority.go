package arbiter

import (
	"context"
	"strings"
	"unicode"

	"github.com/agbru/mathsolve/internal/answer"
)

// MajorityVote picks the answer whose canonical form appears most often
// among real candidates. Ties go to the earliest candidate.
type MajorityVote struct {
	// Placeholders are discounted. A nil set treats every non-blank
	// candidate as real.
	Placeholders answer.Placeholders
}

// Select never calls out and ignores ctx.
func (m MajorityVote) Select(_ context.Context, _ string, candidates []string) (string, error) {
	counts := make(map[string]int)
	first := make(map[string]int)
	for i, c := range candidates {
		if strings.TrimSpace(c) == "" || m.Placeholders.Has(c) {
			continue
		}
		k := Canonical(c)
		if _, seen := first[k]; !seen {
			first[k] = i
		}
		counts[k]++
	}
	if len(counts) == 0 {
		return "", ErrNoCandidates
	}

	bestCount, bestIdx := 0, len(candidates)
	for k, n := range counts {
		if n > bestCount || (n == bestCount && first[k] < bestIdx) {
			bestCount, bestIdx = n, first[k]
		}
	}
	return candidates[bestIdx], nil
}

// Canonical lowercases s and drops all whitespace.
func Canonical(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// FirstAvailable returns the first real candidate.
type FirstAvailable struct {
	Placeholders answer.Placeholders
}

// Select never calls out and ignores ctx.
func (f FirstAvailable) Select(_ context.Context, _ string, candidates []string) (string, error) {
	if c, ok := f.Placeholders.FirstReal(candidates); ok {
		return c, nil
	}
	return "", ErrNoCandidates
}
