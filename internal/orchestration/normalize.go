package orchestration

import (
	"github.com/agbru/mathsolve/internal/answer"
	"github.com/agbru/mathsolve/internal/provider"
)

// NormalizeOne maps a provider result to its labeled answer. Usable text is
// kept verbatim; everything else becomes the provider's placeholder.
func NormalizeOne(r answer.ProviderResult) answer.NormalizedAnswer {
	if r.Usable() {
		return answer.NormalizedAnswer{ProviderName: r.Name, Text: r.Text}
	}
	return answer.NormalizedAnswer{ProviderName: r.Name, Text: answer.Placeholder(r.Name)}
}

// Normalize maps every result in order. It is total: the output has the
// same length as the input and no entry has empty text.
func Normalize(results []answer.ProviderResult) []answer.NormalizedAnswer {
	out := make([]answer.NormalizedAnswer, len(results))
	for i, r := range results {
		out[i] = NormalizeOne(r)
	}
	return out
}

// Fallback returns the first answer that is not its provider's placeholder,
// or the sentinel when there is none.
func Fallback(answers []answer.NormalizedAnswer) string {
	for _, a := range answers {
		if !a.IsPlaceholder() {
			return a.Text
		}
	}
	return answer.NoSolutionSentinel
}

// Placeholders returns the fallback texts of providers, for arbiters that
// must discount them.
func Placeholders(providers []provider.Provider) answer.Placeholders {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = providerName(i, p)
	}
	return answer.NewPlaceholders(names...)
}
