package answer

import (
	"fmt"
	"strings"
	"time"
)

// NoSolutionSentinel is returned as the best answer when every provider
// produced a placeholder and the arbiter could not synthesize anything.
const NoSolutionSentinel = "No solution found."

const (
	placeholderPrefix = "No solution from "
	placeholderSuffix = "."
)

// Outcome is the terminal state of a single provider invocation.
type Outcome int

const (
	// Absent means the provider completed but had no answer.
	Absent Outcome = iota
	// Success means the provider returned text (which may still be blank).
	Success
	// Failure means the provider returned an error, panicked or timed out.
	Failure
)

// String returns the lowercase name of the outcome, used in logs and metric labels.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "absent"
	}
}

// ProviderResult encapsulates the outcome of a single provider invocation.
// It is owned by the fan-out coordinator until normalized.
type ProviderResult struct {
	// Name is the display name of the provider (e.g., "Wolfram Alpha").
	Name string
	// Outcome is the terminal state of the invocation.
	Outcome Outcome
	// Text is the raw answer. Only meaningful when Outcome is Success.
	Text string
	// Err is the cause of a Failure. It is nil otherwise.
	Err error
	// Duration is the time between dispatch and the terminal state.
	Duration time.Duration
}

// Usable reports whether the result carries a non-blank answer.
func (r ProviderResult) Usable() bool {
	return r.Outcome == Success && strings.TrimSpace(r.Text) != ""
}

// NormalizedAnswer is the uniform, labeled record produced for every
// configured provider.
type NormalizedAnswer struct {
	ProviderName string `json:"provider"`
	Text         string `json:"text"`
}

// Graph is a rendered plot of the expression extracted from a query.
type Graph struct {
	Expression string `json:"expression"`
	PNG        []byte `json:"png"`
}

// AggregateResult is the response to a single query.
//
// Answers has exactly one entry per configured provider, in registration
// order. BestAnswer is never empty. Graph is nil when the query had no
// equation or rendering failed.
type AggregateResult struct {
	Query      string             `json:"query"`
	Answers    []NormalizedAnswer `json:"answers"`
	BestAnswer string             `json:"best_answer"`
	Graph      *Graph             `json:"graph,omitempty"`
}

// Placeholder returns the fallback text substituted when the named provider
// yields no usable answer.
func Placeholder(providerName string) string {
	return fmt.Sprintf("%s%s%s", placeholderPrefix, providerName, placeholderSuffix)
}

// IsPlaceholder reports whether the answer is its provider's fallback text.
func (a NormalizedAnswer) IsPlaceholder() bool {
	return a.Text == Placeholder(a.ProviderName)
}

// Texts returns the candidate texts of answers in order.
func Texts(answers []NormalizedAnswer) []string {
	texts := make([]string, len(answers))
	for i, a := range answers {
		texts[i] = a.Text
	}
	return texts
}

// Placeholders is the set of fallback texts of a known group of providers.
// Membership is exact: a real answer that merely reads like a placeholder
// is not a member.
type Placeholders map[string]struct{}

// NewPlaceholders returns the placeholder texts of the named providers.
func NewPlaceholders(providerNames ...string) Placeholders {
	p := make(Placeholders, len(providerNames))
	for _, name := range providerNames {
		p[Placeholder(name)] = struct{}{}
	}
	return p
}

// Has reports whether text is one of the placeholders, ignoring surrounding
// whitespace.
func (p Placeholders) Has(text string) bool {
	_, ok := p[strings.TrimSpace(text)]
	return ok
}

// FirstReal returns the first candidate that is neither blank nor a
// placeholder.
func (p Placeholders) FirstReal(candidates []string) (string, bool) {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" && !p.Has(c) {
			return c, true
		}
	}
	return "", false
}
