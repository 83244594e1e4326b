package provider

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// Factory exposes the providers known to the application.
type Factory interface {
	// List returns provider names in registration order.
	List() []string
	// Get returns the provider registered under name (case-insensitive).
	Get(name string) (Provider, error)
	// Select returns the named providers in registration order. An empty
	// selection returns every provider.
	Select(names []string) ([]Provider, error)
}

// Registry is an ordered, concurrency-safe Factory.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	index     map[string]int
}

// NewRegistry creates a registry holding providers in the given order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, p := range providers {
		// Duplicate names in a static list are a programming error.
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// key folds case and drops separators so "Google AI", "google-ai" and
// "googleai" name the same provider.
func key(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(name))
}

// Slug returns the command-line form of a provider name ("Google AI" ->
// "google-ai").
func Slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// Register appends p. Names must be unique.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(p.Name())
	if _, exists := r.index[k]; exists {
		return fmt.Errorf("provider %q already registered", p.Name())
	}
	r.index[k] = len(r.providers)
	r.providers = append(r.providers, p)
	return nil
}

// List returns provider names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[key(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %q", name)
	}
	return r.providers[i], nil
}

// Select returns the named providers in registration order regardless of
// the order of names.
func (r *Registry) Select(names []string) ([]Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(names) == 0 {
		out := make([]Provider, len(r.providers))
		copy(out, r.providers)
		return out, nil
	}
	wanted := make([]bool, len(r.providers))
	for _, n := range names {
		i, ok := r.index[key(n)]
		if !ok {
			return nil, fmt.Errorf("unknown provider: %q", n)
		}
		wanted[i] = true
	}
	out := make([]Provider, 0, len(names))
	for i, p := range r.providers {
		if wanted[i] {
			out = append(out, p)
		}
	}
	return out, nil
}
