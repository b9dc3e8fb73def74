package provider

import (
	"fmt"
	"sync"

	"github.com/medley-sh/medley/internal/errors"
)

// Registry holds the set of known providers. Providers are registered
// explicitly at startup; there is no discovery magic. Iteration order is
// registration order, which keeps output deterministic across runs.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	order       []string
	defaultName string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider under its own name. Registering a duplicate
// name is a programming error and panics.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.providers[name]; exists {
		panic(fmt.Sprintf("provider %q registered twice", name))
	}
	r.providers[name] = p
	r.order = append(r.order, name)
}

// Get returns the provider registered under name.
// Returns ErrProviderNotFound if no such provider exists.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errors.ErrProviderNotFound, name)
	}
	return p, nil
}

// All returns every registered provider in registration order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

// Available returns the registered providers whose package manager is
// installed on this system, in registration order.
func (r *Registry) Available() []Provider {
	var out []Provider
	for _, p := range r.All() {
		if p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out
}

// SetDefault overrides the default provider name. An empty name resets
// to the automatic choice (first available provider).
func (r *Registry) SetDefault(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultName = name
}

// DefaultName returns the configured default provider name, or the
// first available provider when none is configured. Returns
// ErrNoProviders if nothing is available.
func (r *Registry) DefaultName() (string, error) {
	r.mu.RLock()
	configured := r.defaultName
	r.mu.RUnlock()

	if configured != "" {
		return configured, nil
	}

	avail := r.Available()
	if len(avail) == 0 {
		return "", errors.ErrNoProviders
	}
	return avail[0].Name(), nil
}
