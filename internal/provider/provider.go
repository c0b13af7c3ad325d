// Package provider selects among interchangeable reply-generation backends.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// Provider produces a reply from ticket context and tone. Implementations
// may call remote services; failures must surface as errors, never as a
// silently empty reply.
type Provider interface {
	Name() string
	Generate(ctx context.Context, c models.Context, tone models.Tone) (string, error)
}

// Registry maps provider names to implementations and tracks which one is
// active. Registration happens at startup; selection may change at runtime.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Provider
	order  []string
	active string
}

// NewRegistry creates a registry with def registered and active.
func NewRegistry(def Provider) *Registry {
	r := &Registry{byName: map[string]Provider{}}
	r.Register(def)
	r.active = def.Name()
	return r
}

// Register adds a provider under its own name, replacing any previous
// registration with that name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.byName[p.Name()] = p
}

// List returns the registered provider names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("provider: %w: %s", apperr.ErrUnknownProvider, name)
	}
	return p, nil
}

// Use makes the named provider active. Unregistered names fail and leave
// the selection unchanged.
func (r *Registry) Use(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("provider: %w: %s", apperr.ErrUnknownProvider, name)
	}
	r.active = name
	return nil
}

// Active returns the name of the active provider.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Generate delegates to the active provider. Errors propagate to the caller
// unmodified; the registry never falls back on its own. A caller wanting
// the local fallback catches the error and re-invokes with "rulebased".
func (r *Registry) Generate(ctx context.Context, c models.Context, tone models.Tone) (string, error) {
	r.mu.RLock()
	p := r.byName[r.active]
	r.mu.RUnlock()
	return p.Generate(ctx, c, tone)
}
