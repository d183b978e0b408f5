// Package registry maps analyzer type names to factories. The registry is
// an explicit object owned by the composition root and passed to whatever
// needs to construct analyzers; there is no package-level global.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"siteaudit-backend/internal/analysis"
)

// Analyzer is the capability contract a registered factory must produce.
type Analyzer interface {
	Type() string
	Analyze(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error)
}

// Factory builds an analyzer instance for a configuration.
type Factory func(cfg analysis.Config) (Analyzer, error)

// Registry is a concurrency-safe name-to-factory mapping.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a factory under name. It fails on an empty name, a nil
// factory, or a name that is already taken.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("analyzer name is required")
	}
	if factory == nil {
		return fmt.Errorf("analyzer factory for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("analyzer %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates the analyzer registered under name.
func (r *Registry) Create(name string, cfg analysis.Config) (Analyzer, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown analyzer %q", name)
	}
	return factory(cfg)
}

// List returns the registered analyzer names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every registration. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = map[string]Factory{}
}
