// Package smoke runs minimal load-and-exercise checks against sample modules.
//
// Modules are registered explicitly with a Registry. A module that is not
// registered can still be exercised through an external import command.
package smoke

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/introspection"
	"github.com/aretw0/tutorcheck/pkg/core"
)

// LoadFunc loads a module and performs its most basic operation.
type LoadFunc func(ctx context.Context) error

// Registry maps module names to their loaders.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]LoadFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]LoadFunc)}
}

// Register adds or replaces the loader for name.
func (r *Registry) Register(name string, fn LoadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[name] = fn
}

// Lookup returns the loader for name.
func (r *Registry) Lookup(name string) (LoadFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.loaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotRegistered, name)
	}
	return fn, nil
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegistryState exposes the registered modules for observability.
type RegistryState struct {
	Modules []string `json:"modules"`
}

// State implements introspection.Introspectable.
func (r *Registry) State() any {
	return RegistryState{Modules: r.Names()}
}

// ComponentType implements introspection.Component.
func (r *Registry) ComponentType() string {
	return "registry"
}

var _ introspection.Introspectable = (*Registry)(nil)
var _ introspection.Component = (*Registry)(nil)
