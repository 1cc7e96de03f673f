package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cost-guardian/dashboard/pkg/services/config"
)

// Factory builds a backend from the loaded configuration.
type Factory[T any] func(ctx context.Context, cfg *config.Config) (T, error)

// Registry maps backend names (store.backend, publisher.backend) to factories.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		factories: make(map[string]Factory[T]),
	}
}

func (r *Registry[T]) Register(name string, factory Factory[T]) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", r.kind)
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%s %q is already registered", r.kind, name)
	}

	r.factories[name] = factory
	return nil
}

func (r *Registry[T]) Create(ctx context.Context, name string, cfg *config.Config) (T, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		var zero T
		return zero, fmt.Errorf("%s %q is not registered", r.kind, name)
	}
	return factory(ctx, cfg)
}

// List returns the registered names in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
