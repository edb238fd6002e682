package routing

import (
	"fmt"
	"sync"
)

// Registry holds the known engines in registration order.
type Registry struct {
	mu        sync.RWMutex
	engines   []Engine
	byID      map[string]Engine
	defaultID string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Engine)}
}

// Register adds e. The first engine registered becomes the default.
func (r *Registry) Register(e Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID()]; ok {
		return fmt.Errorf("routing engine %q already registered", e.ID())
	}
	r.engines = append(r.engines, e)
	r.byID[e.ID()] = e
	if r.defaultID == "" {
		r.defaultID = e.ID()
	}
	return nil
}

// Get looks an engine up by id.
func (r *Registry) Get(id string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, id)
	}
	return e, nil
}

// List returns the engines in registration order.
func (r *Registry) List() []Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Engine(nil), r.engines...)
}

// SetDefault selects the engine Default returns.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, id)
	}
	r.defaultID = id
	return nil
}

// Default returns the default engine, or ErrUnknownEngine when the registry
// is empty.
func (r *Registry) Default() (Engine, error) {
	r.mu.RLock()
	id := r.defaultID
	r.mu.RUnlock()
	if id == "" {
		return nil, fmt.Errorf("%w: registry is empty", ErrUnknownEngine)
	}
	return r.Get(id)
}
