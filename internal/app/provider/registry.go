package provider

import (
	"fmt"
	"sync"
)

// Registry manages the registered provider adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
	default_ string
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register registers a new provider adapter
func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("adapter cannot be nil")
	}
	name := adapter.Name()
	if name == "" {
		return fmt.Errorf("adapter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("adapter '%s' already registered", name)
	}

	r.adapters[name] = adapter

	// First registration becomes the default
	if r.default_ == "" {
		r.default_ = name
	}

	return nil
}

// Get retrieves an adapter by provider tag
func (r *Registry) Get(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[name]
	if !exists {
		return nil, fmt.Errorf("provider '%s' not found", name)
	}

	return adapter, nil
}

// List returns all registered provider tags
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}

// SetDefault sets the default provider
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; !exists {
		return fmt.Errorf("provider '%s' not found", name)
	}
	r.default_ = name
	return nil
}

// Default returns the default adapter
func (r *Registry) Default() (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.default_ == "" {
		return nil, fmt.Errorf("no default provider set")
	}
	return r.adapters[r.default_], nil
}
