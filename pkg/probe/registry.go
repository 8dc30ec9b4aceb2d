package probe

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a Probe from a raw configuration map.
// Each probe type registers a Factory with the Registry.
type Factory func(config map[string]any) (Probe, error)

// Registry holds registered probe types, their factories, and their
// metric descriptors. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	factories   map[string]Factory
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:   make(map[string]Factory),
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a probe type factory and descriptor under the given name.
// Returns an error if the name is already registered.
func (r *Registry) Register(name string, factory Factory, desc Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("probe type %q is already registered", name)
	}
	r.factories[name] = factory
	r.descriptors[name] = desc
	return nil
}

// Create instantiates a Probe of the given type using the provided config.
// Returns an error if the type is not registered or the factory fails.
func (r *Registry) Create(name string, config map[string]any) (Probe, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown probe type %q", name)
	}
	return factory(config)
}

// Describe returns the Descriptor registered for the given probe type.
func (r *Registry) Describe(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.descriptors[name]
	if !exists {
		return Descriptor{}, fmt.Errorf("unknown probe type %q", name)
	}
	return desc, nil
}

// Types returns the names of all registered probe types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
