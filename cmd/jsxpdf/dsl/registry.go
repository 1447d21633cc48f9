package dsl

import (
	"fmt"
	"sort"
)

// Registry holds named component definitions available for node expansion.
// Components are registered once before building, then looked up by name
// during linking.
type Registry struct {
	components map[string]ComponentDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]ComponentDef),
	}
}

// Register adds a component definition to the registry.
// Returns ErrComponentExists if the name is taken, including by an intrinsic
// kind.
func (r *Registry) Register(name string, def ComponentDef) error {
	if name == "" {
		return fmt.Errorf("%w: component name must not be empty", ErrInvalidNode)
	}
	if _, ok := intrinsic(name); ok {
		return fmt.Errorf("%w: %s is an intrinsic kind", ErrComponentExists, name)
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("%w: %s", ErrComponentExists, name)
	}
	r.components[name] = def
	return nil
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (ComponentDef, bool) {
	def, ok := r.components[name]
	return def, ok
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
