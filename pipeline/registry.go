package pipeline

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry maps filter names to filters.
type Registry struct {
	filters map[string]Filter
}

// NewRegistry returns a registry holding filters.
func NewRegistry(filters ...Filter) (*Registry, error) {
	r := &Registry{filters: make(map[string]Filter)}
	for _, f := range filters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds f. Names must be unique.
func (r *Registry) Register(f Filter) error {
	if _, ok := r.filters[f.Name()]; ok {
		return fmt.Errorf("filter %q already registered", f.Name())
	}
	r.filters[f.Name()] = f
	return nil
}

// Lookup returns the named filter.
func (r *Registry) Lookup(name string) (Filter, bool) {
	f, ok := r.filters[name]
	return f, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := maps.Keys(r.filters)
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry holding the built-in filters.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(builtins()...)
	if err != nil {
		panic(err)
	}
	return r
}
