// Package stdlib provides the nlisp native function registry.
package stdlib

import (
	"sort"

	"github.com/thomasrohde/nlisp/pkg/types"
)

// Fn represents a native function.
type Fn struct {
	Name    string
	Execute types.Fn
}

// Registry holds registered native functions.
type Registry struct {
	fns map[string]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]*Fn),
	}
}

// Register adds a function to the registry, replacing any previous one with
// the same name.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Name] = &fn
}

// Get retrieves a function by name.
func (r *Registry) Get(name string) *Fn {
	return r.fns[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Natives returns every registered function as a native function value,
// ordered by name.
func (r *Registry) Natives() []types.NativeFunction {
	names := r.Names()
	out := make([]types.NativeFunction, len(names))
	for i, name := range names {
		out[i] = types.NewNative(name, r.fns[name].Execute)
	}
	return out
}
