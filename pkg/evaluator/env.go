package evaluator

import "github.com/thomasrohde/nlisp/pkg/types"

// Env is one frame of a lexical scope chain.
// Any number of child frames may share the same parent; a frame never
// writes to its parent's bindings.
type Env struct {
	bindings map[string]types.Value
	parent   *Env
}

// NewEnv creates a new environment with an optional parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		bindings: make(map[string]types.Value),
		parent:   parent,
	}
}

// Child creates a new child scope whose parent is this environment.
func (e *Env) Child() *Env {
	return NewEnv(e)
}

// Parent returns the enclosing scope, or nil for a root environment.
func (e *Env) Parent() *Env {
	return e.parent
}

// Find returns the nearest environment, starting with e and walking outward,
// that binds name locally. It returns nil if no scope in the chain does.
func (e *Env) Find(name string) *Env {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			return cur
		}
	}
	return nil
}

// Get looks up a variable by name, traversing parent scopes.
func (e *Env) Get(name string) (types.Value, bool) {
	found := e.Find(name)
	if found == nil {
		return nil, false
	}
	return found.bindings[name], true
}

// Set binds a variable in this scope only, shadowing any outer binding.
func (e *Env) Set(name string, val types.Value) {
	e.bindings[name] = val
}

// Has checks whether a variable is defined in this scope or any parent.
func (e *Env) Has(name string) bool {
	return e.Find(name) != nil
}

// Names returns the names bound locally in this scope, in no particular order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	return names
}
