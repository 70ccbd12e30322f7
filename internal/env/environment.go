// Package env implements the lexically scoped Environment and the Arena
// that owns every Environment created during interpretation (spec §3.3,
// §9 "Environment cycles").
//
// Closures hold their captured Environment, and an Environment can hold
// closures as Values — a reference cycle no naive reference-counting
// scheme can reclaim. The Arena breaks this the same way the teacher's
// interpreter breaks it for its own closures: the interpreter owns an
// Arena of all Environments, closures hold a non-owning pointer into
// that Arena, and the Arena (and everything in it) is freed en masse
// when the interpreter is dropped.
package env

import "github.com/iziteam/izi/internal/value"

// Environment is a scope: a name->Value mapping plus a non-owning
// pointer to its parent (nil for the global scope).
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// Arena owns every Environment ever created during one interpreter run.
// Environments vended by an Arena remain valid for the Arena's entire
// lifetime; there is no way to free one early.
type Arena struct {
	envs []*Environment
}

// NewArena creates an empty Arena.
func NewArena() *Arena { return &Arena{} }

// NewRoot creates a parentless (global) Environment owned by a.
func (a *Arena) NewRoot() *Environment {
	e := &Environment{vars: make(map[string]value.Value)}
	a.envs = append(a.envs, e)
	return e
}

// NewChild creates an Environment enclosed by parent, owned by a.
func (a *Arena) NewChild(parent *Environment) *Environment {
	e := &Environment{vars: make(map[string]value.Value), parent: parent}
	a.envs = append(a.envs, e)
	return e
}

// Size returns the number of Environments the Arena has ever vended.
func (a *Arena) Size() int { return len(a.envs) }

// Define binds name in this scope, shadowing any outer binding of the
// same name (duplicate-in-same-scope is an analyzer diagnostic, not a
// runtime error — spec §4.3).
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// Get looks up name, climbing the parent chain (spec §4.5 Identifier).
func (e *Environment) Get(name string) (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign stores v into the nearest enclosing binding of name, returning
// false if no such binding exists (spec §4.5 Assignment).
func (e *Environment) Assign(name string, v value.Value) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return true
		}
	}
	return false
}

// Parent returns the non-owning parent pointer (nil at the global scope).
func (e *Environment) Parent() *Environment { return e.parent }

// Names returns the names defined directly in this scope (not parents),
// used by the REPL's `:vars` inspection.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.vars))
	for k := range e.vars {
		out = append(out, k)
	}
	return out
}
