package runtime

import (
	"sort"

	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/value"
)

// Environment is one lexical scope. Scopes form a chain through their
// parent up to the global scope, which has none.
type Environment struct {
	values map[string]value.Value
	parent *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]value.Value),
		parent: parent,
	}
}

// Parent exposes the enclosing scope (nil for the global scope).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define binds name in this scope only, replacing any earlier binding of
// the same name here.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks name up in this scope and then outward through its parents.
func (e *Environment) Get(name lexer.Token) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}

	return nil, newUndefinedVariableError(name)
}

// Assign rebinds name in the nearest scope that already holds it. It never
// creates a binding.
func (e *Environment) Assign(name lexer.Token, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}

	return newUndefinedVariableError(name)
}

// Keys returns the names bound directly in this scope, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
