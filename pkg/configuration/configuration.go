// Package configuration provides the reference Configuration
// implementations used to bind variables and functions during
// expression evaluation.
//
// The package ships four variants:
//   - Empty: rejects every lookup, for expressions without identifiers
//   - HashMap: a mutable mapping of names to values and functions
//   - Layered: an ordered chain of configurations searched front to back
//   - LoadYAML: a HashMap populated from a YAML mapping
//
// Callers may supply further implementations of the
// [types.Configuration] contract without the core depending on any
// concrete storage.
package configuration

import (
	"slices"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// Empty is a Configuration without any bindings.
// Both resolution paths always fail, which makes it the right choice for
// expressions known to contain no identifiers.
type Empty struct{}

// ResolveVariable implements types.Configuration. It never finds a binding.
func (Empty) ResolveVariable(string) (types.Value, bool) {
	return types.EmptyValue(), false
}

// CallFunction implements types.Configuration. It always fails with an
// undefined-function error.
func (Empty) CallFunction(name string, _ types.TupleType) (types.Value, error) {
	return types.EmptyValue(), types.NewUndefinedFunction(name)
}

// HashMap is a Configuration backed by two in-memory mappings, one for
// variables and one for functions. The namespaces are separate: a name
// may be bound to both a variable and a function at once.
//
// Insertion happens outside the evaluation path; lookups during
// evaluation are read-only. A HashMap being written while another
// goroutine evaluates against it requires the caller's own
// synchronization.
type HashMap struct {
	variables map[string]types.Value
	functions map[string]types.Function
}

// NewHashMap creates an empty mutable configuration.
func NewHashMap() *HashMap {
	return &HashMap{
		variables: make(map[string]types.Value),
		functions: make(map[string]types.Function),
	}
}

// InsertVariable binds name to value, replacing any previous binding.
func (c *HashMap) InsertVariable(name string, value types.Value) {
	c.variables[name] = value
}

// InsertFunction binds name to an invocable, replacing any previous binding.
func (c *HashMap) InsertFunction(name string, fn types.Function) {
	c.functions[name] = fn
}

// SetVariable implements types.MutableConfiguration.
func (c *HashMap) SetVariable(name string, value types.Value) {
	c.InsertVariable(name, value)
}

// VariableNames returns the bound variable names in sorted order.
func (c *HashMap) VariableNames() []string {
	names := make([]string, 0, len(c.variables))
	for name := range c.variables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FunctionNames returns the bound function names in sorted order.
func (c *HashMap) FunctionNames() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveVariable implements types.Configuration.
func (c *HashMap) ResolveVariable(name string) (types.Value, bool) {
	value, ok := c.variables[name]
	return value, ok
}

// CallFunction implements types.Configuration.
func (c *HashMap) CallFunction(name string, args types.TupleType) (types.Value, error) {
	fn, ok := c.functions[name]
	if !ok {
		return types.EmptyValue(), types.NewUndefinedFunction(name)
	}
	return fn(args)
}

// Layered is a Configuration that searches an ordered list of
// configurations front to back. The first layer that resolves a name
// wins; for functions, a layer that fails with an undefined-function
// error passes the call on to the next, while any other error stops the
// search.
type Layered struct {
	layers []types.Configuration
}

// NewLayered creates a layered configuration from front to back.
func NewLayered(layers ...types.Configuration) *Layered {
	return &Layered{layers: layers}
}

// Push appends a layer searched after all existing ones.
func (c *Layered) Push(layer types.Configuration) {
	c.layers = append(c.layers, layer)
}

// ResolveVariable implements types.Configuration.
func (c *Layered) ResolveVariable(name string) (types.Value, bool) {
	for _, layer := range c.layers {
		if value, ok := layer.ResolveVariable(name); ok {
			return value, true
		}
	}
	return types.EmptyValue(), false
}

// CallFunction implements types.Configuration.
func (c *Layered) CallFunction(name string, args types.TupleType) (types.Value, error) {
	for _, layer := range c.layers {
		result, err := layer.CallFunction(name, args)
		if err == nil {
			return result, nil
		}
		if !types.IsCode(err, types.ErrUndefinedFunction) {
			return types.EmptyValue(), err
		}
	}
	return types.EmptyValue(), types.NewUndefinedFunction(name)
}
