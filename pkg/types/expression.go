// Package types defines the core type system for goevalexpr.
//
// This package contains type definitions for:
//   - Value: the dynamically typed runtime value and its coercion rules
//   - Node: operator-tree nodes with arity fixed by construction
//   - Expression: a built operator tree bundled with its source text
//   - Configuration: the variable/function resolution contract
//   - Error types: structured errors with codes
package types

// Expression represents a built operator tree.
//
// An Expression can be evaluated multiple times against different
// configurations by passing it to the evaluator. It is safe for
// concurrent use by multiple goroutines.
type Expression struct {
	root   *Node
	source string
}

// NewExpression creates a new Expression from an operator tree root.
func NewExpression(root *Node, source string) *Expression {
	return &Expression{
		root:   root,
		source: source,
	}
}

// Root returns the root node of the operator tree.
func (e *Expression) Root() *Node {
	return e.root
}

// Source returns the original source code of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
