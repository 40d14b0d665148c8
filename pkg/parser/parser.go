// Package parser implements the expression tokenizer and operator-tree
// builder.
//
// The builder uses hand-written precedence climbing (Pratt parsing) over a
// fixed operator table. Parsing produces an immutable operator tree whose
// node arities are fixed by construction; the tree can then be evaluated
// any number of times without re-parsing.
//
// # Example
//
//	expr, err := parser.Compile("a + b * 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root := expr.Root()
package parser

import (
	"github.com/sandrolain/goevalexpr/pkg/types"
)

// Parse parses an expression string and returns the built Expression.
//
// The function tokenizes the input, builds the operator tree, and rejects
// trailing input. If parsing fails, it returns a structured error with
// position information.
func Parse(source string) (*types.Expression, error) {
	return Compile(source)
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Expression, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	root, err := Build(tokens, opts...)
	if err != nil {
		return nil, err
	}
	return types.NewExpression(root, source), nil
}

// Build builds the operator tree for an already-tokenized expression.
func Build(tokens []Token, opts ...CompileOption) (*types.Node, error) {
	options := CompileOptions{
		MaxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&options)
	}

	b := &builder{tokens: tokens, opts: options}
	return b.build()
}

// DefaultMaxDepth is the default nesting-depth limit of the builder.
const DefaultMaxDepth = 200

// CompileOption configures tree building.
type CompileOption func(*CompileOptions)

// CompileOptions holds builder configuration.
type CompileOptions struct {
	// MaxDepth limits expression nesting depth to prevent stack
	// exhaustion on adversarial input.
	MaxDepth int
}

// WithMaxDepth sets the maximum nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
