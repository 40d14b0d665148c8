// Package goevalexpr implements a small expression language: arithmetic,
// logical, and string expressions are parsed into a reusable operator
// tree and evaluated against a pluggable set of variable and function
// bindings.
//
// # Quick Start
//
//	// Simple evaluation
//	result, err := goevalexpr.Eval("1 + 2 + 3")
//
//	// Build once, evaluate many times
//	expr, err := goevalexpr.Compile("a + b")
//	result1, _ := goevalexpr.EvalExpression(expr, cfg1)
//	result2, _ := goevalexpr.EvalExpression(expr, cfg2)
//
//	// With bindings
//	cfg := configuration.NewHashMap()
//	cfg.InsertVariable("a", types.IntValue(2))
//	result, err := goevalexpr.EvalWithConfiguration("a * 3", cfg)
//
// # Expression format
//
// The language supports int, float, boolean, string, and tuple values;
// the operators + - * / % ^ == != < <= > >= && || !; parenthesized
// grouping; comma-built tuples; and function calls. && and || evaluate
// their right operand only when the left one does not already decide the
// result. Mixing int and float promotes the int operand; any other
// cross-kind combination is a type error.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/goevalexpr/pkg/parser
//   - Evaluator: github.com/sandrolain/goevalexpr/pkg/evaluator
//   - Configurations: github.com/sandrolain/goevalexpr/pkg/configuration
//   - Types: github.com/sandrolain/goevalexpr/pkg/types
package goevalexpr

import (
	"fmt"

	"github.com/sandrolain/goevalexpr/pkg/cache"
	"github.com/sandrolain/goevalexpr/pkg/configuration"
	"github.com/sandrolain/goevalexpr/pkg/evaluator"
	"github.com/sandrolain/goevalexpr/pkg/parser"
	"github.com/sandrolain/goevalexpr/pkg/types"
)

// defaultCache backs CompileCached and EvalCached.
var defaultCache = cache.New(cache.DefaultCapacity)

// Version returns the current version of goevalexpr.
func Version() string {
	return "v0.1.0-dev"
}

// Compile builds the operator tree for an expression string.
//
// The tree can be evaluated multiple times against different
// configurations without re-parsing. It is safe for concurrent use.
func Compile(source string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(source, opts...)
}

// MustCompile is like Compile but panics if the expression cannot be
// built. It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("goevalexpr: Compile(%q): %v", source, err))
	}
	return expr
}

// CompileCached is like Compile but stores the built tree in a
// process-wide LRU cache, so repeated calls with the same source skip
// the parse. Build failures are not cached.
func CompileCached(source string) (*types.Expression, error) {
	return defaultCache.GetOrCompile(source, func() (*types.Expression, error) {
		return parser.Compile(source)
	})
}

// EvalCached evaluates an expression against the given configuration,
// reusing the cached tree when the same source was evaluated before.
func EvalCached(source string, cfg types.Configuration) (types.Value, error) {
	expr, err := CompileCached(source)
	if err != nil {
		return types.EmptyValue(), err
	}
	return evaluator.Eval(expr, cfg)
}

// Eval builds and evaluates an expression without any bindings.
//
// For repeated evaluations of the same expression, use Compile with
// EvalExpression instead.
func Eval(source string) (types.Value, error) {
	return EvalWithConfiguration(source, configuration.Empty{})
}

// EvalWithConfiguration builds and evaluates an expression against the
// given configuration.
func EvalWithConfiguration(source string, cfg types.Configuration) (types.Value, error) {
	expr, err := Compile(source)
	if err != nil {
		return types.EmptyValue(), err
	}
	return evaluator.Eval(expr, cfg)
}

// EvalExpression evaluates an already-built expression against the given
// configuration.
func EvalExpression(expr *types.Expression, cfg types.Configuration) (types.Value, error) {
	return evaluator.Eval(expr, cfg)
}

// EvalString evaluates an expression and narrows the result to a string.
func EvalString(source string) (string, error) {
	return EvalStringWithConfiguration(source, configuration.Empty{})
}

// EvalInt evaluates an expression and narrows the result to an int.
func EvalInt(source string) (int64, error) {
	return EvalIntWithConfiguration(source, configuration.Empty{})
}

// EvalFloat evaluates an expression and narrows the result to a float.
func EvalFloat(source string) (float64, error) {
	return EvalFloatWithConfiguration(source, configuration.Empty{})
}

// EvalBoolean evaluates an expression and narrows the result to a boolean.
func EvalBoolean(source string) (bool, error) {
	return EvalBooleanWithConfiguration(source, configuration.Empty{})
}

// EvalTuple evaluates an expression and narrows the result to a tuple.
func EvalTuple(source string) (types.TupleType, error) {
	return EvalTupleWithConfiguration(source, configuration.Empty{})
}

// EvalStringWithConfiguration evaluates an expression against the given
// configuration and narrows the result to a string.
func EvalStringWithConfiguration(source string, cfg types.Configuration) (string, error) {
	value, err := EvalWithConfiguration(source, cfg)
	if err != nil {
		return "", err
	}
	return value.ExpectString()
}

// EvalIntWithConfiguration evaluates an expression against the given
// configuration and narrows the result to an int.
func EvalIntWithConfiguration(source string, cfg types.Configuration) (int64, error) {
	value, err := EvalWithConfiguration(source, cfg)
	if err != nil {
		return 0, err
	}
	return value.ExpectInt()
}

// EvalFloatWithConfiguration evaluates an expression against the given
// configuration and narrows the result to a float.
func EvalFloatWithConfiguration(source string, cfg types.Configuration) (float64, error) {
	value, err := EvalWithConfiguration(source, cfg)
	if err != nil {
		return 0, err
	}
	return value.ExpectFloat()
}

// EvalBooleanWithConfiguration evaluates an expression against the given
// configuration and narrows the result to a boolean.
func EvalBooleanWithConfiguration(source string, cfg types.Configuration) (bool, error) {
	value, err := EvalWithConfiguration(source, cfg)
	if err != nil {
		return false, err
	}
	return value.ExpectBoolean()
}

// EvalTupleWithConfiguration evaluates an expression against the given
// configuration and narrows the result to a tuple.
func EvalTupleWithConfiguration(source string, cfg types.Configuration) (types.TupleType, error) {
	value, err := EvalWithConfiguration(source, cfg)
	if err != nil {
		return nil, err
	}
	return value.ExpectTuple()
}
