// Package evaluator implements the operator-tree evaluation engine.
//
// The evaluator receives a built operator tree from the parser and walks
// it against a Configuration, producing a Value or a structured error.
// Evaluation is deterministic, side-effect free, and safe to repeat any
// number of times against different configurations without re-parsing.
//
// # Example
//
//	expr, _ := parser.Compile("a + b")
//	e := evaluator.New()
//	result, err := e.Eval(expr, cfg)
//
// # Concurrency
//
// A built tree is immutable and may be evaluated concurrently from
// multiple goroutines, provided the configuration passed to each call is
// itself safe for concurrent reads.
package evaluator

import (
	"log/slog"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// Evaluator evaluates operator trees against configurations.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// MaxDepth limits recursion depth. Exceeding it fails the
	// evaluation with a distinct "expression too deep" error rather
	// than exhausting the call stack.
	MaxDepth int
	// Debug enables debug logging of every node visit.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// EvalOption configures an Evaluator.
type EvalOption func(*EvalOptions)

// WithMaxDepth sets the maximum evaluation recursion depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = debug
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		MaxDepth: 10000,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Evaluator{
		opts:   options,
		logger: options.Logger,
	}
}

// defaultEvaluator backs the package-level Eval functions.
var defaultEvaluator = New()

// Eval evaluates a built expression against a configuration using a
// default Evaluator.
func Eval(expr *types.Expression, cfg types.Configuration) (types.Value, error) {
	return defaultEvaluator.Eval(expr, cfg)
}

// EvalNode evaluates a single operator-tree node against a configuration
// using a default Evaluator.
func EvalNode(node *types.Node, cfg types.Configuration) (types.Value, error) {
	return defaultEvaluator.EvalNode(node, cfg)
}

// Eval evaluates a built expression against a configuration.
func (e *Evaluator) Eval(expr *types.Expression, cfg types.Configuration) (types.Value, error) {
	return e.evalNode(expr.Root(), cfg, 0)
}

// EvalNode evaluates an operator-tree node against a configuration.
func (e *Evaluator) EvalNode(node *types.Node, cfg types.Configuration) (types.Value, error) {
	return e.evalNode(node, cfg, 0)
}

func (e *Evaluator) evalNode(node *types.Node, cfg types.Configuration, depth int) (types.Value, error) {
	if depth > e.opts.MaxDepth {
		return types.EmptyValue(), types.NewError(types.ErrStackOverflow,
			"expression too deep", node.Position())
	}

	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"type", node.Type(),
			"position", node.Position(),
			"depth", depth)
	}

	switch node.Type() {
	case types.NodeLiteral:
		return node.Literal(), nil

	case types.NodeVariable:
		value, ok := cfg.ResolveVariable(node.Name())
		if !ok {
			err := types.NewUndefinedVariable(node.Name())
			err.Position = node.Position()
			return types.EmptyValue(), err
		}
		return value, nil

	case types.NodeCall:
		return e.evalCall(node, cfg, depth)

	case types.NodeUnary:
		child, err := e.evalNode(node.LHS(), cfg, depth+1)
		if err != nil {
			return types.EmptyValue(), err
		}
		return applyUnary(node.Op(), child, node.Position())

	case types.NodeBinary:
		return e.evalBinary(node, cfg, depth)

	case types.NodeTuple:
		children := node.Children()
		elements := make(types.TupleType, 0, len(children))
		for _, child := range children {
			element, err := e.evalNode(child, cfg, depth+1)
			if err != nil {
				return types.EmptyValue(), err
			}
			elements = append(elements, element)
		}
		return types.TupleValue(elements), nil

	case types.NodeAssign:
		return e.evalAssign(node, cfg, depth)

	default:
		return types.EmptyValue(), types.NewError(types.ErrSyntaxError,
			"unknown node type "+string(node.Type()), node.Position())
	}
}

// evalCall evaluates the arguments left-to-right, packs them into a
// tuple, and hands them to the configuration's function binding.
func (e *Evaluator) evalCall(node *types.Node, cfg types.Configuration, depth int) (types.Value, error) {
	children := node.Children()
	args := make(types.TupleType, 0, len(children))
	for _, child := range children {
		arg, err := e.evalNode(child, cfg, depth+1)
		if err != nil {
			return types.EmptyValue(), err
		}
		args = append(args, arg)
	}

	result, err := cfg.CallFunction(node.Name(), args)
	if err != nil {
		if te, ok := err.(*types.Error); ok && te.Position < 0 {
			te.Position = node.Position()
		}
		return types.EmptyValue(), err
	}
	return result, nil
}

// evalBinary evaluates a binary operator node. The logical operators
// short-circuit: when the left operand decides the result, the right
// operand is never evaluated and errors inside it cannot surface.
func (e *Evaluator) evalBinary(node *types.Node, cfg types.Configuration, depth int) (types.Value, error) {
	op := node.Op()

	if op == types.OpAnd || op == types.OpOr {
		left, err := e.evalNode(node.LHS(), cfg, depth+1)
		if err != nil {
			return types.EmptyValue(), err
		}
		lb, err := left.ExpectBoolean()
		if err != nil {
			return types.EmptyValue(), positionError(err, node.Position())
		}
		if (op == types.OpAnd && !lb) || (op == types.OpOr && lb) {
			return types.BooleanValue(lb), nil
		}
		right, err := e.evalNode(node.RHS(), cfg, depth+1)
		if err != nil {
			return types.EmptyValue(), err
		}
		rb, err := right.ExpectBoolean()
		if err != nil {
			return types.EmptyValue(), positionError(err, node.Position())
		}
		return types.BooleanValue(rb), nil
	}

	left, err := e.evalNode(node.LHS(), cfg, depth+1)
	if err != nil {
		return types.EmptyValue(), err
	}
	right, err := e.evalNode(node.RHS(), cfg, depth+1)
	if err != nil {
		return types.EmptyValue(), err
	}
	return applyBinary(op, left, right, node.Position())
}

// evalAssign evaluates the right-hand side and stores it through the
// configuration's own setter. Read-only configurations reject it.
func (e *Evaluator) evalAssign(node *types.Node, cfg types.Configuration, depth int) (types.Value, error) {
	mutable, ok := cfg.(types.MutableConfiguration)
	if !ok {
		return types.EmptyValue(), types.NewError(types.ErrReadOnlyConfiguration,
			"assignment requires a mutable configuration", node.Position())
	}

	value, err := e.evalNode(node.RHS(), cfg, depth+1)
	if err != nil {
		return types.EmptyValue(), err
	}
	mutable.SetVariable(node.Name(), value)
	return types.EmptyValue(), nil
}

// positionError anchors a position-less structured error to a node.
func positionError(err error, position int) error {
	if te, ok := err.(*types.Error); ok && te.Position < 0 {
		te.Position = position
	}
	return err
}
