package configuration

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// Builtins returns a HashMap configuration pre-loaded with the standard
// function set: min, max, abs, len, str, int, float, floor, ceil, round.
//
// The set is purely additive convenience; the core pipeline never
// depends on it. Layer it under caller bindings with NewLayered to
// combine both.
func Builtins() *HashMap {
	cfg := NewHashMap()
	cfg.InsertFunction("min", builtinMin)
	cfg.InsertFunction("max", builtinMax)
	cfg.InsertFunction("abs", builtinAbs)
	cfg.InsertFunction("len", builtinLen)
	cfg.InsertFunction("str", builtinStr)
	cfg.InsertFunction("int", builtinInt)
	cfg.InsertFunction("float", builtinFloat)
	cfg.InsertFunction("floor", roundingFn("floor", math.Floor))
	cfg.InsertFunction("ceil", roundingFn("ceil", math.Ceil))
	cfg.InsertFunction("round", roundingFn("round", math.Round))
	return cfg
}

func wrongArgCount(name, want string, got int) error {
	return types.NewError(types.ErrArgumentCountMismatch,
		fmt.Sprintf("%s expects %s, got %d arguments", name, want, got), -1)
}

func builtinMin(args types.TupleType) (types.Value, error) {
	return extremum("min", args, -1)
}

func builtinMax(args types.TupleType) (types.Value, error) {
	return extremum("max", args, 1)
}

// extremum returns the argument that orders last in the given direction.
func extremum(name string, args types.TupleType, direction int) (types.Value, error) {
	if len(args) == 0 {
		return types.EmptyValue(), wrongArgCount(name, "at least 1 argument", 0)
	}
	best := args[0]
	for _, arg := range args[1:] {
		c, err := types.Order(arg, best)
		if err != nil {
			return types.EmptyValue(), err
		}
		if c*direction > 0 {
			best = arg
		}
	}
	return best, nil
}

func builtinAbs(args types.TupleType) (types.Value, error) {
	if len(args) != 1 {
		return types.EmptyValue(), wrongArgCount("abs", "1 argument", len(args))
	}
	switch args[0].Kind() {
	case types.KindInt:
		i, _ := args[0].ExpectInt()
		if i == math.MinInt64 {
			return types.EmptyValue(), types.NewError(types.ErrIntegerOverflow,
				fmt.Sprintf("integer overflow in abs(%d)", i), -1)
		}
		if i < 0 {
			i = -i
		}
		return types.IntValue(i), nil
	case types.KindFloat:
		f, _ := args[0].ExpectFloat()
		return types.FloatValue(math.Abs(f)), nil
	default:
		return types.EmptyValue(), types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("abs expects a number, got %s", args[0].Kind()), -1)
	}
}

func builtinLen(args types.TupleType) (types.Value, error) {
	if len(args) != 1 {
		return types.EmptyValue(), wrongArgCount("len", "1 argument", len(args))
	}
	switch args[0].Kind() {
	case types.KindString:
		s, _ := args[0].ExpectString()
		return types.IntValue(int64(utf8.RuneCountInString(s))), nil
	case types.KindTuple:
		t, _ := args[0].ExpectTuple()
		return types.IntValue(int64(len(t))), nil
	default:
		return types.EmptyValue(), types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("len expects a string or tuple, got %s", args[0].Kind()), -1)
	}
}

func builtinStr(args types.TupleType) (types.Value, error) {
	if len(args) != 1 {
		return types.EmptyValue(), wrongArgCount("str", "1 argument", len(args))
	}
	if args[0].Kind() == types.KindString {
		return args[0], nil
	}
	return types.StringValue(args[0].String()), nil
}

func builtinInt(args types.TupleType) (types.Value, error) {
	if len(args) != 1 {
		return types.EmptyValue(), wrongArgCount("int", "1 argument", len(args))
	}
	switch args[0].Kind() {
	case types.KindInt:
		return args[0], nil
	case types.KindFloat:
		f, _ := args[0].ExpectFloat()
		if f < math.MinInt64 || f >= math.MaxInt64 || math.IsNaN(f) {
			return types.EmptyValue(), types.NewError(types.ErrIntegerOverflow,
				fmt.Sprintf("float %g out of int range", f), -1)
		}
		return types.IntValue(int64(f)), nil
	case types.KindString:
		s, _ := args[0].ExpectString()
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return types.EmptyValue(), types.NewError(types.ErrExpectedKind,
				fmt.Sprintf("cannot convert %q to int", s), -1)
		}
		return types.IntValue(i), nil
	default:
		return types.EmptyValue(), types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("int expects a number or string, got %s", args[0].Kind()), -1)
	}
}

func builtinFloat(args types.TupleType) (types.Value, error) {
	if len(args) != 1 {
		return types.EmptyValue(), wrongArgCount("float", "1 argument", len(args))
	}
	if f, ok := args[0].AsFloat(); ok {
		return types.FloatValue(f), nil
	}
	if args[0].Kind() == types.KindString {
		s, _ := args[0].ExpectString()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.EmptyValue(), types.NewError(types.ErrExpectedKind,
				fmt.Sprintf("cannot convert %q to float", s), -1)
		}
		return types.FloatValue(f), nil
	}
	return types.EmptyValue(), types.NewError(types.ErrTypeMismatch,
		fmt.Sprintf("float expects a number or string, got %s", args[0].Kind()), -1)
}

// roundingFn adapts one of the math rounding primitives to a Function.
// Ints pass through unchanged; floats stay floats.
func roundingFn(name string, round func(float64) float64) types.Function {
	return func(args types.TupleType) (types.Value, error) {
		if len(args) != 1 {
			return types.EmptyValue(), wrongArgCount(name, "1 argument", len(args))
		}
		switch args[0].Kind() {
		case types.KindInt:
			return args[0], nil
		case types.KindFloat:
			f, _ := args[0].ExpectFloat()
			return types.FloatValue(round(f)), nil
		default:
			return types.EmptyValue(), types.NewError(types.ErrTypeMismatch,
				fmt.Sprintf("%s expects a number, got %s", name, args[0].Kind()), -1)
		}
	}
}
