package evaluator

import (
	"fmt"
	"math"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// applyUnary applies a prefix operator to its evaluated operand.
func applyUnary(op types.Operator, v types.Value, pos int) (types.Value, error) {
	switch op {
	case types.OpNeg:
		switch v.Kind() {
		case types.KindInt:
			i, _ := v.ExpectInt()
			if i == math.MinInt64 {
				return types.EmptyValue(), types.NewError(types.ErrIntegerOverflow,
					fmt.Sprintf("integer overflow negating %d", i), pos)
			}
			return types.IntValue(-i), nil
		case types.KindFloat:
			f, _ := v.ExpectFloat()
			return types.FloatValue(-f), nil
		}
		return types.EmptyValue(), numberMismatch(op, v, pos)

	case types.OpPos:
		if v.IsNumber() {
			return v, nil
		}
		return types.EmptyValue(), numberMismatch(op, v, pos)

	case types.OpNot:
		b, err := v.ExpectBoolean()
		if err != nil {
			return types.EmptyValue(), mismatch(op, types.KindBoolean, v, pos)
		}
		return types.BooleanValue(!b), nil

	default:
		return types.EmptyValue(), types.NewError(types.ErrSyntaxError,
			fmt.Sprintf("unknown unary operator %q", op), pos)
	}
}

// applyBinary applies a binary operator to its evaluated operands.
// The logical operators never reach this function; they short-circuit in
// the evaluator before both sides exist.
func applyBinary(op types.Operator, l, r types.Value, pos int) (types.Value, error) {
	switch op {
	case types.OpAdd:
		if l.Kind() == types.KindString && r.Kind() == types.KindString {
			ls, _ := l.ExpectString()
			rs, _ := r.ExpectString()
			return types.StringValue(ls + rs), nil
		}
		if l.Kind() == types.KindString {
			return types.EmptyValue(), mismatch(op, types.KindString, r, pos)
		}
		fallthrough
	case types.OpSub, types.OpMul, types.OpDiv, types.OpMod, types.OpPow:
		return applyArithmetic(op, l, r, pos)

	case types.OpEq, types.OpNe:
		eq, err := types.Equal(l, r)
		if err != nil {
			return types.EmptyValue(), positionError(err, pos)
		}
		return types.BooleanValue(eq == (op == types.OpEq)), nil

	case types.OpLt, types.OpLe, types.OpGt, types.OpGe:
		c, err := types.Order(l, r)
		if err != nil {
			return types.EmptyValue(), positionError(err, pos)
		}
		switch op {
		case types.OpLt:
			return types.BooleanValue(c < 0), nil
		case types.OpLe:
			return types.BooleanValue(c <= 0), nil
		case types.OpGt:
			return types.BooleanValue(c > 0), nil
		default:
			return types.BooleanValue(c >= 0), nil
		}

	default:
		return types.EmptyValue(), types.NewError(types.ErrSyntaxError,
			fmt.Sprintf("unknown binary operator %q", op), pos)
	}
}

// applyArithmetic applies a numeric operator under the promotion rule:
// two ints stay int, any float promotes both sides to float.
func applyArithmetic(op types.Operator, l, r types.Value, pos int) (types.Value, error) {
	if !l.IsNumber() {
		return types.EmptyValue(), numberMismatch(op, l, pos)
	}
	if !r.IsNumber() {
		// Mismatches name the left kind as the expected one, so
		// 1 + "a" reports int vs string.
		return types.EmptyValue(), mismatch(op, l.Kind(), r, pos)
	}

	if l.Kind() == types.KindInt && r.Kind() == types.KindInt {
		li, _ := l.ExpectInt()
		ri, _ := r.ExpectInt()
		return applyIntArithmetic(op, li, ri, pos)
	}

	lf, _ := l.AsFloat()
	rf, _ := r.AsFloat()
	switch op {
	case types.OpAdd:
		return types.FloatValue(lf + rf), nil
	case types.OpSub:
		return types.FloatValue(lf - rf), nil
	case types.OpMul:
		return types.FloatValue(lf * rf), nil
	case types.OpDiv:
		return types.FloatValue(lf / rf), nil
	case types.OpMod:
		return types.FloatValue(math.Mod(lf, rf)), nil
	default:
		return types.FloatValue(math.Pow(lf, rf)), nil
	}
}

// applyIntArithmetic applies a numeric operator to two ints.
// Overflow, division by zero, and modulo by zero are errors, never
// silent wraparound or infinities.
func applyIntArithmetic(op types.Operator, a, b int64, pos int) (types.Value, error) {
	switch op {
	case types.OpAdd:
		c := a + b
		if (b > 0 && c < a) || (b < 0 && c > a) {
			return types.EmptyValue(), overflow(op, a, b, pos)
		}
		return types.IntValue(c), nil

	case types.OpSub:
		c := a - b
		if (b < 0 && c < a) || (b > 0 && c > a) {
			return types.EmptyValue(), overflow(op, a, b, pos)
		}
		return types.IntValue(c), nil

	case types.OpMul:
		if a == 0 || b == 0 {
			return types.IntValue(0), nil
		}
		c := a * b
		if c/b != a || (a == math.MinInt64 && b == -1) {
			return types.EmptyValue(), overflow(op, a, b, pos)
		}
		return types.IntValue(c), nil

	case types.OpDiv:
		if b == 0 {
			return types.EmptyValue(), types.NewError(types.ErrDivisionByZero,
				"division by zero", pos)
		}
		if a == math.MinInt64 && b == -1 {
			return types.EmptyValue(), overflow(op, a, b, pos)
		}
		return types.IntValue(a / b), nil

	case types.OpMod:
		if b == 0 {
			return types.EmptyValue(), types.NewError(types.ErrDivisionByZero,
				"modulo by zero", pos)
		}
		return types.IntValue(a % b), nil

	default: // OpPow
		if b < 0 {
			return types.EmptyValue(), types.NewError(types.ErrNegativeExponent,
				fmt.Sprintf("negative exponent %d in integer power", b), pos)
		}
		result := int64(1)
		base := a
		for i := int64(0); i < b; i++ {
			v, err := applyIntArithmetic(types.OpMul, result, base, pos)
			if err != nil {
				return types.EmptyValue(), overflow(op, a, b, pos)
			}
			result, _ = v.ExpectInt()
		}
		return types.IntValue(result), nil
	}
}

func overflow(op types.Operator, a, b int64, pos int) error {
	return types.NewError(types.ErrIntegerOverflow,
		fmt.Sprintf("integer overflow in %d %s %d", a, op, b), pos)
}

func mismatch(op types.Operator, expected types.Kind, actual types.Value, pos int) error {
	err := types.NewTypeMismatch(string(op), expected, actual)
	err.Position = pos
	return err
}

func numberMismatch(op types.Operator, v types.Value, pos int) error {
	return types.NewError(types.ErrTypeMismatch,
		fmt.Sprintf("operator %q expects a number, got %s", op, v.Kind()), pos)
}
