package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime kind of a Value.
type Kind uint8

// Value kinds. The set is closed: every Value holds exactly one of these.
const (
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindBoolean
	KindString
	KindTuple
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	default:
		return "(unknown)"
	}
}

// TupleType is the backing sequence of a tuple Value.
type TupleType = []Value

// Value is the dynamically typed runtime value of an expression.
//
// A Value is immutable once constructed. Equality and ordering are defined
// only within compatible kinds; mixing int and float promotes the int
// operand to float, every other cross-kind comparison is a type error.
type Value struct {
	kind  Kind
	num   int64
	real  float64
	str   string
	tuple []Value
}

// EmptyValue returns the unit value.
func EmptyValue() Value {
	return Value{kind: KindEmpty}
}

// IntValue returns a Value holding a 64-bit signed integer.
func IntValue(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// FloatValue returns a Value holding a 64-bit float.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, real: f}
}

// BooleanValue returns a Value holding a boolean.
func BooleanValue(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.num = 1
	}
	return v
}

// StringValue returns a Value holding a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// TupleValue returns a Value holding an ordered sequence of Values.
func TupleValue(elements TupleType) Value {
	return Value{kind: KindTuple, tuple: elements}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber reports whether the value is an int or a float.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// ExpectInt returns the int payload, or an ErrExpectedKind error.
func (v Value) ExpectInt() (int64, error) {
	if v.kind != KindInt {
		return 0, NewExpectedKind(KindInt, v)
	}
	return v.num, nil
}

// ExpectFloat returns the float payload, or an ErrExpectedKind error.
// An int value is not implicitly promoted here; use AsFloat for that.
func (v Value) ExpectFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, NewExpectedKind(KindFloat, v)
	}
	return v.real, nil
}

// ExpectBoolean returns the boolean payload, or an ErrExpectedKind error.
func (v Value) ExpectBoolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, NewExpectedKind(KindBoolean, v)
	}
	return v.num != 0, nil
}

// ExpectString returns the string payload, or an ErrExpectedKind error.
func (v Value) ExpectString() (string, error) {
	if v.kind != KindString {
		return "", NewExpectedKind(KindString, v)
	}
	return v.str, nil
}

// ExpectTuple returns the tuple payload, or an ErrExpectedKind error.
func (v Value) ExpectTuple() (TupleType, error) {
	if v.kind != KindTuple {
		return nil, NewExpectedKind(KindTuple, v)
	}
	return v.tuple, nil
}

// AsFloat returns the numeric payload promoted to float64.
// It reports false for non-numeric values.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindFloat:
		return v.real, true
	default:
		return 0, false
	}
}

// Equal compares two values for equality under the promotion rules.
//
// Int and float compare numerically, tuples compare element-wise and are
// unequal when their lengths differ. Any other cross-kind combination is
// a type error naming both kinds.
func Equal(a, b Value) (bool, error) {
	if a.IsNumber() && b.IsNumber() {
		if a.kind == KindInt && b.kind == KindInt {
			return a.num == b.num, nil
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf, nil
	}
	if a.kind != b.kind {
		return false, NewError(ErrTypeMismatch,
			fmt.Sprintf("cannot compare %s with %s", a.kind, b.kind), -1)
	}
	switch a.kind {
	case KindEmpty:
		return true, nil
	case KindBoolean:
		return a.num == b.num, nil
	case KindString:
		return a.str == b.str, nil
	case KindTuple:
		if len(a.tuple) != len(b.tuple) {
			return false, nil
		}
		for i := range a.tuple {
			eq, err := Equal(a.tuple[i], b.tuple[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, NewError(ErrTypeMismatch,
			fmt.Sprintf("cannot compare %s with %s", a.kind, b.kind), -1)
	}
}

// Order compares two values, returning a negative, zero, or positive int
// when a sorts before, equal to, or after b.
//
// Int and float order numerically, strings by code point, booleans with
// false before true, tuples element-wise. Ordering tuples of unequal
// length is a type error, unlike equality.
func Order(a, b Value) (int, error) {
	if a.IsNumber() && b.IsNumber() {
		if a.kind == KindInt && b.kind == KindInt {
			switch {
			case a.num < b.num:
				return -1, nil
			case a.num > b.num:
				return 1, nil
			}
			return 0, nil
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		}
		return 0, nil
	}
	if a.kind != b.kind {
		return 0, NewError(ErrTypeMismatch,
			fmt.Sprintf("cannot order %s against %s", a.kind, b.kind), -1)
	}
	switch a.kind {
	case KindBoolean:
		return int(a.num - b.num), nil
	case KindString:
		return strings.Compare(a.str, b.str), nil
	case KindTuple:
		if len(a.tuple) != len(b.tuple) {
			return 0, NewError(ErrTupleLength,
				fmt.Sprintf("cannot order tuples of length %d and %d",
					len(a.tuple), len(b.tuple)), -1)
		}
		for i := range a.tuple {
			c, err := Order(a.tuple[i], b.tuple[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return 0, nil
	default:
		return 0, NewError(ErrTypeMismatch,
			fmt.Sprintf("cannot order %s against %s", a.kind, b.kind), -1)
	}
}

// String returns a source-like representation of the value.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "()"
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.num != 0)
	case KindString:
		return strconv.Quote(v.str)
	case KindTuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, e := range v.tuple {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return "(unknown)"
	}
}
