package types_test

import (
	"testing"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

func TestKindString(t *testing.T) {
	kinds := map[types.Kind]string{
		types.KindEmpty:   "empty",
		types.KindInt:     "int",
		types.KindFloat:   "float",
		types.KindBoolean: "boolean",
		types.KindString:  "string",
		types.KindTuple:   "tuple",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestExpect(t *testing.T) {
	t.Run("matching kind", func(t *testing.T) {
		if i, err := types.IntValue(42).ExpectInt(); err != nil || i != 42 {
			t.Errorf("ExpectInt = %d, %v", i, err)
		}
		if f, err := types.FloatValue(2.5).ExpectFloat(); err != nil || f != 2.5 {
			t.Errorf("ExpectFloat = %g, %v", f, err)
		}
		if b, err := types.BooleanValue(true).ExpectBoolean(); err != nil || !b {
			t.Errorf("ExpectBoolean = %t, %v", b, err)
		}
		if s, err := types.StringValue("x").ExpectString(); err != nil || s != "x" {
			t.Errorf("ExpectString = %q, %v", s, err)
		}
		tuple := types.TupleValue(types.TupleType{types.IntValue(1)})
		if elems, err := tuple.ExpectTuple(); err != nil || len(elems) != 1 {
			t.Errorf("ExpectTuple = %v, %v", elems, err)
		}
	})

	t.Run("kind mismatch names both kinds", func(t *testing.T) {
		_, err := types.IntValue(1).ExpectString()
		if !types.IsCode(err, types.ErrExpectedKind) {
			t.Fatalf("error = %v, want code %s", err, types.ErrExpectedKind)
		}
		want := "expected string, got int"
		if got := err.(*types.Error).Message; got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("int is not implicitly a float", func(t *testing.T) {
		if _, err := types.IntValue(1).ExpectFloat(); err == nil {
			t.Error("ExpectFloat on int succeeded, want error")
		}
	})
}

func TestEqual(t *testing.T) {
	tuple := func(vs ...types.Value) types.Value { return types.TupleValue(vs) }

	tests := []struct {
		name    string
		a, b    types.Value
		want    bool
		wantErr bool
	}{
		{"int int", types.IntValue(2), types.IntValue(2), true, false},
		{"int float promotes", types.IntValue(2), types.FloatValue(2.0), true, false},
		{"float int promotes", types.FloatValue(2.5), types.IntValue(2), false, false},
		{"string string", types.StringValue("a"), types.StringValue("a"), true, false},
		{"boolean boolean", types.BooleanValue(true), types.BooleanValue(false), false, false},
		{"empty empty", types.EmptyValue(), types.EmptyValue(), true, false},
		{"equal tuples", tuple(types.IntValue(1), types.IntValue(2)),
			tuple(types.IntValue(1), types.IntValue(2)), true, false},
		{"unequal length tuples are unequal, not an error",
			tuple(types.IntValue(1), types.IntValue(2)),
			tuple(types.IntValue(1), types.IntValue(2), types.IntValue(3)), false, false},
		{"cross kind is an error", types.IntValue(1), types.StringValue("1"), false, true},
		{"boolean int is an error", types.BooleanValue(true), types.IntValue(1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.Equal(tt.a, tt.b)
			if tt.wantErr {
				if !types.IsCode(err, types.ErrTypeMismatch) {
					t.Fatalf("Equal error = %v, want code %s", err, types.ErrTypeMismatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("Equal error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	tuple := func(vs ...types.Value) types.Value { return types.TupleValue(vs) }

	tests := []struct {
		name    string
		a, b    types.Value
		want    int // sign of the expected result
		errCode types.ErrorCode
	}{
		{"int int", types.IntValue(1), types.IntValue(2), -1, ""},
		{"int float promotes", types.IntValue(3), types.FloatValue(2.5), 1, ""},
		{"string by code point", types.StringValue("abc"), types.StringValue("abd"), -1, ""},
		{"false before true", types.BooleanValue(false), types.BooleanValue(true), -1, ""},
		{"tuple element-wise", tuple(types.IntValue(1), types.IntValue(2)),
			tuple(types.IntValue(1), types.IntValue(3)), -1, ""},
		{"equal tuples", tuple(types.IntValue(1)), tuple(types.IntValue(1)), 0, ""},
		{"unequal length tuples are an ordering error",
			tuple(types.IntValue(1)), tuple(types.IntValue(1), types.IntValue(2)),
			0, types.ErrTupleLength},
		{"cross kind is an error", types.IntValue(1), types.StringValue("1"),
			0, types.ErrTypeMismatch},
		{"empty cannot be ordered", types.EmptyValue(), types.EmptyValue(),
			0, types.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.Order(tt.a, tt.b)
			if tt.errCode != "" {
				if !types.IsCode(err, tt.errCode) {
					t.Fatalf("Order error = %v, want code %s", err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Order error = %v", err)
			}
			if sign(got) != tt.want {
				t.Errorf("Order = %d, want sign %d", got, tt.want)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value types.Value
		want  string
	}{
		{types.IntValue(42), "42"},
		{types.FloatValue(2.5), "2.5"},
		{types.BooleanValue(true), "true"},
		{types.StringValue("a\"b"), `"a\"b"`},
		{types.EmptyValue(), "()"},
		{types.TupleValue(types.TupleType{
			types.IntValue(1), types.StringValue("x"),
		}), `(1, "x")`},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
