package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

func TestNarrow(t *testing.T) {
	tests := []struct {
		name    string
		value   types.Value
		as      string
		want    string
		wantErr bool
	}{
		{name: "any int", value: types.IntValue(7), as: "any", want: "7"},
		{name: "any string keeps quotes", value: types.StringValue("hi"), as: "any", want: `"hi"`},
		{name: "int", value: types.IntValue(-3), as: "int", want: "-3"},
		{name: "float", value: types.FloatValue(2.5), as: "float", want: "2.5"},
		{name: "string is unquoted", value: types.StringValue("hi"), as: "string", want: "hi"},
		{name: "boolean", value: types.BooleanValue(true), as: "boolean", want: "true"},
		{name: "tuple", value: types.TupleValue(types.TupleType{
			types.IntValue(1), types.StringValue("a"),
		}), as: "tuple", want: `(1, "a")`},

		{name: "int from float", value: types.FloatValue(1.5), as: "int", wantErr: true},
		{name: "boolean from int", value: types.IntValue(1), as: "boolean", wantErr: true},
		{name: "tuple from int", value: types.IntValue(1), as: "tuple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := narrow(tt.value, tt.as)
			if tt.wantErr {
				if !types.IsCode(err, types.ErrExpectedKind) {
					t.Fatalf("narrow error = %v, want code %s", err, types.ErrExpectedKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("narrow error = %v", err)
			}
			if got != tt.want {
				t.Errorf("narrow = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalCmdConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	if err := os.WriteFile(path, []byte("a: 100\nc: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := &EvalCmd{
		Var:      []string{"a=1", "b=1+1"},
		Vars:     path,
		Builtins: true,
	}

	cfg, err := cmd.configuration()
	if err != nil {
		t.Fatalf("configuration error = %v", err)
	}

	// --var bindings shadow the YAML file.
	if got, ok := cfg.ResolveVariable("a"); !ok || !reflect.DeepEqual(got, types.IntValue(1)) {
		t.Errorf("a = %s, %t", got, ok)
	}
	// Binding values are themselves expressions.
	if got, ok := cfg.ResolveVariable("b"); !ok || !reflect.DeepEqual(got, types.IntValue(2)) {
		t.Errorf("b = %s, %t", got, ok)
	}
	// YAML-only names fall through.
	if got, ok := cfg.ResolveVariable("c"); !ok || !reflect.DeepEqual(got, types.IntValue(3)) {
		t.Errorf("c = %s, %t", got, ok)
	}
	// Builtins form the last layer.
	if _, err := cfg.CallFunction("min", types.TupleType{types.IntValue(1)}); err != nil {
		t.Errorf("min unavailable: %v", err)
	}
}

func TestEvalCmdConfigurationErrors(t *testing.T) {
	if _, err := (&EvalCmd{Var: []string{"novalue"}}).configuration(); err == nil {
		t.Error("accepted binding without =")
	}
	if _, err := (&EvalCmd{Var: []string{"a=1 +"}}).configuration(); err == nil {
		t.Error("accepted malformed binding expression")
	}
}
