package configuration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// LoadYAMLFile reads a YAML file of variable bindings into a HashMap
// configuration. See LoadYAML for the accepted document shape.
func LoadYAMLFile(path string) (*HashMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variables file: %w", err)
	}
	return LoadYAML(data)
}

// LoadYAML parses a YAML mapping of variable names to values into a
// HashMap configuration.
//
// Scalars map onto the value model directly: integers to int, floats to
// float, booleans to boolean, strings to string, and sequences to
// tuples (recursively). Nested mappings have no tuple representation
// and are rejected.
func LoadYAML(data []byte) (*HashMap, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse variables yaml: %w", err)
	}

	cfg := NewHashMap()
	for name, raw := range doc {
		value, err := fromYAML(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		cfg.InsertVariable(name, value)
	}
	return cfg, nil
}

// fromYAML converts a decoded YAML value into a runtime Value.
func fromYAML(raw any) (types.Value, error) {
	switch v := raw.(type) {
	case nil:
		return types.EmptyValue(), nil
	case bool:
		return types.BooleanValue(v), nil
	case int:
		return types.IntValue(int64(v)), nil
	case int64:
		return types.IntValue(v), nil
	case uint64:
		if v > 1<<63-1 {
			return types.EmptyValue(), fmt.Errorf("integer %d out of range", v)
		}
		return types.IntValue(int64(v)), nil
	case float64:
		return types.FloatValue(v), nil
	case string:
		return types.StringValue(v), nil
	case []any:
		elements := make(types.TupleType, 0, len(v))
		for _, e := range v {
			element, err := fromYAML(e)
			if err != nil {
				return types.EmptyValue(), err
			}
			elements = append(elements, element)
		}
		return types.TupleValue(elements), nil
	default:
		return types.EmptyValue(), fmt.Errorf("unsupported value type %T", raw)
	}
}
