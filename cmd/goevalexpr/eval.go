package main

import (
	"fmt"
	"strings"

	"github.com/sandrolain/goevalexpr"
	"github.com/sandrolain/goevalexpr/pkg/configuration"
	"github.com/sandrolain/goevalexpr/pkg/types"
)

// EvalCmd evaluates a single expression and prints the result.
type EvalCmd struct {
	Expression []string `arg:"" help:"Expression to evaluate (arguments are joined with spaces)"`

	Var      []string `help:"Variable binding as name=expression (repeatable)." short:"v"`
	Vars     string   `help:"YAML file of variable bindings." type:"existingfile"`
	As       string   `help:"Narrow the result to a kind." enum:"any,int,float,string,boolean,tuple" default:"any"`
	Builtins bool     `help:"Preload the builtin function set." default:"true" negatable:""`
}

// Run executes the eval command.
func (e *EvalCmd) Run() error {
	cfg, err := e.configuration()
	if err != nil {
		return err
	}

	source := strings.Join(e.Expression, " ")
	value, err := goevalexpr.EvalWithConfiguration(source, cfg)
	if err != nil {
		return err
	}

	out, err := narrow(value, e.As)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// configuration assembles the evaluation bindings: explicit --var
// bindings first, then the YAML file, then the builtins.
func (e *EvalCmd) configuration() (types.Configuration, error) {
	layered := configuration.NewLayered()

	if len(e.Var) > 0 {
		vars := configuration.NewHashMap()
		for _, binding := range e.Var {
			name, expr, ok := strings.Cut(binding, "=")
			if !ok {
				return nil, fmt.Errorf("invalid binding %q, want name=expression", binding)
			}
			value, err := goevalexpr.Eval(expr)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", name, err)
			}
			vars.InsertVariable(name, value)
		}
		layered.Push(vars)
	}

	if e.Vars != "" {
		fileVars, err := configuration.LoadYAMLFile(e.Vars)
		if err != nil {
			return nil, err
		}
		layered.Push(fileVars)
	}

	if e.Builtins {
		layered.Push(configuration.Builtins())
	}

	return layered, nil
}

// narrow converts a result Value to its printed form, optionally
// requiring a specific kind first.
func narrow(value types.Value, as string) (string, error) {
	switch as {
	case "int":
		i, err := value.ExpectInt()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", i), nil
	case "float":
		f, err := value.ExpectFloat()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", f), nil
	case "string":
		s, err := value.ExpectString()
		if err != nil {
			return "", err
		}
		return s, nil
	case "boolean":
		b, err := value.ExpectBoolean()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", b), nil
	case "tuple":
		if _, err := value.ExpectTuple(); err != nil {
			return "", err
		}
		return value.String(), nil
	default:
		return value.String(), nil
	}
}
