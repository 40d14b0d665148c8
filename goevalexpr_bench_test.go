package goevalexpr_test

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	goevalexpr "github.com/sandrolain/goevalexpr"
	"github.com/sandrolain/goevalexpr/pkg/configuration"
	"github.com/sandrolain/goevalexpr/pkg/types"
)

// benchCases are shared between the speed benchmarks and the
// cross-engine result comparison below. Sources are limited to syntax
// both engines accept with the same meaning.
var benchCases = []struct {
	name   string
	source string
}{
	{"arithmetic", "1 + 2 * 3 - 4 / 2"},
	{"comparison", "1 < 2 && 3 >= 3"},
	{"strings", `"foo" + "bar" == "foobar"`},
	{"variables", "a * b + a"},
	{"mixed", "(a + b) * 2 >= 10 || a == 0"},
}

func benchBindings() *configuration.HashMap {
	cfg := configuration.NewHashMap()
	cfg.InsertVariable("a", types.IntValue(3))
	cfg.InsertVariable("b", types.IntValue(4))
	return cfg
}

func benchEnv() map[string]any {
	return map[string]any{"a": 3, "b": 4}
}

func BenchmarkCompile(b *testing.B) {
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := goevalexpr.Compile(bc.source); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEvalPrecompiled(b *testing.B) {
	cfg := benchBindings()
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			e := goevalexpr.MustCompile(bc.source)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := goevalexpr.EvalExpression(e, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkEvalVsExprLang measures the same precompiled workloads on
// this evaluator and on expr-lang side by side.
func BenchmarkEvalVsExprLang(b *testing.B) {
	cfg := benchBindings()
	env := benchEnv()

	for _, bc := range benchCases {
		b.Run(bc.name+"/goevalexpr", func(b *testing.B) {
			e := goevalexpr.MustCompile(bc.source)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := goevalexpr.EvalExpression(e, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(bc.name+"/expr-lang", func(b *testing.B) {
			program, err := expr.Compile(bc.source)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := vm.Run(program, env); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// TestAgreesWithExprLang cross-checks results on the shared cases.
// expr-lang returns native Go values, so both sides are normalized
// before comparing.
func TestAgreesWithExprLang(t *testing.T) {
	cfg := benchBindings()
	env := benchEnv()

	for _, bc := range benchCases {
		t.Run(bc.name, func(t *testing.T) {
			ours, err := goevalexpr.EvalWithConfiguration(bc.source, cfg)
			if err != nil {
				t.Fatalf("eval error = %v", err)
			}

			program, err := expr.Compile(bc.source)
			if err != nil {
				t.Fatalf("expr compile error = %v", err)
			}
			theirs, err := vm.Run(program, env)
			if err != nil {
				t.Fatalf("expr run error = %v", err)
			}

			if got, want := normalize(t, ours), normalizeAny(t, theirs); got != want {
				t.Errorf("eval(%q): goevalexpr = %v, expr-lang = %v", bc.source, got, want)
			}
		})
	}
}

func normalize(t *testing.T, v types.Value) any {
	t.Helper()
	switch v.Kind() {
	case types.KindInt:
		i, _ := v.ExpectInt()
		return i
	case types.KindFloat:
		f, _ := v.ExpectFloat()
		return f
	case types.KindBoolean:
		b, _ := v.ExpectBoolean()
		return b
	case types.KindString:
		s, _ := v.ExpectString()
		return s
	default:
		t.Fatalf("unexpected result kind %s", v.Kind())
		return nil
	}
}

func normalizeAny(t *testing.T, v any) any {
	t.Helper()
	switch v := v.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return v
	case bool:
		return v
	case string:
		return v
	default:
		t.Fatalf("unexpected expr-lang result type %T", v)
		return nil
	}
}
