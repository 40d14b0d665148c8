package types

// Function is an invocable bound to a name in a configuration.
// It receives the already-evaluated argument tuple and produces a Value.
type Function func(args TupleType) (Value, error)

// Configuration resolves identifiers during evaluation.
//
// Variables and functions live in two separate namespaces: a name may be
// bound to both at once, and each resolution path fails independently.
//
// A Configuration is supplied per evaluation call and may be shared
// across many evaluations. Evaluation only reads it; mutation, where a
// concrete implementation supports it, happens through that
// implementation's own setter API outside the evaluation path.
type Configuration interface {
	// ResolveVariable looks up a variable binding by name.
	ResolveVariable(name string) (Value, bool)

	// CallFunction invokes a function binding by name with the given
	// argument tuple. Unknown names yield an ErrUndefinedFunction error.
	CallFunction(name string, args TupleType) (Value, error)
}

// MutableConfiguration is a Configuration that additionally accepts
// variable bindings, enabling top-level assignment expressions.
type MutableConfiguration interface {
	Configuration

	// SetVariable binds name to value, replacing any previous binding.
	SetVariable(name string, value Value)
}
