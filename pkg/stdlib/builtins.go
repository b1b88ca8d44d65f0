package stdlib

import (
	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// RegisterDefaults adds all builtin functions.
func RegisterDefaults(r *Registry) {
	// Arithmetic
	r.Register(Fn{Name: "+", Execute: stdlibAdd})
	r.Register(Fn{Name: "-", Execute: stdlibSub})
	r.Register(Fn{Name: "*", Execute: stdlibMul})
	r.Register(Fn{Name: "/", Execute: stdlibDiv})

	// Comparison
	r.Register(Fn{Name: "=", Execute: stdlibEq})
	r.Register(Fn{Name: "<", Execute: stdlibLt})
	r.Register(Fn{Name: "<=", Execute: stdlibLte})
	r.Register(Fn{Name: ">", Execute: stdlibGt})
	r.Register(Fn{Name: ">=", Execute: stdlibGte})

	// Predicates
	r.Register(Fn{Name: "nil?", Execute: isType[types.Nil]("nil?")})
	r.Register(Fn{Name: "true?", Execute: isType[types.True]("true?")})
	r.Register(Fn{Name: "false?", Execute: isType[types.False]("false?")})
	r.Register(Fn{Name: "number?", Execute: isType[types.Integer]("number?")})
	r.Register(Fn{Name: "string?", Execute: isType[types.String]("string?")})
	r.Register(Fn{Name: "symbol?", Execute: isType[types.Symbol]("symbol?")})
	r.Register(Fn{Name: "list?", Execute: isType[types.List]("list?")})
	r.Register(Fn{Name: "vector?", Execute: isType[types.Vector]("vector?")})
	r.Register(Fn{Name: "fn?", Execute: isType[types.NativeFunction]("fn?")})
	r.Register(Fn{Name: "empty?", Execute: stdlibEmpty})

	// Sequences
	r.Register(Fn{Name: "list", Execute: stdlibList})
	r.Register(Fn{Name: "vector", Execute: stdlibVector})
	r.Register(Fn{Name: "count", Execute: stdlibCount})
	r.Register(Fn{Name: "first", Execute: stdlibFirst})
	r.Register(Fn{Name: "rest", Execute: stdlibRest})
	r.Register(Fn{Name: "nth", Execute: stdlibNth})
	r.Register(Fn{Name: "concat", Execute: stdlibConcat})

	// Strings
	r.Register(Fn{Name: "str", Execute: stdlibStr})
	r.Register(Fn{Name: "pr-str", Execute: stdlibPrStr})
}

// Defaults returns a registry holding every builtin.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func arity(name string, args []types.Value, want int) error {
	if len(args) != want {
		return diagnostics.Errorf(diagnostics.EArity, "%s: expected %d arguments, got %d", name, want, len(args))
	}
	return nil
}

func typeError(name, want string, got types.Value) error {
	return diagnostics.Errorf(diagnostics.EType, "%s: expected %s, got %s", name, want, types.TypeName(got))
}

// items returns the elements of a list or vector. nil counts as an empty sequence.
func items(name string, v types.Value) ([]types.Value, error) {
	switch val := v.(type) {
	case types.List:
		return val.Items(), nil
	case types.Vector:
		return val.Items(), nil
	case types.Nil:
		return nil, nil
	default:
		return nil, typeError(name, "list or vector", v)
	}
}
