package stdlib

import (
	"github.com/thomasrohde/nlisp/pkg/types"
)

// (= a b) → boolean
func stdlibEq(args []types.Value) (types.Value, error) {
	if err := arity("=", args, 2); err != nil {
		return nil, err
	}
	return types.NewBool(types.Equal(args[0], args[1])), nil
}

// isType builds a one-argument predicate that checks for the value type T.
func isType[T types.Value](name string) types.Fn {
	return func(args []types.Value) (types.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		_, ok := args[0].(T)
		return types.NewBool(ok), nil
	}
}

// (empty? seq) → boolean
func stdlibEmpty(args []types.Value) (types.Value, error) {
	if err := arity("empty?", args, 1); err != nil {
		return nil, err
	}
	elems, err := items("empty?", args[0])
	if err != nil {
		return nil, err
	}
	return types.NewBool(len(elems) == 0), nil
}
