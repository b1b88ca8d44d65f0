package stdlib

import (
	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// copyArgs detaches args from the caller's slice before it is published
// inside a new sequence.
func copyArgs(args []types.Value) []types.Value {
	out := make([]types.Value, len(args))
	copy(out, args)
	return out
}

// (list x...) → list
func stdlibList(args []types.Value) (types.Value, error) {
	return types.NewList(copyArgs(args)), nil
}

// (vector x...) → vector
func stdlibVector(args []types.Value) (types.Value, error) {
	return types.NewVector(copyArgs(args)), nil
}

// (count seq) → integer
func stdlibCount(args []types.Value) (types.Value, error) {
	if err := arity("count", args, 1); err != nil {
		return nil, err
	}
	elems, err := items("count", args[0])
	if err != nil {
		return nil, err
	}
	return types.NewInteger(int32(len(elems))), nil
}

// (first seq) → any, nil when seq is empty
func stdlibFirst(args []types.Value) (types.Value, error) {
	if err := arity("first", args, 1); err != nil {
		return nil, err
	}
	elems, err := items("first", args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return types.NewNil(), nil
	}
	return elems[0], nil
}

// (rest seq) → list of everything after the first element
func stdlibRest(args []types.Value) (types.Value, error) {
	if err := arity("rest", args, 1); err != nil {
		return nil, err
	}
	if l, ok := args[0].(types.List); ok {
		return l.Rest(), nil
	}
	elems, err := items("rest", args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return types.NewList(nil), nil
	}
	return types.NewList(elems[1:]), nil
}

// (concat seq...) → list
func stdlibConcat(args []types.Value) (types.Value, error) {
	var out []types.Value
	for _, arg := range args {
		elems, err := items("concat", arg)
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return types.NewList(out), nil
}

// (nth seq index) → element at index
func stdlibNth(args []types.Value) (types.Value, error) {
	if err := arity("nth", args, 2); err != nil {
		return nil, err
	}
	elems, err := items("nth", args[0])
	if err != nil {
		return nil, err
	}
	idx, ok := args[1].(types.Integer)
	if !ok {
		return nil, typeError("nth", "number", args[1])
	}
	if idx.Value < 0 || int(idx.Value) >= len(elems) {
		return nil, diagnostics.Errorf(diagnostics.EType, "nth: index %d out of range for %d elements", idx.Value, len(elems))
	}
	return elems[idx.Value], nil
}
