package stdlib

import (
	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// toInts checks that every argument is an integer.
func toInts(name string, args []types.Value) ([]int32, error) {
	out := make([]int32, len(args))
	for i, arg := range args {
		n, ok := arg.(types.Integer)
		if !ok {
			return nil, typeError(name, "integer", arg)
		}
		out[i] = n.Value
	}
	return out, nil
}

// fold left-folds the integer arguments with op. With no arguments it returns
// identity, or an arity error when the operator has no identity.
// Results wrap around on 32-bit overflow.
func fold(name string, args []types.Value, identity *int32, op func(a, b int32) (int32, error)) (types.Value, error) {
	nums, err := toInts(name, args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		if identity == nil {
			return nil, diagnostics.Errorf(diagnostics.EArity, "%s: expected at least 1 argument, got 0", name)
		}
		return types.NewInteger(*identity), nil
	}

	acc := nums[0]
	for _, n := range nums[1:] {
		acc, err = op(acc, n)
		if err != nil {
			return nil, err
		}
	}
	return types.NewInteger(acc), nil
}

func seed(n int32) *int32 { return &n }

// (+ n...) → integer
func stdlibAdd(args []types.Value) (types.Value, error) {
	return fold("+", args, seed(0), func(a, b int32) (int32, error) { return a + b, nil })
}

// (- n m...) → integer
func stdlibSub(args []types.Value) (types.Value, error) {
	return fold("-", args, nil, func(a, b int32) (int32, error) { return a - b, nil })
}

// (* n...) → integer
func stdlibMul(args []types.Value) (types.Value, error) {
	return fold("*", args, seed(1), func(a, b int32) (int32, error) { return a * b, nil })
}

// (/ n m...) → integer, truncated toward zero
func stdlibDiv(args []types.Value) (types.Value, error) {
	return fold("/", args, nil, func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, diagnostics.Errorf(diagnostics.EDivZero, "/: division by zero")
		}
		return a / b, nil
	})
}

// compare applies cmp to exactly two integers.
func compare(name string, args []types.Value, cmp func(a, b int32) bool) (types.Value, error) {
	if err := arity(name, args, 2); err != nil {
		return nil, err
	}
	nums, err := toInts(name, args)
	if err != nil {
		return nil, err
	}
	return types.NewBool(cmp(nums[0], nums[1])), nil
}

func stdlibLt(args []types.Value) (types.Value, error) {
	return compare("<", args, func(a, b int32) bool { return a < b })
}

func stdlibLte(args []types.Value) (types.Value, error) {
	return compare("<=", args, func(a, b int32) bool { return a <= b })
}

func stdlibGt(args []types.Value) (types.Value, error) {
	return compare(">", args, func(a, b int32) bool { return a > b })
}

func stdlibGte(args []types.Value) (types.Value, error) {
	return compare(">=", args, func(a, b int32) bool { return a >= b })
}
