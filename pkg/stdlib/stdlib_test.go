package stdlib_test

import (
	"testing"

	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/stdlib"
	"github.com/thomasrohde/nlisp/pkg/types"
)

var reg = stdlib.Defaults()

// call invokes a registered builtin.
func call(t *testing.T, name string, args ...types.Value) (types.Value, error) {
	t.Helper()
	fn := reg.Get(name)
	if fn == nil {
		t.Fatalf("builtin %q not registered", name)
	}
	return fn.Execute(args)
}

func mustCall(t *testing.T, name string, args ...types.Value) types.Value {
	t.Helper()
	v, err := call(t, name, args...)
	if err != nil {
		t.Fatalf("(%s ...): unexpected error: %v", name, err)
	}
	return v
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := diagnostics.CodeOf(err); got != code {
		t.Fatalf("code = %q, want %q (%v)", got, code, err)
	}
}

func num(n int32) types.Value { return types.NewInteger(n) }

func nums(ns ...int32) []types.Value {
	out := make([]types.Value, len(ns))
	for i, n := range ns {
		out[i] = num(n)
	}
	return out
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   string
		args []types.Value
		want int32
	}{
		{"add", "+", nums(1, 2, 3), 6},
		{"add one", "+", nums(5), 5},
		{"add none", "+", nil, 0},
		{"mul", "*", nums(2, 3, 4), 24},
		{"mul none", "*", nil, 1},
		{"sub", "-", nums(10, 3, 2), 5},
		{"sub one", "-", nums(7), 7},
		{"sub negative", "-", nums(1, 5), -4},
		{"div", "/", nums(100, 5, 2), 10},
		{"div truncates", "/", nums(7, 2), 3},
		{"div truncates toward zero", "/", nums(-7, 2), -3},
		{"add wraps", "+", nums(2147483647, 1), -2147483648},
		{"div min by -1 wraps", "/", nums(-2147483648, -1), -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCall(t, tt.op, tt.args...)
			if !types.Equal(got, num(tt.want)) {
				t.Errorf("got %#v, want %d", got, tt.want)
			}
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := call(t, "-")
	expectCode(t, err, diagnostics.EArity)

	_, err = call(t, "/")
	expectCode(t, err, diagnostics.EArity)

	_, err = call(t, "+", num(1), types.NewString("2"))
	expectCode(t, err, diagnostics.EType)

	_, err = call(t, "*", types.NewNil())
	expectCode(t, err, diagnostics.EType)

	_, err = call(t, "/", num(1), num(0))
	expectCode(t, err, diagnostics.EDivZero)
}

func TestComparison(t *testing.T) {
	tests := []struct {
		op   string
		a, b int32
		want bool
	}{
		{"<", 1, 2, true},
		{"<", 2, 2, false},
		{"<=", 2, 2, true},
		{">", 3, 2, true},
		{">", 2, 3, false},
		{">=", 2, 2, true},
		{">=", 1, 2, false},
	}
	for _, tt := range tests {
		got := mustCall(t, tt.op, num(tt.a), num(tt.b))
		if !types.Equal(got, types.NewBool(tt.want)) {
			t.Errorf("(%s %d %d) = %#v, want %v", tt.op, tt.a, tt.b, got, tt.want)
		}
	}

	_, err := call(t, "<", num(1))
	expectCode(t, err, diagnostics.EArity)
	_, err = call(t, "<", num(1), types.NewSymbol("x"))
	expectCode(t, err, diagnostics.EType)
}

func TestEq(t *testing.T) {
	l := types.NewList(nums(1, 2))
	if got := mustCall(t, "=", l, types.NewList(nums(1, 2))); !types.Equal(got, types.NewBool(true)) {
		t.Errorf("equal lists: got %#v", got)
	}
	if got := mustCall(t, "=", num(1), types.NewString("1")); !types.Equal(got, types.NewBool(false)) {
		t.Errorf("int vs string: got %#v", got)
	}
	_, err := call(t, "=", num(1))
	expectCode(t, err, diagnostics.EArity)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		op   string
		arg  types.Value
		want bool
	}{
		{"nil?", types.NewNil(), true},
		{"nil?", types.NewBool(false), false},
		{"true?", types.NewBool(true), true},
		{"false?", types.NewBool(false), true},
		{"false?", types.NewNil(), false},
		{"number?", num(1), true},
		{"string?", types.NewString(""), true},
		{"symbol?", types.NewSymbol("a"), true},
		{"symbol?", types.NewString("a"), false},
		{"list?", types.NewList(nil), true},
		{"list?", types.NewVector(nil), false},
		{"vector?", types.NewVector(nil), true},
		{"fn?", reg.Natives()[0], true},
		{"empty?", types.NewList(nil), true},
		{"empty?", types.NewVector(nums(1)), false},
		{"empty?", types.NewNil(), true},
	}
	for _, tt := range tests {
		got := mustCall(t, tt.op, tt.arg)
		if !types.Equal(got, types.NewBool(tt.want)) {
			t.Errorf("(%s %#v) = %#v, want %v", tt.op, tt.arg, got, tt.want)
		}
	}

	_, err := call(t, "nil?")
	expectCode(t, err, diagnostics.EArity)
	_, err = call(t, "empty?", num(1))
	expectCode(t, err, diagnostics.EType)
}

func TestSequenceOps(t *testing.T) {
	if got := mustCall(t, "list", nums(1, 2)...); !types.Equal(got, types.NewList(nums(1, 2))) {
		t.Errorf("list: got %#v", got)
	}
	if got := mustCall(t, "vector"); !types.Equal(got, types.NewVector(nil)) {
		t.Errorf("vector: got %#v", got)
	}
	if got := mustCall(t, "count", types.NewVector(nums(1, 2, 3))); !types.Equal(got, num(3)) {
		t.Errorf("count: got %#v", got)
	}
	if got := mustCall(t, "count", types.NewNil()); !types.Equal(got, num(0)) {
		t.Errorf("count nil: got %#v", got)
	}
	if got := mustCall(t, "first", types.NewList(nums(4, 5))); !types.Equal(got, num(4)) {
		t.Errorf("first: got %#v", got)
	}
	if got := mustCall(t, "first", types.NewList(nil)); !types.Equal(got, types.NewNil()) {
		t.Errorf("first of empty: got %#v", got)
	}
	if got := mustCall(t, "rest", types.NewVector(nums(4, 5, 6))); !types.Equal(got, types.NewList(nums(5, 6))) {
		t.Errorf("rest of vector: got %#v", got)
	}
	if got := mustCall(t, "rest", types.NewList(nil)); !types.Equal(got, types.NewList(nil)) {
		t.Errorf("rest of empty: got %#v", got)
	}
	got := mustCall(t, "concat", types.NewList(nums(1)), types.NewVector(nums(2, 3)), types.NewNil())
	if !types.Equal(got, types.NewList(nums(1, 2, 3))) {
		t.Errorf("concat: got %#v", got)
	}

	if got := mustCall(t, "nth", types.NewVector(nums(7, 8, 9)), num(2)); !types.Equal(got, num(9)) {
		t.Errorf("nth: got %#v", got)
	}

	_, err := call(t, "count", num(1))
	expectCode(t, err, diagnostics.EType)
	_, err = call(t, "first")
	expectCode(t, err, diagnostics.EArity)
	_, err = call(t, "nth", types.NewList(nums(1)), num(1))
	expectCode(t, err, diagnostics.EType)
	_, err = call(t, "nth", types.NewList(nums(1)), num(-1))
	expectCode(t, err, diagnostics.EType)
}

func TestListDoesNotAliasArgs(t *testing.T) {
	args := nums(1, 2)
	l := mustCall(t, "list", args...).(types.List)
	args[0] = num(99)
	if !types.Equal(l.At(0), num(1)) {
		t.Error("list shares storage with its argument slice")
	}
}

func TestStringOps(t *testing.T) {
	args := []types.Value{types.NewString("a\"b"), num(1), types.NewList([]types.Value{types.NewString("c")})}
	if got := mustCall(t, "str", args...); !types.Equal(got, types.NewString(`a"b1(c)`)) {
		t.Errorf("str: got %#v", got)
	}
	if got := mustCall(t, "pr-str", args...); !types.Equal(got, types.NewString(`"a\"b" 1 ("c")`)) {
		t.Errorf("pr-str: got %#v", got)
	}
	if got := mustCall(t, "str"); !types.Equal(got, types.NewString("")) {
		t.Errorf("str with no args: got %#v", got)
	}
}

func TestRegistry(t *testing.T) {
	r := stdlib.NewRegistry()
	r.Register(stdlib.Fn{Name: "b", Execute: func(args []types.Value) (types.Value, error) { return types.NewNil(), nil }})
	r.Register(stdlib.Fn{Name: "a", Execute: func(args []types.Value) (types.Value, error) { return types.NewBool(true), nil }})

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v", names)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered name")
	}

	natives := r.Natives()
	if natives[0].Name() != "a" {
		t.Errorf("Natives()[0] = %q, want a", natives[0].Name())
	}
	v, err := natives[0].Call(nil)
	if err != nil || !types.Equal(v, types.NewBool(true)) {
		t.Errorf("calling a: %v, %v", v, err)
	}
}
