// Package types implements the nlisp value model.
package types

// Value is the interface for all nlisp runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
}

// Nil is the nil value.
type Nil struct{}

func (Nil) value() {}

// True is the boolean true.
type True struct{}

func (True) value() {}

// False is the boolean false.
type False struct{}

func (False) value() {}

// Integer is a 32-bit signed integer.
type Integer struct {
	Value int32
}

func (Integer) value() {}

// String holds escape-decoded text.
type String struct {
	Value string
}

func (String) value() {}

// Symbol is a name. Two symbols are the same symbol iff their text is equal.
type Symbol struct {
	Name string
}

func (Symbol) value() {}

// seq is the shared backing store of List and Vector. A published seq is
// never written to again, so any number of values may hold the same one.
type seq struct {
	items []Value
}

func (s seq) Len() int { return len(s.items) }

// At returns the i-th element. It panics if i is out of range.
func (s seq) At(i int) Value { return s.items[i] }

// Items returns the elements. Callers must not modify the returned slice.
func (s seq) Items() []Value { return s.items }

// List is an immutable ordered sequence, written (a b c).
type List struct {
	seq
}

func (List) value() {}

// Rest returns a list of every element after the first. The result shares
// storage with l.
func (l List) Rest() List {
	if len(l.items) == 0 {
		return l
	}
	return List{seq{l.items[1:]}}
}

// Vector is an immutable ordered sequence, written [a b c].
type Vector struct {
	seq
}

func (Vector) value() {}

// Fn is the signature of a host-implemented operation.
type Fn func(args []Value) (Value, error)

// NativeFunction is a builtin bound to a host operation. The pointer is the
// function's identity: copies of a NativeFunction value refer to the same builtin.
type NativeFunction struct {
	*native
}

type native struct {
	name string
	fn   Fn
}

func (NativeFunction) value() {}

// Name returns the name the builtin was registered under.
func (f NativeFunction) Name() string { return f.name }

// Call invokes the builtin.
func (f NativeFunction) Call(args []Value) (Value, error) {
	return f.fn(args)
}

// NewNil creates a nil value.
func NewNil() Value {
	return Nil{}
}

// NewBool maps b to True or False.
func NewBool(b bool) Value {
	if b {
		return True{}
	}
	return False{}
}

// NewInteger creates an integer value.
func NewInteger(n int32) Value {
	return Integer{Value: n}
}

// NewString creates a string value.
func NewString(s string) Value {
	return String{Value: s}
}

// NewSymbol creates a symbol value.
func NewSymbol(name string) Value {
	return Symbol{Name: name}
}

// NewList creates a list that takes ownership of items. The caller must not
// modify items afterwards.
func NewList(items []Value) List {
	return List{seq{items}}
}

// NewVector creates a vector that takes ownership of items. The caller must
// not modify items afterwards.
func NewVector(items []Value) Vector {
	return Vector{seq{items}}
}

// NewNative creates a native function value.
func NewNative(name string, fn Fn) NativeFunction {
	return NativeFunction{&native{name: name, fn: fn}}
}

// Truthy reports whether v counts as true in a condition.
// Only nil and false are falsy.
func Truthy(v Value) bool {
	switch v.(type) {
	case Nil, False:
		return false
	default:
		return true
	}
}

// TypeName returns the type name used in error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Nil:
		return "nil"
	case True, False:
		return "boolean"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case List:
		return "list"
	case Vector:
		return "vector"
	case NativeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Equal recursively compares two values. Lists and vectors are only equal to
// sequences of their own kind; native functions compare by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok

	case True:
		_, ok := b.(True)
		return ok

	case False:
		_, ok := b.(False)
		return ok

	case Integer:
		bv, ok := b.(Integer)
		return ok && av.Value == bv.Value

	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value

	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av.Name == bv.Name

	case List:
		bv, ok := b.(List)
		return ok && equalItems(av.items, bv.items)

	case Vector:
		bv, ok := b.(Vector)
		return ok && equalItems(av.items, bv.items)

	case NativeFunction:
		bv, ok := b.(NativeFunction)
		return ok && av.native == bv.native
	}

	return false
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
