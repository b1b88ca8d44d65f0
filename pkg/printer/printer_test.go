package printer_test

import (
	"testing"

	"github.com/thomasrohde/nlisp/pkg/printer"
	"github.com/thomasrohde/nlisp/pkg/reader"
	"github.com/thomasrohde/nlisp/pkg/types"
)

func list(items ...types.Value) types.Value   { return types.NewList(items) }
func vector(items ...types.Value) types.Value { return types.NewVector(items) }
func num(n int32) types.Value                 { return types.NewInteger(n) }
func sym(s string) types.Value                { return types.NewSymbol(s) }

func TestPrStr(t *testing.T) {
	tests := []struct {
		name     string
		value    types.Value
		readable string
		raw      string
	}{
		{"nil", types.NewNil(), "nil", "nil"},
		{"true", types.NewBool(true), "true", "true"},
		{"false", types.NewBool(false), "false", "false"},
		{"integer", num(-42), "-42", "-42"},
		{"symbol", sym("def!"), "def!", "def!"},
		{"string", types.NewString("abc"), `"abc"`, "abc"},
		{"string escapes", types.NewString("a\nb\\c\"d"), `"a\nb\\c\"d"`, "a\nb\\c\"d"},
		{"empty list", list(), "()", "()"},
		{"empty vector", vector(), "[]", "[]"},
		{"list", list(sym("+"), num(1), num(2)), "(+ 1 2)", "(+ 1 2)"},
		{"nested", list(num(1), vector(num(2), list()), types.NewString("x")), `(1 [2 ()] "x")`, "(1 [2 ()] x)"},
		{"function", types.NewNative("+", nil), "#<function +>", "#<function +>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printer.PrStr(tt.value, true); got != tt.readable {
				t.Errorf("readable: got %q, want %q", got, tt.readable)
			}
			if got := printer.PrStr(tt.value, false); got != tt.raw {
				t.Errorf("raw: got %q, want %q", got, tt.raw)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	vals := []types.Value{types.NewString("a"), num(1), list(sym("b"))}
	if got := printer.Join(vals, true, " "); got != `"a" 1 (b)` {
		t.Errorf("readable Join = %q", got)
	}
	if got := printer.Join(vals, false, ""); got != "a1(b)" {
		t.Errorf("raw Join = %q", got)
	}
	if got := printer.Join(nil, true, " "); got != "" {
		t.Errorf("empty Join = %q", got)
	}
}

func TestStringEscapeReadback(t *testing.T) {
	v, err := reader.ReadStr(`"a\nb"`)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := v.(types.String)
	if !ok || s.Value != "a\nb" {
		t.Fatalf("read %#v, want string a<newline>b", v)
	}
	if got := printer.PrStr(v, true); got != `"a\nb"` {
		t.Errorf("readable print = %q, want %q", got, `"a\nb"`)
	}
}

// Printing then re-reading any value built without strings gives back an
// equal value.
func TestRoundTrip(t *testing.T) {
	values := []types.Value{
		types.NewNil(),
		types.NewBool(true),
		types.NewBool(false),
		num(0),
		num(2147483647),
		num(-2147483648),
		sym("x"),
		sym("-foo"),
		sym("nil?"),
		list(),
		vector(),
		list(sym("def!"), sym("x"), list(sym("+"), num(1), num(2))),
		vector(list(vector()), types.NewNil(), types.NewBool(false), num(-1)),
		list(list(list(list(num(3))))),
	}

	for _, v := range values {
		text := printer.PrStr(v, true)
		t.Run(text, func(t *testing.T) {
			back, err := reader.ReadStr(text)
			if err != nil {
				t.Fatalf("re-read failed: %v", err)
			}
			if !types.Equal(v, back) {
				t.Errorf("round trip mismatch: %#v != %#v", v, back)
			}
		})
	}
}

func TestReadableStringsRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "tab\there", "quote\"", "back\\slash", "new\nline", "mixed \\n \"\n"} {
		text := printer.PrStr(types.NewString(s), true)
		back, err := reader.ReadStr(text)
		if err != nil {
			t.Fatalf("re-read of %q failed: %v", text, err)
		}
		if !types.Equal(back, types.NewString(s)) {
			t.Errorf("round trip of %q gave %#v", s, back)
		}
	}
}
