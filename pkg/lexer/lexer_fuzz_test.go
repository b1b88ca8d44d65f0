package lexer

import (
	"testing"
)

// FuzzTokenize feeds random inputs to the lexer to catch panics.
// The lexer should never panic; it should return an error for invalid input.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		`(+ 1 2)`,
		`[1 2 (3 4)]`,
		`(def! x (* 2 3))`,
		`"hello" "with\nescape" "quote\""`,
		"~@ ~ ' ` ^ @ { }",
		`; comment`,
		``,
		`   `,
		"\t\n\r,",
		`"unterminated`,
		`"\`,
		`~`,
		`-1 -foo 2147483648`,
		"\xff\xfe",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Tokenize panicked on input %q: %v", input, r)
				}
			}()
			Tokenize(input, "fuzz.mal")
		}()
	})
}
