// Package reader turns nlisp source text into a value tree.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/lexer"
	"github.com/thomasrohde/nlisp/pkg/types"
)

type reader struct {
	tokens []lexer.Token
	pos    int
}

// ReadStr reads the first form of source. Text after that form is ignored.
func ReadStr(source string) (types.Value, error) {
	return Read(source, "")
}

// Read is like ReadStr but records filename in error locations.
func Read(source, filename string) (types.Value, error) {
	tokens, err := tokenize(source, filename)
	if err != nil {
		return nil, err
	}
	r := &reader{tokens: tokens}
	return r.readForm()
}

// Empty reports whether source holds nothing to read: only separators and
// comments. Source that fails to tokenize is not empty.
func Empty(source string) bool {
	tokens, err := tokenize(source, "")
	return err == nil && tokens[0].Type == lexer.TokEOF
}

// tokenize drops comment tokens so the reader works on a flat array of forms.
func tokenize(source, filename string) ([]lexer.Token, error) {
	all, err := lexer.Tokenize(source, filename)
	if err != nil {
		return nil, err
	}
	tokens := all[:0]
	for _, tok := range all {
		if tok.Type != lexer.TokComment {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func (r *reader) current() lexer.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1] // EOF
	}
	return r.tokens[r.pos]
}

// peek returns the current token without consuming it.
func (r *reader) peek(want string) (lexer.Token, error) {
	tok := r.current()
	if tok.Type == lexer.TokEOF {
		return tok, diagnostics.At(diagnostics.EEOF, tok.Span, "expected %s, got EOF", want)
	}
	return tok, nil
}

// advance consumes and returns the current token.
func (r *reader) advance(want string) (lexer.Token, error) {
	tok, err := r.peek(want)
	if err != nil {
		return tok, err
	}
	r.pos++
	return tok, nil
}

func (r *reader) readForm() (types.Value, error) {
	tok, err := r.peek("form")
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case lexer.TokLParen:
		items, err := r.readSeq(lexer.TokRParen)
		if err != nil {
			return nil, err
		}
		return types.NewList(items), nil
	case lexer.TokLBracket:
		items, err := r.readSeq(lexer.TokRBracket)
		if err != nil {
			return nil, err
		}
		return types.NewVector(items), nil
	default:
		return r.readAtom()
	}
}

// readSeq reads the forms between an opening bracket and closer.
func (r *reader) readSeq(closer lexer.TokenType) ([]types.Value, error) {
	opener := r.current()
	r.pos++ // consume the opening bracket
	want := closer.String()

	items := []types.Value{}
	for {
		tok, err := r.peek(want)
		if err != nil {
			return nil, diagnostics.WithHint(err, fmt.Sprintf("unbalanced %s opened at %d:%d",
				opener.Type, opener.Span.Line, opener.Span.Col))
		}
		if tok.Type == closer {
			break
		}
		item, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	r.pos++ // consume the closer
	return items, nil
}

func (r *reader) readAtom() (types.Value, error) {
	tok, err := r.advance("atom")
	if err != nil {
		return nil, err
	}
	text := tok.Value

	switch text {
	case "nil":
		return types.NewNil(), nil
	case "true":
		return types.NewBool(true), nil
	case "false":
		return types.NewBool(false), nil
	}

	switch {
	case strings.HasPrefix(text, `"`):
		s, err := decodeString(text, tok.Span)
		if err != nil {
			return nil, err
		}
		return types.NewString(s), nil

	case text[0] == '-' || (text[0] >= '0' && text[0] <= '9'):
		if n, err := strconv.ParseInt(text, 10, 32); err == nil {
			return types.NewInteger(int32(n)), nil
		}
		// Not a number: -foo and friends are symbols.
	}

	if strings.IndexFunc(text, lexer.IsSpecial) < 0 {
		return types.NewSymbol(text), nil
	}

	return nil, diagnostics.At(diagnostics.EInvalidToken, tok.Span, "invalid token '%s'", text)
}

// decodeString strips the quotes from a string token and resolves the
// escapes \n, \\ and \".
func decodeString(text string, span diagnostics.Span) (string, error) {
	var buf strings.Builder
	escaped := false
	for _, ch := range text[1:] {
		switch {
		case escaped:
			switch ch {
			case 'n':
				buf.WriteByte('\n')
			case '\\':
				buf.WriteByte('\\')
			case '"':
				buf.WriteByte('"')
			default:
				return "", diagnostics.At(diagnostics.EInvalidEscape, span, "invalid escape character: \\%c", ch)
			}
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return buf.String(), nil
		default:
			buf.WriteRune(ch)
		}
	}
	return "", diagnostics.At(diagnostics.EEOF, span, "expected '\"', got EOF")
}
