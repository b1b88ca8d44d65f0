// Package lexer implements the nlisp tokenizer.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/thomasrohde/nlisp/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Brackets
	TokLParen TokenType = iota // (
	TokRParen                  // )
	TokLBracket                // [
	TokRBracket                // ]
	TokLBrace                  // {
	TokRBrace                  // }

	// Reader macro characters
	TokQuote         // '
	TokQuasiquote    // `
	TokUnquote       // ~
	TokSpliceUnquote // ~@
	TokCaret         // ^
	TokAt            // @

	TokString  // "..." including the quotes, escapes undecoded
	TokComment // ; to the end of the remaining text
	TokAtom    // anything else: numbers, symbols, nil/true/false

	// Special
	TokEOF
)

func (t TokenType) String() string {
	switch t {
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokQuote:
		return "'''"
	case TokQuasiquote:
		return "'`'"
	case TokUnquote:
		return "'~'"
	case TokSpliceUnquote:
		return "'~@'"
	case TokCaret:
		return "'^'"
	case TokAt:
		return "'@'"
	case TokString:
		return "string"
	case TokComment:
		return "comment"
	case TokAtom:
		return "atom"
	case TokEOF:
		return "EOF"
	default:
		return "unknown"
	}
}

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  diagnostics.Span
}

var singles = map[rune]TokenType{
	'(':  TokLParen,
	')':  TokRParen,
	'[':  TokLBracket,
	']':  TokRBracket,
	'{':  TokLBrace,
	'}':  TokRBrace,
	'\'': TokQuote,
	'`':  TokQuasiquote,
	'~':  TokUnquote,
	'^':  TokCaret,
	'@':  TokAt,
}

// IsSpecial reports whether ch is one of the characters that always form a
// token on their own: [ ] { } ( ) ' ` ~ ^ @
func IsSpecial(ch rune) bool {
	_, ok := singles[ch]
	return ok
}

// IsSeparator reports whether ch separates tokens without producing one.
func IsSeparator(ch rune) bool {
	return ch == ',' || unicode.IsSpace(ch)
}

type scanner struct {
	source   string
	filename string
	pos      int
	line     int
	col      int
}

func newScanner(source, filename string) *scanner {
	return &scanner{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
	return r
}

func (s *scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) here() diagnostics.Span {
	return diagnostics.Span{File: s.filename, Line: s.line, Col: s.col}
}

func (s *scanner) skipSeparators() {
	for !s.atEnd() && IsSeparator(s.peek()) {
		s.advance()
	}
}

// scanString consumes a quoted string, honoring backslash escapes only as far
// as not stopping at an escaped quote. Decoding is left to the reader.
func (s *scanner) scanString() (Token, error) {
	span := s.here()
	start := s.pos
	s.advance() // consume opening "

	escaped := false
	for !s.atEnd() {
		ch := s.advance()
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return Token{Type: TokString, Value: s.source[start:s.pos], Span: span}, nil
		}
	}
	return Token{}, diagnostics.At(diagnostics.EEOF, span, "expected '\"', got EOF")
}

// scanComment consumes everything that remains, newlines included.
func (s *scanner) scanComment() Token {
	span := s.here()
	start := s.pos
	for !s.atEnd() {
		s.advance()
	}
	return Token{Type: TokComment, Value: s.source[start:], Span: span}
}

func (s *scanner) scanAtom() Token {
	span := s.here()
	start := s.pos
	for !s.atEnd() {
		ch := s.peek()
		if IsSeparator(ch) || IsSpecial(ch) {
			break
		}
		s.advance()
	}
	return Token{Type: TokAtom, Value: s.source[start:s.pos], Span: span}
}

func (s *scanner) nextToken() (Token, error) {
	s.skipSeparators()

	if s.atEnd() {
		return Token{Type: TokEOF, Span: s.here()}, nil
	}

	span := s.here()
	ch := s.peek()

	if ch == '~' {
		s.advance()
		if !s.atEnd() && s.peek() == '@' {
			s.advance()
			return Token{Type: TokSpliceUnquote, Value: "~@", Span: span}, nil
		}
		return Token{Type: TokUnquote, Value: "~", Span: span}, nil
	}

	if typ, ok := singles[ch]; ok {
		s.advance()
		return Token{Type: typ, Value: string(ch), Span: span}, nil
	}

	switch ch {
	case '"':
		return s.scanString()
	case ';':
		return s.scanComment(), nil
	}

	return s.scanAtom(), nil
}

// Tokenize breaks source text into a slice of tokens terminated by a TokEOF token.
func Tokenize(source, filename string) ([]Token, error) {
	s := newScanner(source, filename)
	var tokens []Token

	for {
		tok, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			break
		}
	}

	return tokens, nil
}
