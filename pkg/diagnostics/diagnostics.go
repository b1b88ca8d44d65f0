// Package diagnostics defines the error taxonomy shared by the reader and evaluator.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Diagnostic code constants.
const (
	EEOF           = "E_EOF"
	EInvalidToken  = "E_INVALID_TOKEN"
	EInvalidEscape = "E_INVALID_ESCAPE"
	EUnknownSymbol = "E_UNKNOWN_SYMBOL"
	EType          = "E_TYPE"
	EArity         = "E_ARITY"
	EDivZero       = "E_DIV_ZERO"
	EDepth         = "E_DEPTH"
	EIO            = "E_IO"
)

// Span locates a token in its source text. Lines and columns are 1-based.
type Span struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// Diagnostic represents a read or evaluation failure.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Span    *Span  `json:"span,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// Error wraps a diagnostic so it can travel as a Go error.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	return e.Diag.Message
}

// Errorf builds an *Error with a formatted message and no location.
func Errorf(code, format string, args ...any) error {
	return &Error{Diag: MakeDiag(code, fmt.Sprintf(format, args...), nil, "")}
}

// At builds an *Error located at span.
func At(code string, span Span, format string, args ...any) error {
	return &Error{Diag: MakeDiag(code, fmt.Sprintf(format, args...), &span, "")}
}

// WithHint returns err with hint attached to its diagnostic. Errors that
// carry no diagnostic are returned unchanged.
func WithHint(err error, hint string) error {
	var de *Error
	if !errors.As(err, &de) {
		return err
	}
	d := de.Diag
	d.Hint = hint
	return &Error{Diag: d}
}

// CodeOf returns the diagnostic code carried by err, or "" if err is not a
// diagnostics error.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return ""
}

// FromError converts any error into a Diagnostic. Foreign errors get the
// fallback code.
func FromError(err error, fallback string) Diagnostic {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag
	}
	return MakeDiag(fallback, err.Error(), nil, "")
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	out := fmt.Sprintf("error[%s]: %s", d.Code, d.Message)
	if d.Span != nil {
		file := d.Span.File
		if file == "" {
			file = "<input>"
		}
		out += fmt.Sprintf("\n  --> %s:%d:%d", file, d.Span.Line, d.Span.Col)
	}
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}
