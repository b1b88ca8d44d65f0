// Package printer renders nlisp values back to text.
package printer

import (
	"strconv"
	"strings"

	"github.com/thomasrohde/nlisp/pkg/types"
)

// PrStr renders v. In readable mode strings are quoted and \n, \\ and " are
// escaped so the output can be read back; otherwise string contents are
// printed verbatim.
func PrStr(v types.Value, readable bool) string {
	var sb strings.Builder
	write(&sb, v, readable)
	return sb.String()
}

// Join renders each value and joins the results with sep.
func Join(values []types.Value, readable bool, sep string) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteString(sep)
		}
		write(&sb, v, readable)
	}
	return sb.String()
}

func write(sb *strings.Builder, v types.Value, readable bool) {
	switch val := v.(type) {
	case types.Nil:
		sb.WriteString("nil")
	case types.True:
		sb.WriteString("true")
	case types.False:
		sb.WriteString("false")
	case types.Integer:
		sb.WriteString(strconv.FormatInt(int64(val.Value), 10))
	case types.Symbol:
		sb.WriteString(val.Name)
	case types.String:
		if readable {
			writeEscaped(sb, val.Value)
		} else {
			sb.WriteString(val.Value)
		}
	case types.List:
		writeSeq(sb, val.Items(), readable, '(', ')')
	case types.Vector:
		writeSeq(sb, val.Items(), readable, '[', ']')
	case types.NativeFunction:
		sb.WriteString("#<function ")
		sb.WriteString(val.Name())
		sb.WriteString(">")
	default:
		sb.WriteString("#<unknown>")
	}
}

func writeSeq(sb *strings.Builder, items []types.Value, readable bool, left, right byte) {
	sb.WriteByte(left)
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		write(sb, item, readable)
	}
	sb.WriteByte(right)
}

func writeEscaped(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, ch := range s {
		switch ch {
		case '\n':
			sb.WriteString(`\n`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(ch)
		}
	}
	sb.WriteByte('"')
}
