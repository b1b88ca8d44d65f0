package types

import (
	"bytes"
	"encoding/json"
)

// ToJSON marshals a value to JSON bytes.
// Symbols become strings; lists and vectors both become arrays.
// <, > and & are written as is.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(valueToRaw(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func valueToRaw(v Value) any {
	switch val := v.(type) {
	case True:
		return true

	case False:
		return false

	case Integer:
		return val.Value

	case String:
		return val.Value

	case Symbol:
		return val.Name

	case List:
		return itemsToRaw(val.items)

	case Vector:
		return itemsToRaw(val.items)

	case NativeFunction:
		return "#<function " + val.Name() + ">"
	}

	// Nil and unknown values
	return nil
}

func itemsToRaw(items []Value) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = valueToRaw(item)
	}
	return out
}
