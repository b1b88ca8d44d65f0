package stdlib

import (
	"github.com/thomasrohde/nlisp/pkg/printer"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// (str x...) → string of the raw renderings, concatenated
func stdlibStr(args []types.Value) (types.Value, error) {
	return types.NewString(printer.Join(args, false, "")), nil
}

// (pr-str x...) → string of the readable renderings, space separated
func stdlibPrStr(args []types.Value) (types.Value, error) {
	return types.NewString(printer.Join(args, true, " ")), nil
}
