// Package runtime provides the top-level nlisp read-eval-print orchestrator.
package runtime

import (
	"github.com/thomasrohde/nlisp/pkg/evaluator"
	"github.com/thomasrohde/nlisp/pkg/printer"
	"github.com/thomasrohde/nlisp/pkg/reader"
	"github.com/thomasrohde/nlisp/pkg/stdlib"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// Runtime wires together the reader, the evaluator and a persistent root
// environment populated with the native functions.
type Runtime struct {
	stdlib   *stdlib.Registry
	trace    func(event evaluator.TraceEvent)
	budget   evaluator.Budget
	readable bool
	filename string

	env  *evaluator.Env
	eval *evaluator.Evaluator
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdlib sets the native function registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithTrace sets the trace callback.
func WithTrace(fn func(event evaluator.TraceEvent)) Option {
	return func(rt *Runtime) {
		rt.trace = fn
	}
}

// WithMaxDepth bounds evaluation nesting. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		rt.budget.MaxDepth = n
	}
}

// WithRaw makes Rep print strings verbatim instead of readably.
func WithRaw() Option {
	return func(rt *Runtime) {
		rt.readable = false
	}
}

// WithFilename sets the file name reported in read errors.
func WithFilename(name string) Option {
	return func(rt *Runtime) {
		rt.filename = name
	}
}

// New creates a new Runtime with the given options.
// By default the builtin registry is installed and results print readably.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		stdlib:   stdlib.Defaults(),
		readable: true,
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.env = evaluator.NewEnv(nil)
	for _, fn := range rt.stdlib.Natives() {
		rt.env.Set(fn.Name(), fn)
	}
	rt.eval = evaluator.New(
		evaluator.WithTrace(rt.trace),
		evaluator.WithBudget(rt.budget),
	)
	return rt
}

// Env returns the root environment shared by every call.
func (rt *Runtime) Env() *evaluator.Env {
	return rt.env
}

// Read parses the first form of line.
func (rt *Runtime) Read(line string) (types.Value, error) {
	return reader.Read(line, rt.filename)
}

// Eval evaluates v in the root environment.
func (rt *Runtime) Eval(v types.Value) (types.Value, error) {
	return rt.eval.Eval(v, rt.env)
}

// Print renders v in the runtime's print mode.
func (rt *Runtime) Print(v types.Value) string {
	return printer.PrStr(v, rt.readable)
}

// EvalString reads and evaluates one line. A line holding no form, blank or
// comment only, fails with E_EOF; check reader.Empty first to skip those.
func (rt *Runtime) EvalString(line string) (types.Value, error) {
	form, err := rt.Read(line)
	if err != nil {
		return nil, err
	}
	return rt.Eval(form)
}

// Rep reads, evaluates and prints one line. A line holding no form prints
// nothing. A failure leaves bindings made by earlier lines untouched.
func (rt *Runtime) Rep(line string) (string, error) {
	if reader.Empty(line) {
		return "", nil
	}
	v, err := rt.EvalString(line)
	if err != nil {
		return "", err
	}
	return rt.Print(v), nil
}
