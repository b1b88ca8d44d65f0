// Package evaluator implements the nlisp evaluator and its scope chain.
package evaluator

import (
	"fmt"
	"time"

	"github.com/thomasrohde/nlisp/pkg/diagnostics"
	"github.com/thomasrohde/nlisp/pkg/printer"
	"github.com/thomasrohde/nlisp/pkg/types"
)

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceDefine    TraceEventType = "define"
	TraceCallStart TraceEventType = "call_start"
	TraceCallEnd   TraceEventType = "call_end"
)

// TraceEvent represents a single trace event emitted during evaluation.
type TraceEvent struct {
	Timestamp string         `json:"ts"`
	Event     TraceEventType `json:"event"`
	Name      string         `json:"name"`
	Depth     int            `json:"depth"`
	Error     string         `json:"error,omitempty"`
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTrace sets the trace callback.
func WithTrace(fn func(event TraceEvent)) Option {
	return func(ev *Evaluator) {
		ev.trace = fn
	}
}

// WithBudget sets the evaluation limits.
func WithBudget(b Budget) Option {
	return func(ev *Evaluator) {
		ev.budget = b
	}
}

// Evaluator evaluates values against environments. It holds no per-evaluation
// state and may be reused for any number of calls.
type Evaluator struct {
	trace  func(event TraceEvent)
	budget Budget
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

var defaultEvaluator = New()

// Eval evaluates v in env with no trace and no budget.
func Eval(v types.Value, env *Env) (types.Value, error) {
	return defaultEvaluator.Eval(v, env)
}

// Eval evaluates v in env. Bindings made by def! before a failure are kept.
func (ev *Evaluator) Eval(v types.Value, env *Env) (types.Value, error) {
	r := &run{ev: ev}
	return r.eval(v, env)
}

// run tracks the state of one top-level Eval call.
type run struct {
	ev    *Evaluator
	depth int
}

func (r *run) emit(event TraceEventType, name string, err error) {
	if r.ev.trace == nil {
		return
	}
	te := TraceEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Event:     event,
		Name:      name,
		Depth:     r.depth,
	}
	if err != nil {
		te.Error = err.Error()
	}
	r.ev.trace(te)
}

func (r *run) eval(v types.Value, env *Env) (types.Value, error) {
	r.depth++
	defer func() { r.depth-- }()
	if limit := r.ev.budget.MaxDepth; limit > 0 && r.depth > limit {
		return nil, diagnostics.Errorf(diagnostics.EDepth, "evaluation depth exceeded (max %d)", limit)
	}

	switch val := v.(type) {
	case types.Symbol:
		found, ok := env.Get(val.Name)
		if !ok {
			return nil, diagnostics.WithHint(
				diagnostics.Errorf(diagnostics.EUnknownSymbol, "unknown symbol '%s'", val.Name),
				fmt.Sprintf("bind it first with (def! %s value)", val.Name))
		}
		return found, nil

	case types.List:
		if val.Len() == 0 {
			return val, nil
		}
		return r.evalCall(val, env)

	case types.Vector:
		items, err := r.evalItems(val.Items(), env)
		if err != nil {
			return nil, err
		}
		return types.NewVector(items), nil

	default:
		return v, nil
	}
}

// evalItems evaluates each item left to right into a new slice.
func (r *run) evalItems(items []types.Value, env *Env) ([]types.Value, error) {
	out := make([]types.Value, len(items))
	for i, item := range items {
		v, err := r.eval(item, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *run) evalCall(form types.List, env *Env) (types.Value, error) {
	if head, ok := form.At(0).(types.Symbol); ok {
		args := form.Rest()
		switch head.Name {
		case "def!":
			return r.evalDef(args, env)
		case "let*":
			return r.evalLet(args, env)
		case "do":
			return r.evalDo(args, env)
		case "if":
			return r.evalIf(args, env)
		}
	}

	items, err := r.evalItems(form.Items(), env)
	if err != nil {
		return nil, err
	}

	fn, ok := items[0].(types.NativeFunction)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.EType, "cannot call %s %s", types.TypeName(items[0]), printer.PrStr(items[0], true))
	}

	r.emit(TraceCallStart, fn.Name(), nil)
	result, err := fn.Call(items[1:])
	r.emit(TraceCallEnd, fn.Name(), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// (def! name expr)
func (r *run) evalDef(args types.List, env *Env) (types.Value, error) {
	if args.Len() != 2 {
		return nil, diagnostics.Errorf(diagnostics.EArity, "def!: expected 2 arguments, got %d", args.Len())
	}
	name, ok := args.At(0).(types.Symbol)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.EType, "def!: expected symbol, got %s", types.TypeName(args.At(0)))
	}

	val, err := r.eval(args.At(1), env)
	if err != nil {
		return nil, err
	}
	env.Set(name.Name, val)
	r.emit(TraceDefine, name.Name, nil)
	return types.NewNil(), nil
}

// (let* (name expr ...) body)
func (r *run) evalLet(args types.List, env *Env) (types.Value, error) {
	if args.Len() != 2 {
		return nil, diagnostics.Errorf(diagnostics.EArity, "let*: expected 2 arguments, got %d", args.Len())
	}

	var bindings []types.Value
	switch b := args.At(0).(type) {
	case types.List:
		bindings = b.Items()
	case types.Vector:
		bindings = b.Items()
	default:
		return nil, diagnostics.Errorf(diagnostics.EType, "let*: expected list or vector of bindings, got %s", types.TypeName(b))
	}
	if len(bindings)%2 != 0 {
		return nil, diagnostics.Errorf(diagnostics.EArity, "let*: bindings must come in pairs, got %d forms", len(bindings))
	}

	letEnv := env.Child()
	for i := 0; i < len(bindings); i += 2 {
		name, ok := bindings[i].(types.Symbol)
		if !ok {
			return nil, diagnostics.Errorf(diagnostics.EType, "let*: expected symbol, got %s", types.TypeName(bindings[i]))
		}
		val, err := r.eval(bindings[i+1], letEnv)
		if err != nil {
			return nil, err
		}
		letEnv.Set(name.Name, val)
	}

	return r.eval(args.At(1), letEnv)
}

// (do expr ...)
func (r *run) evalDo(args types.List, env *Env) (types.Value, error) {
	var result types.Value = types.NewNil()
	for _, item := range args.Items() {
		v, err := r.eval(item, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// (if cond then else?)
func (r *run) evalIf(args types.List, env *Env) (types.Value, error) {
	if args.Len() != 2 && args.Len() != 3 {
		return nil, diagnostics.Errorf(diagnostics.EArity, "if: expected 2 or 3 arguments, got %d", args.Len())
	}

	cond, err := r.eval(args.At(0), env)
	if err != nil {
		return nil, err
	}
	if types.Truthy(cond) {
		return r.eval(args.At(1), env)
	}
	if args.Len() == 3 {
		return r.eval(args.At(2), env)
	}
	return types.NewNil(), nil
}
