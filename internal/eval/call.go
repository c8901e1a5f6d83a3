package eval

import (
	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/register"
	"github.com/greenbone/nasl-go/internal/trace"
	"github.com/greenbone/nasl-go/internal/value"
	"github.com/greenbone/nasl-go/internal/verror"
)

// evalCall resolves name(Arguments): built-ins are checked before
// user-defined functions (spec.md §4.E, grounded on call.rs, where a
// native lookup always happens first). Every call pushes a root-child
// frame - never the caller's own frame - carrying the named arguments
// and _FCT_ANON_ARGS *before* either branch dispatches, so a native
// Handler sees exactly the register view spec.md §4.C promises it, and
// that frame is popped on every exit path via defer.
func (e *Evaluator) evalCall(n *ast.Call) (value.Value, error) {
	params, _ := n.Arguments.(*ast.Parameter)
	if params == nil {
		return value.NullVal(), verror.New(n.Span(), "invalid statement type for function parameters")
	}

	bindings := map[string]register.Definition{}
	var positional []value.Value
	for _, el := range params.Elements {
		switch p := el.(type) {
		case *ast.NamedParameter:
			v, err := e.Eval(p.Value)
			if err != nil {
				return value.NullVal(), err
			}
			bindings[p.Name] = register.ValueDef{Value: v}
		default:
			v, err := e.Eval(el)
			if err != nil {
				return value.NullVal(), err
			}
			positional = append(positional, v)
		}
	}
	bindings[register.AnonArgsName] = register.ValueDef{Value: value.ArrVal(positional)}

	if handler, ok := e.Natives.Lookup(n.Name); ok {
		return e.callNative(n, handler, bindings)
	}

	def, _, ok := e.Reg.Lookup(n.Name)
	if !ok {
		return value.NullVal(), verror.New(n.Span(), "function %s not found", n.Name)
	}
	fn, ok := def.(register.FunctionDef)
	if !ok {
		return value.NullVal(), verror.New(n.Span(), "unexpected definition %T", def)
	}
	return e.callUserFunction(n, fn, bindings)
}

// pushCallFrame pushes a root-child frame seeded with bindings, bumps
// the trace depth and emits the call event, and returns the matching
// pop function for the caller to defer.
func (e *Evaluator) pushCallFrame(n *ast.Call, bindings map[string]register.Definition) func() {
	e.Reg.CreateRootChild(bindings)
	e.depth++
	e.Trace.Emit(trace.Event{Kind: "call", Name: n.Name, Depth: e.depth})
	return func() {
		e.Reg.DropLast()
		e.depth--
	}
}

// callNative invokes handler against the register already rooted at
// the pushed call frame - the exact (key, sink, register) triple
// spec.md §4.C specifies, matching call.rs's
// `function(self.key, self.storage, &self.registrat)`.
func (e *Evaluator) callNative(n *ast.Call, handler builtin.Handler, bindings map[string]register.Definition) (value.Value, error) {
	pop := e.pushCallFrame(n, bindings)
	defer pop()

	v, err := handler(e.ScriptKey, e.Sink, e.Reg)
	if err != nil {
		return value.NullVal(), verror.New(n.Span(), "unable to call function %s: %v", n.Name, err)
	}
	e.Trace.Emit(trace.Event{Kind: "return", Name: n.Name, Depth: e.depth})
	return v, nil
}

// callUserFunction binds positional arguments into _FCT_ANON_ARGS and
// named arguments by parameter name via the pushed call frame, then
// defaults any declared parameter not already bound in that frame to
// Null (spec.md §4.E step 5, grounded on call.rs's
// default_null_on_user_defined_functions behavior).
func (e *Evaluator) callUserFunction(n *ast.Call, fn register.FunctionDef, bindings map[string]register.Definition) (value.Value, error) {
	pop := e.pushCallFrame(n, bindings)
	defer pop()

	cur := e.Reg.Current()
	for _, p := range fn.Params {
		if _, ok := cur.Get(p); !ok {
			cur.Bind(p, register.ValueDef{Value: value.NullVal()})
		}
	}

	body, ok := fn.Body.(ast.Stmt)
	if !ok {
		return value.NullVal(), verror.New(n.Span(), "function %s has no body", n.Name)
	}
	result, err := e.Eval(body)
	if err != nil {
		return value.NullVal(), err
	}
	e.Trace.Emit(trace.Event{Kind: "return", Name: n.Name, Depth: e.depth})

	if ret, ok := result.(value.ReturnValue); ok {
		return ret.Inner, nil
	}
	// A function whose body ran to completion without a return
	// statement produces Null, not whatever its last statement
	// evaluated to: only `return` propagates a useful value.
	return value.NullVal(), nil
}
