package eval

import (
	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/register"
	"github.com/greenbone/nasl-go/internal/value"
	"github.com/greenbone/nasl-go/internal/verror"
)

// evalBlock evaluates statements in order, stopping the moment any one
// of them produces a control-flow sentinel (Return/Break/Continue/Exit)
// and propagating that sentinel as the block's own result - the
// short-circuiting the Block arm in original_source's interpreter.rs
// performs, checked here with value.Kind's IsControl rather than a Rust
// enum match.
func (e *Evaluator) evalBlock(n *ast.Block) (value.Value, error) {
	result := value.Value(value.NullVal())
	for _, s := range n.Stmts {
		v, err := e.Eval(s)
		if err != nil {
			return value.NullVal(), err
		}
		result = v
		if result.Kind().IsControl() {
			return result, nil
		}
	}
	return result, nil
}

func (e *Evaluator) evalIf(n *ast.If) (value.Value, error) {
	cond, err := e.Eval(n.Cond)
	if err != nil {
		return value.NullVal(), err
	}
	if cond.Bool() {
		return e.Eval(n.Then)
	}
	if n.Else != nil {
		return e.Eval(n.Else)
	}
	return value.NullVal(), nil
}

// loopDecision normalizes a loop body's result into a loopAction: Break/Continue are
// consumed by the loop itself and never propagate past it; Return/Exit
// always do; anything else just means "keep looping".
type loopAction int

const (
	loopContinue loopAction = iota
	loopBreak
	loopPropagate
)

func loopDecision(v value.Value) (loopAction, value.Value) {
	switch v.Kind() {
	case value.KindBreak:
		return loopBreak, value.NullVal()
	case value.KindContinue:
		return loopContinue, value.NullVal()
	case value.KindReturn, value.KindExit:
		return loopPropagate, v
	default:
		return loopContinue, value.NullVal()
	}
}

func (e *Evaluator) evalFor(n *ast.For) (value.Value, error) {
	if _, err := e.Eval(n.Init); err != nil {
		return value.NullVal(), err
	}
	for {
		cond, err := e.Eval(n.Cond)
		if err != nil {
			return value.NullVal(), err
		}
		if !cond.Bool() {
			return value.NullVal(), nil
		}
		bodyResult, err := e.Eval(n.Body)
		if err != nil {
			return value.NullVal(), err
		}
		action, propagated := loopDecision(bodyResult)
		if action == loopBreak {
			return value.NullVal(), nil
		}
		if action == loopPropagate {
			return propagated, nil
		}
		if _, err := e.Eval(n.Step); err != nil {
			return value.NullVal(), err
		}
	}
}

func (e *Evaluator) evalWhile(n *ast.While) (value.Value, error) {
	for {
		cond, err := e.Eval(n.Cond)
		if err != nil {
			return value.NullVal(), err
		}
		if !cond.Bool() {
			return value.NullVal(), nil
		}
		bodyResult, err := e.Eval(n.Body)
		if err != nil {
			return value.NullVal(), err
		}
		action, propagated := loopDecision(bodyResult)
		if action == loopBreak {
			return value.NullVal(), nil
		}
		if action == loopPropagate {
			return propagated, nil
		}
	}
}

// evalRepeat is a test-after loop: the body always runs at least once,
// then Cond decides whether to stop (spec: "Body until Cond").
func (e *Evaluator) evalRepeat(n *ast.Repeat) (value.Value, error) {
	for {
		bodyResult, err := e.Eval(n.Body)
		if err != nil {
			return value.NullVal(), err
		}
		action, propagated := loopDecision(bodyResult)
		if action == loopBreak {
			return value.NullVal(), nil
		}
		if action == loopPropagate {
			return propagated, nil
		}
		cond, err := e.Eval(n.Cond)
		if err != nil {
			return value.NullVal(), err
		}
		if cond.Bool() {
			return value.NullVal(), nil
		}
	}
}

// evalForEach binds Variable to each element of Iterable's sequence
// coercion in turn (spec §4.D "to sequence" rules apply to the iterable
// itself - Array/Dict/String/Number/Null all define one).
func (e *Evaluator) evalForEach(n *ast.ForEach) (value.Value, error) {
	iterable, err := e.Eval(n.Iterable)
	if err != nil {
		return value.NullVal(), err
	}
	for _, elem := range iterable.Seq() {
		if err := e.bindForEachVar(n.Variable, elem); err != nil {
			return value.NullVal(), err
		}
		bodyResult, err := e.Eval(n.Body)
		if err != nil {
			return value.NullVal(), err
		}
		action, propagated := loopDecision(bodyResult)
		if action == loopBreak {
			return value.NullVal(), nil
		}
		if action == loopPropagate {
			return propagated, nil
		}
	}
	return value.NullVal(), nil
}

func (e *Evaluator) bindForEachVar(name string, v value.Value) error {
	cur := e.Reg.Current()
	e.Reg.BindAt(cur.Index, name, register.ValueDef{Value: v})
	return nil
}

func (e *Evaluator) evalReturn(n *ast.Return) (value.Value, error) {
	if n.Expr == nil {
		return value.RetVal(value.NullVal()), nil
	}
	v, err := e.Eval(n.Expr)
	if err != nil {
		return value.NullVal(), err
	}
	return value.RetVal(v), nil
}

func (e *Evaluator) evalExit(n *ast.Exit) (value.Value, error) {
	if n.Expr == nil {
		return value.ExitVal(0), nil
	}
	v, err := e.Eval(n.Expr)
	if err != nil {
		return value.NullVal(), err
	}
	if v.Kind() != value.KindNumber {
		return value.NullVal(), verror.New(n.Span(), "expected numeric value")
	}
	return value.ExitVal(v.Int()), nil
}
