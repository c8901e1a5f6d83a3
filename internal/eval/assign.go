package eval

import (
	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/register"
	"github.com/greenbone/nasl-go/internal/value"
	"github.com/greenbone/nasl-go/internal/verror"
)

// evalAssign evaluates the right-hand side, applies the compound
// operator against the current value of Target if needed, then writes
// the result back via assignTo.
func (e *Evaluator) evalAssign(n *ast.Assign) (value.Value, error) {
	rhs, err := e.Eval(n.Value)
	if err != nil {
		return value.NullVal(), err
	}

	result := rhs
	if n.Op != ast.AssignSet {
		cur, err := e.Eval(n.Target)
		if err != nil {
			return value.NullVal(), err
		}
		result = applyCompound(n.Op, cur, rhs)
	}

	if err := e.assignTo(n.Target, result); err != nil {
		return value.NullVal(), err
	}
	return result, nil
}

func applyCompound(op ast.AssignOp, cur, rhs value.Value) value.Value {
	switch op {
	case ast.AssignAdd:
		if cur.Kind() == value.KindString || rhs.Kind() == value.KindString {
			return value.StrVal(cur.String() + rhs.String())
		}
		return value.NumVal(cur.Int() + rhs.Int())
	case ast.AssignSub:
		return value.NumVal(cur.Int() - rhs.Int())
	case ast.AssignMul:
		return value.NumVal(cur.Int() * rhs.Int())
	case ast.AssignDiv:
		if rhs.Int() == 0 {
			return value.NumVal(0)
		}
		return value.NumVal(cur.Int() / rhs.Int())
	case ast.AssignMod:
		if rhs.Int() == 0 {
			return value.NumVal(0)
		}
		return value.NumVal(cur.Int() % rhs.Int())
	case ast.AssignAnd:
		return value.NumVal(cur.Int() & rhs.Int())
	case ast.AssignOr:
		return value.NumVal(cur.Int() | rhs.Int())
	case ast.AssignXor:
		return value.NumVal(cur.Int() ^ rhs.Int())
	case ast.AssignShl:
		return value.NumVal(cur.Int() << uint32(rhs.Int()))
	case ast.AssignShr:
		return value.NumVal(cur.Int() >> uint32(rhs.Int()))
	default:
		return rhs
	}
}

// assignTo writes v into target, which must be a *ast.Variable or
// *ast.ArrayIndex. Indexed targets follow the write-back design resolved
// for this evaluator: Array/Dict WithSet returns a *new* container value
// (read access never aliases interior values), so updating an element
// means re-binding the whole container in whatever frame currently holds
// the name - never mutating a Value in place.
func (e *Evaluator) assignTo(target ast.Stmt, v value.Value) error {
	switch t := target.(type) {
	case *ast.Variable:
		return e.bindVariable(t.Name, v)
	case *ast.ArrayIndex:
		if t.Index == nil {
			return e.bindVariable(t.Name, v)
		}
		return e.assignIndexed(t, v)
	default:
		return verror.New(target.Span(), "invalid assignment target")
	}
}

// bindVariable always writes into the current frame, creating the
// binding there if it's not already present. Unlike an indexed target,
// a plain variable assignment never reaches up the scope chain to
// mutate a binding some ancestor frame holds - it shadows it instead.
func (e *Evaluator) bindVariable(name string, v value.Value) error {
	cur := e.Reg.Current()
	e.Reg.BindAt(cur.Index, name, register.ValueDef{Value: v})
	return nil
}

func (e *Evaluator) assignIndexed(t *ast.ArrayIndex, v value.Value) error {
	_, frameIdx, ok := e.Reg.Lookup(t.Name)
	if !ok {
		// assigning into an as-yet-undeclared name: create an array/dict
		// seeded with this one element, in the current frame.
		frameIdx = e.Reg.Current().Index
	}
	idxVal, err := e.Eval(t.Index)
	if err != nil {
		return err
	}

	existing, _, _ := e.Reg.Lookup(t.Name)
	var container value.Value
	if vd, ok := existing.(register.ValueDef); ok {
		container = vd.Value
	}

	switch c := container.(type) {
	case value.DictValue:
		updated := c.WithSet(idxVal.String(), v)
		e.Reg.BindAt(frameIdx, t.Name, register.ValueDef{Value: updated})
	case value.ArrayValue:
		updated := c.WithSet(idxVal.Int(), v)
		e.Reg.BindAt(frameIdx, t.Name, register.ValueDef{Value: updated})
	default:
		// No existing array/dict (or a non-indexable value): a numeric
		// index starts a fresh array, anything else a fresh dict.
		if idxVal.Kind() == value.KindNumber {
			updated := value.ArrayValue{}.WithSet(idxVal.Int(), v)
			e.Reg.BindAt(frameIdx, t.Name, register.ValueDef{Value: updated})
		} else {
			updated := value.DictValue{}.WithSet(idxVal.String(), v)
			e.Reg.BindAt(frameIdx, t.Name, register.ValueDef{Value: updated})
		}
	}
	return nil
}
