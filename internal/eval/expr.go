package eval

import (
	"regexp"
	"strings"

	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/value"
	"github.com/greenbone/nasl-go/internal/verror"
)

// evalOperator evaluates every operand left to right, then applies the
// operator (spec.md §4.D), including the prefix/postfix ++/-- forms the
// parser encodes as unary operators ("u++", "p--", ...) over an
// assignable operand.
func (e *Evaluator) evalOperator(n *ast.Operator) (value.Value, error) {
	switch n.Symbol {
	case "u++", "u--", "p++", "p--":
		return e.evalIncDec(n)
	}

	operands := make([]value.Value, len(n.Operands))
	for i, o := range n.Operands {
		v, err := e.Eval(o)
		if err != nil {
			return value.NullVal(), err
		}
		operands[i] = v
	}

	switch n.Symbol {
	case "u-":
		return value.NumVal(-operands[0].Int()), nil
	case "u+":
		return value.NumVal(operands[0].Int()), nil
	case "u!":
		return value.BoolVal(!operands[0].Bool()), nil
	case "u~":
		return value.NumVal(^operands[0].Int()), nil
	}

	a, b := operands[0], operands[1]
	switch n.Symbol {
	case "+":
		if a.Kind() == value.KindString || b.Kind() == value.KindString {
			return value.StrVal(a.String() + b.String()), nil
		}
		return value.NumVal(a.Int() + b.Int()), nil
	case "-":
		return value.NumVal(a.Int() - b.Int()), nil
	case "*":
		return value.NumVal(a.Int() * b.Int()), nil
	case "/":
		if b.Int() == 0 {
			return value.NumVal(0), nil
		}
		return value.NumVal(a.Int() / b.Int()), nil
	case "%":
		if b.Int() == 0 {
			return value.NumVal(0), nil
		}
		return value.NumVal(a.Int() % b.Int()), nil
	case "**":
		return value.NumVal(intPow(a.Int(), b.Int())), nil
	case "&":
		return value.NumVal(a.Int() & b.Int()), nil
	case "|":
		return value.NumVal(a.Int() | b.Int()), nil
	case "^":
		return value.NumVal(a.Int() ^ b.Int()), nil
	case "<<":
		return value.NumVal(a.Int() << uint32(b.Int())), nil
	case ">>":
		return value.NumVal(a.Int() >> uint32(b.Int())), nil
	case "&&":
		return value.BoolVal(a.Bool() && b.Bool()), nil
	case "||":
		return value.BoolVal(a.Bool() || b.Bool()), nil
	case "==":
		return value.BoolVal(valuesEqual(a, b)), nil
	case "!=":
		return value.BoolVal(!valuesEqual(a, b)), nil
	case "<":
		return value.BoolVal(compareValues(a, b) < 0), nil
	case ">":
		return value.BoolVal(compareValues(a, b) > 0), nil
	case "<=":
		return value.BoolVal(compareValues(a, b) <= 0), nil
	case ">=":
		return value.BoolVal(compareValues(a, b) >= 0), nil
	case "=~":
		return matchRegex(a, b, true)
	case "!~":
		return matchRegex(a, b, false)
	default:
		return value.NullVal(), verror.New(n.Span(), "unknown operator %q", n.Symbol)
	}
}

func intPow(base, exp int32) int32 {
	if exp < 0 {
		return 0
	}
	var r int32 = 1
	for i := int32(0); i < exp; i++ {
		r *= base
	}
	return r
}

func valuesEqual(a, b value.Value) bool {
	if a.Kind() == value.KindString || b.Kind() == value.KindString {
		return a.String() == b.String()
	}
	return a.Int() == b.Int()
}

func compareValues(a, b value.Value) int {
	if a.Kind() == value.KindString || b.Kind() == value.KindString {
		return strings.Compare(a.String(), b.String())
	}
	switch {
	case a.Int() < b.Int():
		return -1
	case a.Int() > b.Int():
		return 1
	default:
		return 0
	}
}

func matchRegex(a, b value.Value, want bool) (value.Value, error) {
	re, err := regexp.Compile(b.String())
	if err != nil {
		return value.NullVal(), err
	}
	return value.BoolVal(re.MatchString(a.String()) == want), nil
}

// evalIncDec handles ++/-- on a Variable or ArrayIndex target, returning
// the pre- or post-update value per the prefix/postfix distinction.
func (e *Evaluator) evalIncDec(n *ast.Operator) (value.Value, error) {
	target := n.Operands[0]
	old, err := e.Eval(target)
	if err != nil {
		return value.NullVal(), err
	}
	delta := int32(1)
	if n.Symbol == "u--" || n.Symbol == "p--" {
		delta = -1
	}
	updated := value.NumVal(old.Int() + delta)
	if err := e.assignTo(target, updated); err != nil {
		return value.NullVal(), err
	}
	if n.Symbol == "u++" || n.Symbol == "u--" {
		return updated, nil
	}
	return old, nil
}
