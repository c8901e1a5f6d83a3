package parse_test

import (
	"testing"

	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/parse"
)

func parseAll(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	p := parse.New(src)
	var out []ast.Stmt
	for {
		s, err := p.Next()
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if _, ok := s.(*ast.EoF); ok {
			break
		}
		out = append(out, s)
	}
	return out
}

func TestParsesAssignment(t *testing.T) {
	stmts := parseAll(t, `x = 1 + 2 * 3;`)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	assign, ok := stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmts[0])
	}
	op, ok := assign.Value.(*ast.Operator)
	if !ok || op.Symbol != "+" {
		t.Fatalf("expected top-level '+' for precedence, got %#v", assign.Value)
	}
}

func TestParsesIfElse(t *testing.T) {
	stmts := parseAll(t, `if (x) y = 1; else y = 2;`)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	ifStmt, ok := stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", stmts[0])
	}
	if ifStmt.Else == nil {
		t.Errorf("expected Else branch to be parsed")
	}
}

func TestParsesFunctionDeclaration(t *testing.T) {
	stmts := parseAll(t, `function f(a, b) { return a; }`)
	fn, ok := stmts[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", stmts[0])
	}
	if len(fn.Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParsesNamedAndPositionalArgs(t *testing.T) {
	stmts := parseAll(t, `f(1, b: 2);`)
	call, ok := stmts[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", stmts[0])
	}
	params := call.Arguments.(*ast.Parameter)
	if len(params.Elements) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(params.Elements))
	}
	if _, ok := params.Elements[0].(*ast.Primitive); !ok {
		t.Errorf("expected first argument to be a bare Primitive, got %T", params.Elements[0])
	}
	named, ok := params.Elements[1].(*ast.NamedParameter)
	if !ok || named.Name != "b" {
		t.Errorf("expected second argument to be NamedParameter b, got %#v", params.Elements[1])
	}
}

func TestParsesArrayIndexing(t *testing.T) {
	stmts := parseAll(t, `a[1] = 2;`)
	assign, ok := stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmts[0])
	}
	idx, ok := assign.Target.(*ast.ArrayIndex)
	if !ok || idx.Name != "a" {
		t.Fatalf("expected ArrayIndex target, got %#v", assign.Target)
	}
}

func TestParsesHexAndOctalNumbers(t *testing.T) {
	stmts := parseAll(t, `x = 0xff; y = 017;`)
	assign := stmts[0].(*ast.Assign)
	num := assign.Value.(*ast.Primitive)
	if num.Base != 16 || num.Text != "ff" {
		t.Errorf("got base=%d text=%q, want base=16 text=\"ff\"", num.Base, num.Text)
	}
	oct := stmts[1].(*ast.Assign).Value.(*ast.Primitive)
	if oct.Base != 8 || oct.Text != "17" {
		t.Errorf("got base=%d text=%q, want base=8 text=\"17\"", oct.Base, oct.Text)
	}
}

func TestParsesForLoop(t *testing.T) {
	stmts := parseAll(t, `for (i = 0; i < 5; i = i + 1) x = x + i;`)
	forStmt, ok := stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", stmts[0])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Step == nil || forStmt.Body == nil {
		t.Errorf("expected all four For clauses to be populated")
	}
}

func TestParsesRepeatUntil(t *testing.T) {
	stmts := parseAll(t, `repeat { x = x + 1; } until x >= 3;`)
	rep, ok := stmts[0].(*ast.Repeat)
	if !ok {
		t.Fatalf("expected *ast.Repeat, got %T", stmts[0])
	}
	if rep.Cond == nil {
		t.Errorf("expected Until condition to be populated")
	}
}

func TestParsesIncludeAlwaysParsesSuccessfully(t *testing.T) {
	stmts := parseAll(t, `include("foo.inc");`)
	inc, ok := stmts[0].(*ast.Include)
	if !ok || inc.Path != "foo.inc" {
		t.Fatalf("expected Include(foo.inc), got %#v", stmts[0])
	}
}
