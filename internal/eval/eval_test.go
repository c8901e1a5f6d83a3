package eval_test

import (
	"testing"

	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/eval"
	"github.com/greenbone/nasl-go/internal/kb"
	"github.com/greenbone/nasl-go/internal/nativefuncs"
	"github.com/greenbone/nasl-go/internal/parse"
	"github.com/greenbone/nasl-go/internal/trace"
	"github.com/greenbone/nasl-go/internal/value"
)

// run evaluates src to completion and returns every top-level result in
// order, failing the test on the first error.
func run(t *testing.T, src string) []value.Value {
	t.Helper()
	p := parse.New(src)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	var results []value.Value
	for v, err := range interp.Results() {
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
		results = append(results, v)
	}
	return results
}

func last(t *testing.T, src string) value.Value {
	t.Helper()
	rs := run(t, src)
	if len(rs) == 0 {
		t.Fatalf("no results for %q", src)
	}
	return rs[len(rs)-1]
}

// Positional call arguments feed _FCT_ANON_ARGS only; they never bind to
// a user function's declared parameter names. Calling without matching
// named arguments leaves every declared parameter defaulted to Null, per
// original_source's default_null_on_user_defined_functions behavior.
func TestScenarioDefaultNullOnUserDefinedFunctions(t *testing.T) {
	v := last(t, `
function f(a, b) {
  return a + b;
}
f(1, 2);
`)
	if v.Kind() != value.KindNumber || v.Int() != 0 {
		t.Errorf("got %v, want 0 (a and b both default to Null)", v)
	}
}

func TestScenarioNamedArgumentsBindParameters(t *testing.T) {
	v := last(t, `
function f(a, b) {
  return a + b;
}
f(a: 1, b: 2);
`)
	if v.Kind() != value.KindNumber || v.Int() != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestScenarioFctAnonArgs(t *testing.T) {
	v := last(t, `
function f() {
  return _FCT_ANON_ARGS[1];
}
f(10, 20, 30);
`)
	if v.Int() != 20 {
		t.Errorf("got %v, want 20", v)
	}
}

func TestScenarioForLoop(t *testing.T) {
	v := last(t, `
x = 0;
for (i = 0; i < 5; i = i + 1) {
  x = x + i;
}
x;
`)
	if v.Int() != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestScenarioWhileLoop(t *testing.T) {
	v := last(t, `
x = 0;
i = 0;
while (i < 3) {
  x = x + 1;
  i = i + 1;
}
x;
`)
	if v.Int() != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestScenarioRepeatLoop(t *testing.T) {
	v := last(t, `
x = 0;
repeat {
  x = x + 1;
} until x >= 4;
x;
`)
	if v.Int() != 4 {
		t.Errorf("got %v, want 4", v)
	}
}

func TestScenarioForEachLoop(t *testing.T) {
	v := last(t, `
sum = 0;
foreach n (make_list(1, 2, 3)) {
  sum = sum + n;
}
sum;
`)
	if v.Int() != 6 {
		t.Errorf("got %v, want 6", v)
	}
}

func TestScenarioControlFlowBreakContinue(t *testing.T) {
	v := last(t, `
x = 0;
for (i = 0; i < 10; i = i + 1) {
  if (i == 5) break;
  if (i % 2 == 0) continue;
  x = x + i;
}
x;
`)
	// odd numbers below 5: 1 + 3 = 4
	if v.Int() != 4 {
		t.Errorf("got %v, want 4", v)
	}
}

func TestScenarioReturnFromNestedBlock(t *testing.T) {
	v := last(t, `
function f() {
  if (1) {
    return 42;
  }
  return 0;
}
f();
`)
	if v.Int() != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestScenarioExitShortCircuitsScript(t *testing.T) {
	results := run(t, `
a = 1;
exit(3);
a = 2;
`)
	if len(results) != 2 {
		t.Fatalf("expected exit to stop before the trailing statement, got %d results", len(results))
	}
	if results[1].Kind() != value.KindExit || results[1].Int() != 3 {
		t.Errorf("last result = %v, want exit(3)", results[1])
	}
}

func TestCalleeSeesRootGlobals(t *testing.T) {
	v := last(t, `
function f() {
  return secret;
}
secret = 99;
f();
`)
	// secret is bound at top level, i.e. in the root frame, so a callee
	// whose frame is a root child can read it. That caller locals stay
	// hidden is checked at register level by
	// TestRootChildCannotSeeParentLocals.
	if v.Kind() != value.KindNumber || v.Int() != 99 {
		t.Errorf("got %v, want 99 (root globals are visible to callees)", v)
	}
}

func TestArrayAssignmentGrowsAndPersists(t *testing.T) {
	v := last(t, `
a[2] = 7;
a[2];
`)
	if v.Int() != 7 {
		t.Errorf("got %v, want 7", v)
	}
}

func TestDictAssignmentAndLookup(t *testing.T) {
	v := last(t, `
d["x"] = 5;
d["x"];
`)
	if v.Int() != 5 {
		t.Errorf("got %v, want 5", v)
	}
}

func TestCompoundAssignment(t *testing.T) {
	v := last(t, `
x = 10;
x += 5;
x;
`)
	if v.Int() != 15 {
		t.Errorf("got %v, want 15", v)
	}
}

func TestDoubleQuotedStringEscape(t *testing.T) {
	v := last(t, `"a\nb";`)
	if v.String() != "a\nb" {
		t.Errorf("got %q, want %q", v.String(), "a\nb")
	}
}

func TestSingleQuotedStringIsVerbatim(t *testing.T) {
	v := last(t, `'a\nb';`)
	if v.String() != `a\nb` {
		t.Errorf("got %q, want %q", v.String(), `a\nb`)
	}
}

func TestFrameBalanceAcrossCalls(t *testing.T) {
	p := parse.New(`
function f() { return 1; }
f();
f();
`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	for _, err := range interp.Results() {
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
	}
	if n := interp.Evaluator().Reg.FrameCount(); n != 1 {
		t.Errorf("frame count after script = %d, want 1 (root only)", n)
	}
}

func TestIncludeIsAlwaysAnError(t *testing.T) {
	p := parse.New(`include("foo.inc");`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	_, err, _ := interp.Next()
	if err == nil {
		t.Fatalf("expected include() to error")
	}
}

func TestDeclareIsAlwaysAnError(t *testing.T) {
	p := parse.New(`local_var x;`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	_, err, _ := interp.Next()
	if err == nil {
		t.Fatalf("expected local_var to error")
	}
}

func TestExitWithNonNumberIsAnError(t *testing.T) {
	p := parse.New(`exit("foo");`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	_, err, _ := interp.Next()
	if err == nil {
		t.Fatalf("expected exit(\"foo\") to error")
	}
}

func TestUndefinedVariableIsAnError(t *testing.T) {
	p := parse.New(`nosuchvar;`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	_, err, _ := interp.Next()
	if err == nil {
		t.Fatalf("expected reading an unbound variable to error")
	}
}

func TestArrayIndexOutOfRangeIsAnError(t *testing.T) {
	p := parse.New(`a[0] = 1; a[5];`)
	interp := eval.NewInterpreter(p, "test", nativefuncs.Registry(), kb.New().AsSink(), trace.Discard())
	if _, err, _ := interp.Next(); err != nil {
		t.Fatalf("unexpected error on a[0] = 1: %v", err)
	}
	_, err, _ := interp.Next()
	if err == nil {
		t.Fatalf("expected a[5] to error as out of range")
	}
}

// TestNativeCallReceivesKeyAndRegisterView is grounded on call.rs
// pushing the root-child frame (named args + _FCT_ANON_ARGS) before
// dispatching to a native handler, and invoking it as
// function(self.key, self.storage, &self.registrat): a Handler must
// see the script key and be able to read both a named argument and
// _FCT_ANON_ARGS straight out of the register view it's handed.
func TestNativeCallReceivesKeyAndRegisterView(t *testing.T) {
	var gotKey string
	var gotPositional []value.Value
	var gotNamed value.Value
	registry := builtin.MapRegistry{
		"probe": func(key string, _ builtin.Sink, reg builtin.RegisterView) (value.Value, error) {
			gotKey = key
			gotPositional = builtin.PositionalAll(reg)
			gotNamed = builtin.Named(reg, "label")
			return value.NumVal(1), nil
		},
	}
	p := parse.New(`probe(10, 20, label: "x");`)
	interp := eval.NewInterpreter(p, "script-42", registry, kb.New().AsSink(), trace.Discard())
	if _, err, _ := interp.Next(); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if gotKey != "script-42" {
		t.Errorf("handler saw key %q, want %q", gotKey, "script-42")
	}
	if len(gotPositional) != 2 || gotPositional[0].Int() != 10 || gotPositional[1].Int() != 20 {
		t.Errorf("handler saw positional args %v, want [10, 20]", gotPositional)
	}
	if gotNamed.String() != "x" {
		t.Errorf("handler saw label %v, want %q", gotNamed, "x")
	}
}
