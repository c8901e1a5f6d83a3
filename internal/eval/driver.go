package eval

import (
	"iter"

	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/builtin"
	"github.com/greenbone/nasl-go/internal/trace"
	"github.com/greenbone/nasl-go/internal/value"
)

// statementSource is the narrow interface the Driver needs from a
// parser: one statement at a time, an *ast.EoF marking the end. Kept as
// an interface rather than a concrete *parse.Parser so eval never
// imports parse - the lexer/parser is supporting infrastructure, not
// part of the evaluation core spec.md describes.
type statementSource interface {
	Next() (ast.Stmt, error)
}

// Interpreter drives one script: it pulls statements from a
// statementSource one at a time and evaluates each against a shared
// Evaluator, so top-level state (globals, function definitions)
// persists across the whole run.
type Interpreter struct {
	eval   *Evaluator
	source statementSource
	done   bool
}

// NewInterpreter creates a driver over src using the given built-in
// registry and storage sink. scriptKey identifies the running script to
// every native Handler (spec.md §4.C).
func NewInterpreter(src statementSource, scriptKey string, natives builtin.Registry, sink builtin.Sink, tr *trace.Session) *Interpreter {
	return &Interpreter{eval: New(scriptKey, natives, sink, tr), source: src}
}

// Evaluator exposes the underlying Evaluator, e.g. so a caller can seed
// globals before the first Next() call.
func (d *Interpreter) Evaluator() *Evaluator { return d.eval }

// Next pulls and evaluates the next top-level statement. The trailing
// bool reports whether a statement was actually run. A parse error is
// returned once with false; after it, and once the script is exhausted,
// further calls keep returning (Null, nil, false).
func (d *Interpreter) Next() (value.Value, error, bool) {
	if d.done {
		return value.NullVal(), nil, false
	}
	stmt, err := d.source.Next()
	if err != nil {
		d.done = true
		d.eval.Trace.Emit(trace.Event{Kind: "error", Detail: err.Error()})
		return value.NullVal(), err, false
	}
	if _, isEOF := stmt.(*ast.EoF); isEOF {
		d.done = true
		return value.NullVal(), nil, false
	}
	v, err := d.eval.Eval(stmt)
	if err != nil {
		d.eval.Trace.Emit(trace.Event{Kind: "error", Detail: err.Error()})
		return value.NullVal(), err, true
	}
	if exit, ok := v.(value.ExitValue); ok {
		d.done = true
		return exit, nil, true
	}
	return v, nil, true
}

// Results is a range-over-func iterator over every remaining top-level
// statement's result, for `for v, err := range interp.Results()` callers.
// A parse error is yielded as the final element. It shares the same
// underlying pull as Next and does not restart.
func (d *Interpreter) Results() iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		for {
			v, err, ok := d.Next()
			if !ok {
				if err != nil {
					yield(v, err)
				}
				return
			}
			if !yield(v, err) {
				return
			}
		}
	}
}
