// Package verror is the evaluator's error type.
//
// The teacher's verror carries a rich Category/Code/ID/Args/Near/Where
// taxonomy for a general-purpose language with many distinct failure
// modes. This interpreter collapses that to the single error kind the
// evaluation core actually needs to report: a NASL script failure,
// always carrying the source Span where it happened and a human-readable
// reason. Anything needing more structure (exit codes, HTTP status,
// whatever a host wants) belongs at the host's boundary, not here.
package verror

import (
	"fmt"

	"github.com/greenbone/nasl-go/internal/ast"
)

// Error is the one error kind the evaluation core raises.
type Error struct {
	Reason string
	Span   ast.Span
}

func (e *Error) Error() string {
	return e.Reason
}

// New constructs an Error at span with a formatted reason.
func New(span ast.Span, format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...), Span: span}
}

// Wrap attaches span to an existing error's message, preserving its text.
func Wrap(span ast.Span, err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Reason: err.Error(), Span: span}
}
