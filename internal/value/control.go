package value

import "fmt"

// ReturnValue wraps exactly one non-control value. Nested Return(Return(_))
// never occurs: callers that produce a Return unwrap any inner Return first
// (see eval's function-body handling), so RetVal never re-wraps one.
type ReturnValue struct {
	Inner Value
}

// RetVal constructs a Return sentinel. If v is itself a Return, its inner
// value is used instead, preserving the "never nested" invariant.
func RetVal(v Value) Value {
	if r, ok := v.(ReturnValue); ok {
		return r
	}
	return ReturnValue{Inner: v}
}

func (r ReturnValue) Kind() Kind     { return KindReturn }
func (r ReturnValue) String() string { return fmt.Sprintf("return(%s)", r.Inner.String()) }
func (r ReturnValue) Bool() bool     { return r.Inner.Bool() }
func (r ReturnValue) Int() int32     { return r.Inner.Int() }
func (r ReturnValue) Seq() []Value   { return r.Inner.Seq() }

// BreakValue and ContinueValue are payload-free control sentinels.
type BreakValue struct{}
type ContinueValue struct{}

var (
	breakSingleton    = BreakValue{}
	continueSingleton = ContinueValue{}
)

// BreakVal returns the singleton Break sentinel.
func BreakVal() Value { return breakSingleton }

// ContinueVal returns the singleton Continue sentinel.
func ContinueVal() Value { return continueSingleton }

func (BreakValue) Kind() Kind     { return KindBreak }
func (BreakValue) String() string { return "" }
func (BreakValue) Bool() bool     { return false }
func (BreakValue) Int() int32     { return 0 }
func (BreakValue) Seq() []Value   { return nil }

func (ContinueValue) Kind() Kind     { return KindContinue }
func (ContinueValue) String() string { return "" }
func (ContinueValue) Bool() bool     { return false }
func (ContinueValue) Int() int32     { return 0 }
func (ContinueValue) Seq() []Value   { return nil }

// ExitValue carries the exit code a script requested.
type ExitValue struct {
	Code int32
}

// ExitVal constructs an Exit sentinel.
func ExitVal(code int32) Value { return ExitValue{Code: code} }

func (e ExitValue) Kind() Kind     { return KindExit }
func (e ExitValue) String() string { return fmt.Sprintf("exit(%s)", formatInt(e.Code)) }
func (e ExitValue) Bool() bool     { return e.Code != 0 }
func (e ExitValue) Int() int32     { return e.Code }
func (e ExitValue) Seq() []Value   { return nil }
