// Package ast defines the statement tree the evaluator consumes.
//
// This is the contract spec.md names but leaves to an external
// lexer/parser: "produces the statement tree consumed by the evaluator.
// Assumed to yield typed statement variants with source spans." The
// evaluator never constructs these nodes itself; internal/parse does.
//
// Each concrete type implements Stmt via the unexported stmtNode marker,
// giving the evaluator a closed set it can switch over exhaustively -
// tagged-union pattern matching rather than virtual dispatch, so adding
// evaluation logic means extending one switch, not hunting through N
// Eval() methods.
package ast

// Span locates a node in the original script text, for error reporting.
type Span struct {
	Start, End int
	Line       int
}

// Stmt is the closed set of statement/expression node kinds the parser
// produces and the evaluator consumes.
type Stmt interface {
	Span() Span
	stmtNode()
}

type base struct {
	span Span
}

func (b base) Span() Span { return b.span }
func (base) stmtNode()    {}

// PrimitiveKind distinguishes how a Primitive's raw text should be
// interpreted (spec §4.D Literal).
type PrimitiveKind uint8

const (
	PrimQuotedString PrimitiveKind = iota
	PrimUnquotedString
	PrimNumber
)

// Primitive is a literal: a quoted/unquoted string or a number, given as
// raw source text plus a base for numbers (10, 16, 8, 2).
type Primitive struct {
	base
	PrimKind PrimitiveKind
	Text     string
	Base     int
}

func NewPrimitive(span Span, kind PrimitiveKind, text string, base_ int) *Primitive {
	return &Primitive{base: base{span}, PrimKind: kind, Text: text, Base: base_}
}

// AttackCategory is a literal attack-category keyword (ACT_*).
type AttackCategory struct {
	base
	Code int32
	Name string
}

func NewAttackCategory(span Span, code int32, name string) *AttackCategory {
	return &AttackCategory{base: base{span}, Code: code, Name: name}
}

// Variable is a bare identifier reference.
type Variable struct {
	base
	Name string
}

func NewVariable(span Span, name string) *Variable { return &Variable{base: base{span}, Name: name} }

// ArrayIndex is name[Index]; Index is nil for a bare (non-indexed) read of
// name, which spec §4.D treats as "return the value" when name is not
// itself indexable.
type ArrayIndex struct {
	base
	Name  string
	Index Stmt
}

func NewArrayIndex(span Span, name string, index Stmt) *ArrayIndex {
	return &ArrayIndex{base: base{span}, Name: name, Index: index}
}

// Parameter is a parenthesized, comma-separated expression list. The
// parser produces it only as a call's argument list; evaluated on its
// own it yields an array of its elements.
type Parameter struct {
	base
	Elements []Stmt
}

func NewParameter(span Span, elems []Stmt) *Parameter {
	return &Parameter{base: base{span}, Elements: elems}
}

// NamedParameter is `name: value` inside a call's argument list.
type NamedParameter struct {
	base
	Name  string
	Value Stmt
}

func NewNamedParameter(span Span, name string, val Stmt) *NamedParameter {
	return &NamedParameter{base: base{span}, Name: name, Value: val}
}

// Call is `name(arguments)`, where Arguments is always a *Parameter.
type Call struct {
	base
	Name      string
	Arguments Stmt
}

func NewCall(span Span, name string, args Stmt) *Call {
	return &Call{base: base{span}, Name: name, Arguments: args}
}

// Declare is a scope-declaration statement (e.g. local_var/global_var).
// Its semantics are unspecified by spec.md (an open question, like
// Include) and evaluating one is always a script error.
type Declare struct {
	base
	Kind  string
	Names []string
}

func NewDeclare(span Span, kind string, names []string) *Declare {
	return &Declare{base: base{span}, Kind: kind, Names: names}
}

// AssignOp identifies a simple or compound assignment operator.
type AssignOp uint8

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

// Assign is `target op= value`. Target is a *Variable or *ArrayIndex.
type Assign struct {
	base
	Op     AssignOp
	Target Stmt
	Value  Stmt
}

func NewAssign(span Span, op AssignOp, target, val Stmt) *Assign {
	return &Assign{base: base{span}, Op: op, Target: target, Value: val}
}

// Operator is a unary or binary operator application over Operands,
// evaluated left-to-right before the operator is applied (spec §4.D).
type Operator struct {
	base
	Symbol   string
	Operands []Stmt
}

func NewOperator(span Span, symbol string, operands []Stmt) *Operator {
	return &Operator{base: base{span}, Symbol: symbol, Operands: operands}
}

// If is `if (Cond) Then [else Else]`.
type If struct {
	base
	Cond Stmt
	Then Stmt
	Else Stmt
}

func NewIf(span Span, cond, then, els Stmt) *If {
	return &If{base: base{span}, Cond: cond, Then: then, Else: els}
}

// Block is a `{ ... }` sequence of statements evaluated in order.
type Block struct {
	base
	Stmts []Stmt
}

func NewBlock(span Span, stmts []Stmt) *Block { return &Block{base: base{span}, Stmts: stmts} }

// For is `for (Init; Cond; Step) Body`.
type For struct {
	base
	Init Stmt
	Cond Stmt
	Step Stmt
	Body Stmt
}

func NewFor(span Span, init, cond, step, body Stmt) *For {
	return &For{base: base{span}, Init: init, Cond: cond, Step: step, Body: body}
}

// While is `while (Cond) Body`.
type While struct {
	base
	Cond Stmt
	Body Stmt
}

func NewWhile(span Span, cond, body Stmt) *While { return &While{base: base{span}, Cond: cond, Body: body} }

// Repeat is `Body until Cond` (test-after loop).
type Repeat struct {
	base
	Body Stmt
	Cond Stmt
}

func NewRepeat(span Span, body, cond Stmt) *Repeat {
	return &Repeat{base: base{span}, Body: body, Cond: cond}
}

// ForEach is `foreach Variable (Iterable) Body`.
type ForEach struct {
	base
	Variable string
	Iterable Stmt
	Body     Stmt
}

func NewForEach(span Span, variable string, iterable, body Stmt) *ForEach {
	return &ForEach{base: base{span}, Variable: variable, Iterable: iterable, Body: body}
}

// FunctionDeclaration is `function Name(Params) Body`.
type FunctionDeclaration struct {
	base
	Name   string
	Params []Stmt
	Body   Stmt
}

func NewFunctionDeclaration(span Span, name string, params []Stmt, body Stmt) *FunctionDeclaration {
	return &FunctionDeclaration{base: base{span}, Name: name, Params: params, Body: body}
}

// Return is `return Expr;`.
type Return struct {
	base
	Expr Stmt
}

func NewReturn(span Span, expr Stmt) *Return { return &Return{base: base{span}, Expr: expr} }

// Exit is `exit(Expr);`.
type Exit struct {
	base
	Expr Stmt
}

func NewExit(span Span, expr Stmt) *Exit { return &Exit{base: base{span}, Expr: expr} }

// Break, Continue, NoOp, EoF, Include are payload-free (or near enough).
type Break struct{ base }

func NewBreak(span Span) *Break { return &Break{base{span}} }

type Continue struct{ base }

func NewContinue(span Span) *Continue { return &Continue{base{span}} }

type NoOp struct{ base }

func NewNoOp(span Span) *NoOp { return &NoOp{base{span}} }

type EoF struct{ base }

func NewEoF(span Span) *EoF { return &EoF{base{span}} }

// Include is parsed but, per spec.md §9 Open Questions, its semantics
// (inline vs. separate evaluation, symbol import rules) are left
// unspecified; evaluating one is always a script error.
type Include struct {
	base
	Path string
}

func NewInclude(span Span, path string) *Include { return &Include{base: base{span}, Path: path} }
