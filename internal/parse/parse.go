// Package parse is a recursive-descent parser turning a tokenize.Lexer
// stream into the ast.Stmt tree internal/eval consumes.
//
// Structured like the teacher's internal/parse package: one Parser per
// script, a single token of lookahead, and a precedence-climbing
// expression parser rather than a generated grammar, because NASL's
// operator set is small and fixed.
package parse

import (
	"fmt"

	"github.com/greenbone/nasl-go/internal/ast"
	"github.com/greenbone/nasl-go/internal/tokenize"
)

// Parser converts tokens to ast.Stmt nodes.
type Parser struct {
	lex     *tokenize.Lexer
	cur     tokenize.Token
	peek    tokenize.Token
	prevEnd int
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{lex: tokenize.New(src)}
	p.cur = p.lex.Next()
	p.peek = p.lex.Next()
	return p
}

func (p *Parser) advance() tokenize.Token {
	t := p.cur
	p.prevEnd = t.End
	p.cur = p.peek
	p.peek = p.lex.Next()
	return t
}

func (p *Parser) span(start int) ast.Span {
	return ast.Span{Start: start, End: p.prevEnd, Line: p.cur.Line}
}

func (p *Parser) atEOF() bool { return p.cur.Kind == tokenize.EOF }

func (p *Parser) isPunct(s string) bool {
	return p.cur.Kind == tokenize.Punct && p.cur.Text == s
}

func (p *Parser) isKeyword(s string) bool {
	return p.cur.Kind == tokenize.Keyword && p.cur.Text == s
}

func (p *Parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return fmt.Errorf("parse: expected %q, got %q at line %d", s, p.cur.Text, p.cur.Line)
	}
	p.advance()
	return nil
}

// Next parses and returns the next top-level statement. Returns an
// *ast.EoF once the input is exhausted, never an error for normal end of
// input.
func (p *Parser) Next() (ast.Stmt, error) {
	if p.atEOF() {
		return ast.NewEoF(p.span(p.cur.Start)), nil
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	start := p.cur.Start
	switch {
	case p.isPunct(";"):
		p.advance()
		return ast.NewNoOp(p.span(start)), nil
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("foreach"):
		return p.parseForEach()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("repeat"):
		return p.parseRepeat()
	case p.isKeyword("function"):
		return p.parseFunctionDecl()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("exit"):
		return p.parseExit()
	case p.isKeyword("break"):
		p.advance()
		s := ast.NewBreak(p.span(start))
		p.skipSemi()
		return s, nil
	case p.isKeyword("continue"):
		p.advance()
		s := ast.NewContinue(p.span(start))
		p.skipSemi()
		return s, nil
	case p.isKeyword("include"):
		return p.parseInclude()
	case p.isKeyword("local_var"), p.isKeyword("global_var"):
		return p.parseDeclare()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSemi()
		return expr, nil
	}
}

func (p *Parser) skipSemi() {
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	start := p.cur.Start
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.isPunct("}") && !p.atEOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return ast.NewBlock(p.span(start), stmts), nil
}

func (p *Parser) parseParenExpr() (ast.Stmt, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.isKeyword("else") {
		p.advance()
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(p.span(start), cond, then, els), nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	step, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(p.span(start), init, cond, step, body), nil
}

func (p *Parser) parseForEach() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	if p.cur.Kind != tokenize.Ident {
		return nil, fmt.Errorf("parse: foreach expects a variable name at line %d", p.cur.Line)
	}
	name := p.advance().Text
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewForEach(p.span(start), name, iter, body), nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(p.span(start), cond, body), nil
}

func (p *Parser) parseRepeat() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("until") {
		return nil, fmt.Errorf("parse: expected 'until' at line %d", p.cur.Line)
	}
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSemi()
	return ast.NewRepeat(p.span(start), body, cond), nil
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	if p.cur.Kind != tokenize.Ident {
		return nil, fmt.Errorf("parse: expected function name at line %d", p.cur.Line)
	}
	name := p.advance().Text
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []ast.Stmt
	for !p.isPunct(")") {
		if p.cur.Kind != tokenize.Ident {
			return nil, fmt.Errorf("parse: expected parameter name at line %d", p.cur.Line)
		}
		pstart := p.cur.Start
		pname := p.advance().Text
		params = append(params, ast.NewVariable(p.span(pstart), pname))
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(p.span(start), name, params, body), nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	var expr ast.Stmt
	if !p.isPunct(";") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	p.skipSemi()
	return ast.NewReturn(p.span(start), expr), nil
}

func (p *Parser) parseExit() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var expr ast.Stmt
	if !p.isPunct(")") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	p.skipSemi()
	return ast.NewExit(p.span(start), expr), nil
}

func (p *Parser) parseInclude() (ast.Stmt, error) {
	start := p.cur.Start
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	if p.cur.Kind != tokenize.UnquotedString {
		return nil, fmt.Errorf("parse: include expects a quoted string path at line %d", p.cur.Line)
	}
	path := p.advance().Text
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	p.skipSemi()
	return ast.NewInclude(p.span(start), path), nil
}

func (p *Parser) parseDeclare() (ast.Stmt, error) {
	start := p.cur.Start
	kind := p.advance().Text
	var names []string
	for {
		if p.cur.Kind != tokenize.Ident {
			return nil, fmt.Errorf("parse: expected variable name at line %d", p.cur.Line)
		}
		names = append(names, p.advance().Text)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	p.skipSemi()
	return ast.NewDeclare(p.span(start), kind, names), nil
}

// --- expressions, precedence-climbing ---

var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6, "=~": 6, "!~": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10, "**": 11,
}

var assignOps = map[string]ast.AssignOp{
	"=": ast.AssignSet, "+=": ast.AssignAdd, "-=": ast.AssignSub,
	"*=": ast.AssignMul, "/=": ast.AssignDiv, "%=": ast.AssignMod,
	"&=": ast.AssignAnd, "|=": ast.AssignOr, "^=": ast.AssignXor,
	"<<=": ast.AssignShl, ">>=": ast.AssignShr,
}

func (p *Parser) parseExpr() (ast.Stmt, error) {
	return p.parseAssign()
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	start := p.cur.Start
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == tokenize.Punct {
		if op, ok := assignOps[p.cur.Text]; ok {
			if !isAssignable(left) {
				return nil, fmt.Errorf("parse: invalid assignment target at line %d", p.cur.Line)
			}
			p.advance()
			val, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			return ast.NewAssign(p.span(start), op, left, val), nil
		}
	}
	return left, nil
}

func isAssignable(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.Variable, *ast.ArrayIndex:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBinary(minPrec int) (ast.Stmt, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur.Kind != tokenize.Punct {
			return left, nil
		}
		prec, ok := binaryPrecedence[p.cur.Text]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := p.advance().Text
		start := left.Span().Start
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewOperator(p.span(start), op, []ast.Stmt{left, right})
	}
}

func (p *Parser) parseUnary() (ast.Stmt, error) {
	start := p.cur.Start
	if p.cur.Kind == tokenize.Punct {
		switch p.cur.Text {
		case "!", "-", "+", "~", "++", "--":
			op := p.advance().Text
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return ast.NewOperator(p.span(start), "u"+op, []ast.Stmt{operand}), nil
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Stmt, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		start := expr.Span().Start
		switch {
		case p.isPunct("++"), p.isPunct("--"):
			op := p.advance().Text
			expr = ast.NewOperator(p.span(start), "p"+op, []ast.Stmt{expr})
		case p.isPunct("["):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			v, ok := expr.(*ast.Variable)
			if !ok {
				return nil, fmt.Errorf("parse: indexing requires a bare variable at line %d", p.cur.Line)
			}
			expr = ast.NewArrayIndex(p.span(start), v.Name, idx)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Stmt, error) {
	start := p.cur.Start
	switch p.cur.Kind {
	case tokenize.Number:
		tok := p.advance()
		return ast.NewPrimitive(p.span(start), ast.PrimNumber, tok.Text, tok.Base), nil
	case tokenize.QuotedString:
		tok := p.advance()
		return ast.NewPrimitive(p.span(start), ast.PrimQuotedString, tok.Text, 0), nil
	case tokenize.UnquotedString:
		tok := p.advance()
		return ast.NewPrimitive(p.span(start), ast.PrimUnquotedString, tok.Text, 0), nil
	case tokenize.AttackCat:
		tok := p.advance()
		return ast.NewAttackCategory(p.span(start), attackCodes[tok.Text], tok.Text), nil
	case tokenize.Keyword:
		switch p.cur.Text {
		case "true":
			p.advance()
			return ast.NewPrimitive(p.span(start), ast.PrimUnquotedString, "1", 10), nil
		case "false", "NULL":
			p.advance()
			return ast.NewPrimitive(p.span(start), ast.PrimUnquotedString, "", 10), nil
		}
		return nil, fmt.Errorf("parse: unexpected keyword %q at line %d", p.cur.Text, p.cur.Line)
	case tokenize.Ident:
		name := p.advance().Text
		if p.isPunct("(") {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return ast.NewCall(p.span(start), name, args), nil
		}
		return ast.NewVariable(p.span(start), name), nil
	case tokenize.Punct:
		switch p.cur.Text {
		case "(":
			return p.parseParenExpr()
		}
	}
	return nil, fmt.Errorf("parse: unexpected token %q at line %d", p.cur.Text, p.cur.Line)
}

var attackCodes = map[string]int32{
	"ACT_INIT": 0, "ACT_SCANNER": 1, "ACT_SETTINGS": 2,
	"ACT_GATHER_INFO": 3, "ACT_ATTACK": 4, "ACT_MIXED_ATTACK": 5,
	"ACT_DESTRUCTIVE_ATTACK": 6, "ACT_DENIAL": 7, "ACT_KILL_HOST": 8,
	"ACT_FLOOD": 9, "ACT_END": 10,
}

// parseArgList parses `(` [ arg (, arg)* ] `)` where arg is either a bare
// expression or `name: expression`.
func (p *Parser) parseArgList() (ast.Stmt, error) {
	start := p.cur.Start
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var elems []ast.Stmt
	for !p.isPunct(")") {
		e, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.NewParameter(p.span(start), elems), nil
}

func (p *Parser) parseArg() (ast.Stmt, error) {
	start := p.cur.Start
	if p.cur.Kind == tokenize.Ident && p.peek.Kind == tokenize.Punct && p.peek.Text == ":" {
		name := p.advance().Text
		p.advance() // ':'
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewNamedParameter(p.span(start), name, val), nil
	}
	return p.parseExpr()
}
