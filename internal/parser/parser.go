package parser

import (
	"fmt"
	"strconv"

	"github.com/kolkov/stepl/internal/ast"
	"github.com/kolkov/stepl/internal/lexer"
	"github.com/kolkov/stepl/internal/token"
)

// tokenName returns a human-readable name for a token type, used to
// build "expected X, got Y" diagnostics.
func tokenName(t token.Token) string {
	switch t {
	case token.ILLEGAL:
		return "illegal token"
	case token.ENDMARKER:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASHSL:
		return "//"
	case token.ASSIGN:
		return "="
	case token.LESS:
		return "<"
	case token.LTE:
		return "<="
	case token.GREATER:
		return ">"
	case token.GTE:
		return ">="
	case token.EQUALS:
		return "=="
	case token.NOT_EQ:
		return "!="
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LBRACKET:
		return "["
	case token.RBRACKET:
		return "]"
	case token.COLON:
		return ":"
	case token.DOT:
		return "."
	case token.COMMA:
		return ","
	case token.IF:
		return "if"
	case token.ELIF:
		return "elif"
	case token.ELSE:
		return "else"
	case token.WHILE:
		return "while"
	case token.BREAK:
		return "break"
	case token.CONTINUE:
		return "continue"
	case token.LIST:
		return "list"
	case token.PRINT:
		return "print"
	case token.APPEND:
		return "append"
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.NOT:
		return "not"
	case token.TRUE:
		return "True"
	case token.FALSE:
		return "False"
	case token.NUMBER:
		return "number"
	case token.NAME:
		return "name"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// Parser is a recursive-descent parser. It halts at the first syntax
// error, matching the language's single-fatal-diagnostic error model:
// a halting parse is reported via panic/recover rather than threaded
// error returns through every parse* method.
type Parser struct {
	lexer *lexer.Lexer
	tok   lexer.Token
}

// haltParse is the panic payload used to unwind out of a deeply nested
// parse on the first syntax error.
type haltParse struct {
	err *ParseError
}

// Parse parses a complete program from source text.
func Parse(src []byte) (prog *ast.Program, err error) {
	p := &Parser{lexer: lexer.New(src)}

	defer func() {
		if r := recover(); r != nil {
			hp, ok := r.(haltParse)
			if !ok {
				panic(r)
			}
			err = hp.err
		}
	}()

	p.next()
	prog = p.parseProgram()
	return prog, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token. A lexical error (ILLEGAL) halts
// parsing immediately with the lexer's own bare message, rather than
// being allowed to reach a parse* method and get re-wrapped in an
// "unexpected token" diagnostic.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
	if p.tok.Type == token.ILLEGAL {
		p.halt(p.tok.Pos, "%s", p.tok.Value)
	}
}

func (p *Parser) check(tok token.Token) bool {
	return p.tok.Type == tok
}

// match advances and returns true if the current token is tok.
func (p *Parser) match(tok token.Token) bool {
	if p.check(tok) {
		p.next()
		return true
	}
	return false
}

// expect requires the current token to be tok, consuming it. It halts
// parsing with a ParseError otherwise.
func (p *Parser) expect(tok token.Token) lexer.Token {
	if !p.check(tok) {
		p.halt(p.tok.Pos, "expected %s, got %s", tokenName(tok), p.tokenDesc())
	}
	t := p.tok
	p.next()
	return t
}

// tokenDesc describes the current token for a diagnostic. p.tok is
// never ILLEGAL here: next() halts on a lexical error before an
// ILLEGAL token can become the current one.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER:
		return p.tok.Value
	default:
		return tokenName(p.tok.Type)
	}
}

func (p *Parser) halt(pos token.Position, format string, args ...any) {
	panic(haltParse{err: errorf(pos, format, args...)})
}

// -----------------------------------------------------------------------------
// Program and statement sequences
// -----------------------------------------------------------------------------

// parseProgram parses the whole source as a flat sequence of statements
// terminated by ENDMARKER.
func (p *Parser) parseProgram() *ast.Program {
	startPos := p.tok.Pos
	stmts := p.parseStmts()
	endPos := p.tok.Pos
	p.expect(token.ENDMARKER)
	return &ast.Program{Stmts: stmts, StartPos: startPos, EndPos: endPos}
}

// parseStmts parses statements until a DEDENT or ENDMARKER is reached,
// silently skipping blank-line NEWLINE tokens between them.
func (p *Parser) parseStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for p.check(token.NEWLINE) {
		p.next()
	}
	for !p.check(token.DEDENT) && !p.check(token.ENDMARKER) {
		stmts = append(stmts, p.parseStmt())
		for p.check(token.NEWLINE) {
			p.next()
		}
	}
	return stmts
}

// parseStmt dispatches to a compound statement or a simple statement
// followed by a mandatory NEWLINE.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case token.IF, token.WHILE:
		return p.parseCompoundStmt()
	default:
		stmt := p.parseSimpleStmt()
		p.expect(token.NEWLINE)
		return stmt
	}
}

// -----------------------------------------------------------------------------
// Simple statements
// -----------------------------------------------------------------------------

func (p *Parser) parseSimpleStmt() ast.Stmt {
	switch p.tok.Type {
	case token.BREAK:
		pos := p.tok.Pos
		p.next()
		return &ast.BreakStmt{BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos)}

	case token.CONTINUE:
		pos := p.tok.Pos
		p.next()
		return &ast.ContinueStmt{BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos)}

	case token.PRINT:
		return p.parsePrintStmt()

	case token.NAME:
		return p.parseNameLedStmt()

	default:
		p.halt(p.tok.Pos, "unexpected token %s in statement", p.tokenDesc())
		return nil
	}
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.PRINT)
	p.expect(token.LPAREN)
	value := p.parseExpr()
	p.expect(token.RPAREN)
	return &ast.PrintStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), Value: value}
}

// parseNameLedStmt disambiguates the four statement forms that begin
// with a NAME using a short, fixed lookahead on the following token:
//
//	NAME = list()       -> list creation
//	NAME = expr          -> assignment
//	NAME [ expr ] = expr -> indexed assignment
//	NAME . append ( expr ) -> list append
func (p *Parser) parseNameLedStmt() ast.Stmt {
	startPos := p.tok.Pos
	name := p.tok.Value
	p.next()

	switch p.tok.Type {
	case token.ASSIGN:
		p.next()
		if p.check(token.LIST) {
			p.next()
			p.expect(token.LPAREN)
			p.expect(token.RPAREN)
			return &ast.ListCreateStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), Name: name}
		}
		value := p.parseExpr()
		return &ast.AssignStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), Name: name, Value: value}

	case token.LBRACKET:
		p.next()
		index := p.parseExpr()
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		value := p.parseExpr()
		return &ast.IndexAssignStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), List: name, Index: index, Value: value}

	case token.DOT:
		p.next()
		p.expect(token.APPEND)
		p.expect(token.LPAREN)
		value := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.ListAppendStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), List: name, Value: value}

	default:
		p.halt(p.tok.Pos, "unexpected token %s in statement", p.tokenDesc())
		return nil
	}
}

// -----------------------------------------------------------------------------
// Compound statements
// -----------------------------------------------------------------------------

func (p *Parser) parseCompoundStmt() ast.Stmt {
	switch p.tok.Type {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	default:
		p.halt(p.tok.Pos, "unexpected token %s", p.tokenDesc())
		return nil
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.COLON)
	then := p.parseBlock()

	stmt := &ast.IfStmt{Cond: cond, Then: then}

	for p.check(token.ELIF) {
		p.next()
		elifCond := p.parseExpr()
		p.expect(token.COLON)
		elifBody := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{Cond: elifCond, Body: elifBody})
	}

	if p.check(token.ELSE) {
		p.next()
		p.expect(token.COLON)
		stmt.Else = p.parseBlock()
	}

	stmt.BaseStmt = ast.MakeBaseStmt(startPos, p.tok.Pos)
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.WhileStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos), Cond: cond, Body: body}
}

// parseBlock parses a NEWLINE INDENT stmts DEDENT block.
func (p *Parser) parseBlock() *ast.BlockStmt {
	startPos := p.tok.Pos
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)
	stmts := p.parseStmts()
	endPos := p.tok.Pos
	p.expect(token.DEDENT)
	return &ast.BlockStmt{BaseStmt: ast.MakeBaseStmt(startPos, endPos), Stmts: stmts}
}

// -----------------------------------------------------------------------------
// Expressions
//
// Precedence, lowest to highest:
//
//	or
//	and
//	== !=
//	< <= > >=      (non-associative: a single relational operator per level)
//	+ -
//	* //
//	not  -(unary)
//	factor: ( expr ) | NUMBER | True | False | location
// -----------------------------------------------------------------------------

func (p *Parser) parseExpr() ast.Expr {
	left := p.parseJoin()
	for p.check(token.OR) {
		p.next()
		right := p.parseJoin()
		left = &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: ast.LogicalOr, Right: right}
	}
	return left
}

func (p *Parser) parseJoin() ast.Expr {
	left := p.parseEquality()
	for p.check(token.AND) {
		p.next()
		right := p.parseEquality()
		left = &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: ast.LogicalAnd, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRel()
	for p.check(token.EQUALS) || p.check(token.NOT_EQ) {
		op, _ := ast.TokenToBinaryOp(p.tok.Type)
		p.next()
		right := p.parseRel()
		left = &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

// parseRel parses a single relational comparison. Unlike the other
// binary levels, this one does not loop: chained comparisons such as
// "a < b < c" are not part of the grammar.
func (p *Parser) parseRel() ast.Expr {
	left := p.parseNumExpr()
	switch p.tok.Type {
	case token.LESS, token.LTE, token.GREATER, token.GTE:
		op, _ := ast.TokenToBinaryOp(p.tok.Type)
		p.next()
		right := p.parseNumExpr()
		return &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseNumExpr() ast.Expr {
	left := p.parseTerm()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op, _ := ast.TokenToBinaryOp(p.tok.Type)
		p.next()
		right := p.parseTerm()
		left = &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASHSL) {
		op, _ := ast.TokenToBinaryOp(p.tok.Type)
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

// parseUnary parses the right-recursive unary prefix operators "not"
// and "-".
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.NOT:
		pos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{BaseExpr: ast.MakeBaseExpr(pos, operand.End()), Op: ast.Not, Operand: operand}
	case token.MINUS:
		pos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{BaseExpr: ast.MakeBaseExpr(pos, operand.End()), Op: ast.Neg, Operand: operand}
	default:
		return p.parseFactor()
	}
}

func (p *Parser) parseFactor() ast.Expr {
	switch p.tok.Type {
	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr

	case token.NUMBER:
		return p.parseIntLit()

	case token.TRUE:
		pos := p.tok.Pos
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Value: true}

	case token.FALSE:
		pos := p.tok.Pos
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Value: false}

	case token.NAME:
		return p.parseLoc()

	default:
		p.halt(p.tok.Pos, "unexpected token %s in expression", p.tokenDesc())
		return nil
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	pos := p.tok.Pos
	text := p.tok.Value
	p.next()
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.halt(pos, "invalid integer literal %q", text)
	}
	return &ast.IntLit{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Value: n}
}

// parseLoc parses a bare name or an indexed list access: NAME or
// NAME [ expr ].
func (p *Parser) parseLoc() ast.Expr {
	pos := p.tok.Pos
	name := p.tok.Value
	p.next()
	if p.check(token.LBRACKET) {
		p.next()
		index := p.parseExpr()
		p.expect(token.RBRACKET)
		return &ast.ListAccess{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), List: name, Index: index}
	}
	return &ast.Ident{BaseExpr: ast.MakeBaseExpr(pos, p.tok.Pos), Name: name}
}
