package parser

import (
	"fmt"
	"slices"

	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/diagnostics"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/value"
)

type ParseError struct {
	Token   lexer.Token
	Message string
}

func newParseError(token lexer.Token, message string) *ParseError {
	return &ParseError{
		Token:   token,
		Message: message,
	}
}

func (e *ParseError) GetMessage() string { return e.Message }
func (e *ParseError) GetLine() int       { return e.Token.Line }

func (e *ParseError) GetWhere() string {
	if e.Token.Kind == lexer.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", e.Token.Lexeme)
}

func (e *ParseError) Error() string { return diagnostics.Format(e) }

// statementStarters are the kinds synchronize stops in front of.
var statementStarters = []lexer.TokenKind{
	lexer.CLASS,
	lexer.FUN,
	lexer.VAR,
	lexer.FOR,
	lexer.IF,
	lexer.WHILE,
	lexer.PRINT,
	lexer.RETURN,
}

type Parser struct {
	scanner lexer.TokenScanner
	eh      diagnostics.ErrorHandler
}

func NewParser(scanner lexer.TokenScanner, eh diagnostics.ErrorHandler) *Parser {
	return &Parser{
		scanner: scanner,
		eh:      eh,
	}
}

// Parse returns every statement it could recover. Syntax errors are
// reported to the error handler, once each, in source order.
func (p *Parser) Parse() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for p.scanner.HasTokens() {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

// parseDeclaration returns nil after a syntax error, once the scanner has
// been moved to the next statement boundary.
func (p *Parser) parseDeclaration() ast.Stmt {
	var (
		stmt ast.Stmt
		err  error
	)
	if p.curr().Kind == lexer.VAR {
		stmt, err = p.parseVarDeclStmt()
	} else {
		stmt, err = p.parseStmt()
	}

	if err != nil {
		p.synchronize()
		return nil
	}

	return stmt
}

func (p *Parser) parseVarDeclStmt() (ast.Stmt, error) {
	startToken := p.read()

	name, err := p.expect(lexer.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(lexer.ASSIGN) {
		initializer, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VarDeclStmt{
		StartToken: startToken,

		Name:  name,
		Value: initializer,
	}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.curr().Kind {
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.LBRACE:
		return p.parseScopeStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	}

	return p.parseExprStmt()
}

func (p *Parser) parsePrintStmt() (ast.Stmt, error) {
	startToken := p.read()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &ast.PrintStmt{
		StartToken: startToken,

		Expr: expr,
	}, nil
}

// parseScopeStmt recovers from errors inside the block on its own, so a
// bad statement in a block does not discard its well-formed siblings.
func (p *Parser) parseScopeStmt() (ast.Stmt, error) {
	startToken := p.read()

	stmts := make([]ast.Stmt, 0)
	for p.scanner.HasTokens() && p.curr().Kind != lexer.RBRACE {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if _, err := p.expect(lexer.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return &ast.ScopeStmt{
		StartToken: startToken,

		Stmts: stmts,
	}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	startToken := p.read()

	cond, err := p.parseCondition("Expect '(' after 'if'.", "Expect ')' after if condition.")
	if err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var elseBody ast.Stmt
	if p.match(lexer.ELSE) {
		elseBody, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
		Else: elseBody,
	}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	startToken := p.read()

	cond, err := p.parseCondition("Expect '(' after 'while'.", "Expect ')' after condition.")
	if err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}, nil
}

func (p *Parser) parseCondition(openMessage, closeMessage string) (ast.Expr, error) {
	if _, err := p.expect(lexer.LPAREN, openMessage); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RPAREN, closeMessage); err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	startToken := p.currPtr()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{
		StartToken: startToken,

		Expr: expr,
	}, nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignExpr()
}

// parseAssignExpr parses the left side as an ordinary expression and only
// then checks that it is a bare variable. An invalid target is reported
// at the '=' but does not put the parser into recovery.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	if p.curr().Kind != lexer.ASSIGN {
		return expr, nil
	}

	equals := p.read()
	rhs, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}

	variable, ok := expr.(*ast.VariableExpr)
	if !ok {
		p.report(*equals, "Invalid assignment target.")
		return expr, nil
	}

	return &ast.AssignExpr{
		StartToken: variable.StartToken,

		Name:  variable.Name,
		Value: rhs,
	}, nil
}

func (p *Parser) parseOrExpr() (ast.Expr, error) {
	return p.parseLogicalExpr(lexer.OR, p.parseAndExpr)
}

func (p *Parser) parseAndExpr() (ast.Expr, error) {
	return p.parseLogicalExpr(lexer.AND, p.parseEqualityExpr)
}

func (p *Parser) parseLogicalExpr(op lexer.TokenKind, operand func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.curr().Kind == op {
		opToken := p.read()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &ast.LogicalExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    opToken,
			Right: right,
		}
	}

	return left, nil
}

func (p *Parser) parseEqualityExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(p.parseComparisonExpr, lexer.NEQ, lexer.EQ)
}

func (p *Parser) parseComparisonExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(p.parseTermExpr, lexer.GT, lexer.GEQ, lexer.LT, lexer.LEQ)
}

func (p *Parser) parseTermExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(p.parseFactorExpr, lexer.MINUS, lexer.PLUS)
}

func (p *Parser) parseFactorExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(p.parseUnaryExpr, lexer.SLASH, lexer.ASTERISK)
}

// parseBinaryExpr folds a run of same-precedence operators to the left:
// a - b - c becomes (a - b) - c.
func (p *Parser) parseBinaryExpr(operand func() (ast.Expr, error), ops ...lexer.TokenKind) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.isCurrAny(ops...) {
		op := p.read()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op,
			Right: right,
		}
	}

	return left, nil
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.isCurrAny(lexer.XMARK, lexer.MINUS) {
		op := p.read()

		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{
			StartToken: op,

			Op:    op,
			Right: right,
		}, nil
	}

	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	switch p.curr().Kind {
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NIL:
		return p.parseLiteralExpr(), nil
	case lexer.IDENT:
		name := p.read()
		return &ast.VariableExpr{
			StartToken: name,

			Name: name,
		}, nil
	case lexer.LPAREN:
		return p.parseGroupingExpr()
	}

	return nil, p.error(p.curr(), "Expect expression.")
}

func (p *Parser) parseLiteralExpr() ast.Expr {
	startToken := p.read()

	literal := startToken.Literal
	if literal == nil {
		literal = value.Nil{}
	}

	return &ast.LiteralExpr{
		StartToken: startToken,

		Value: literal,
	}
}

func (p *Parser) parseGroupingExpr() (ast.Expr, error) {
	startToken := p.read()

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RPAREN, "Expect ')' after expression."); err != nil {
		return nil, err
	}

	return &ast.GroupingExpr{
		StartToken: startToken,

		Inner: inner,
	}, nil
}

// synchronize discards tokens until just after a ';' or just before a
// token that starts a new statement.
func (p *Parser) synchronize() {
	p.read()

	for p.scanner.HasTokens() {
		if p.scanner.Previous().Kind == lexer.SEMICOLON {
			return
		}
		if p.isCurrAny(statementStarters...) {
			return
		}
		p.read()
	}
}

func (p *Parser) curr() lexer.Token {
	return p.scanner.Peek()
}

func (p *Parser) currPtr() *lexer.Token {
	token := p.scanner.Peek()
	return &token
}

func (p *Parser) read() *lexer.Token {
	token := p.scanner.Read()
	return &token
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.curr().Kind != kind {
		return false
	}

	p.read()
	return true
}

func (p *Parser) expect(kind lexer.TokenKind, message string) (*lexer.Token, error) {
	if p.curr().Kind != kind {
		return nil, p.error(p.curr(), message)
	}

	return p.read(), nil
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr().Kind)
}

func (p *Parser) error(token lexer.Token, message string) *ParseError {
	err := newParseError(token, message)
	p.eh.AddError(err)
	return err
}

func (p *Parser) report(token lexer.Token, message string) {
	p.eh.AddError(newParseError(token, message))
}
