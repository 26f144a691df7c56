package ast

import (
	"strings"
)

// Printer renders nodes in a parenthesized prefix form, e.g.
// "(* (- 123) (group 45.67))". It is meant for debugging the parser.
type Printer struct {
	sb     strings.Builder
	indent int
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) PrintExpr(expr Expr) (string, error) {
	return AcceptExpr[string](expr, p)
}

// PrintStmts renders one top-level statement per line.
func (p *Printer) PrintStmts(stmts []Stmt) (string, error) {
	p.sb.Reset()
	p.indent = 0

	for _, stmt := range stmts {
		if err := AcceptStmt(stmt, p); err != nil {
			return "", err
		}
		p.sb.WriteByte('\n')
	}

	return p.sb.String(), nil
}

func (p *Printer) VisitLiteralExpr(expr *LiteralExpr) (string, error) {
	if expr.Value == nil {
		return "nil", nil
	}
	return expr.Value.String(), nil
}

func (p *Printer) VisitGroupingExpr(expr *GroupingExpr) (string, error) {
	return p.parenthesize("group", expr.Inner)
}

func (p *Printer) VisitVariableExpr(expr *VariableExpr) (string, error) {
	return expr.Name.Lexeme, nil
}

func (p *Printer) VisitAssignExpr(expr *AssignExpr) (string, error) {
	return p.parenthesize("= "+expr.Name.Lexeme, expr.Value)
}

func (p *Printer) VisitUnaryExpr(expr *UnaryExpr) (string, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Right)
}

func (p *Printer) VisitBinaryExpr(expr *BinaryExpr) (string, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Left, expr.Right)
}

func (p *Printer) VisitLogicalExpr(expr *LogicalExpr) (string, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Left, expr.Right)
}

func (p *Printer) VisitExprStmt(stmt *ExprStmt) error {
	return p.writeParenthesized(";", stmt.Expr)
}

func (p *Printer) VisitPrintStmt(stmt *PrintStmt) error {
	return p.writeParenthesized("print", stmt.Expr)
}

func (p *Printer) VisitVarDeclStmt(stmt *VarDeclStmt) error {
	if stmt.Value == nil {
		p.sb.WriteString("(var " + stmt.Name.Lexeme + ")")
		return nil
	}
	return p.writeParenthesized("var "+stmt.Name.Lexeme, stmt.Value)
}

func (p *Printer) VisitScopeStmt(stmt *ScopeStmt) error {
	p.sb.WriteString("(block")
	p.indent++
	for _, inner := range stmt.Stmts {
		p.newline()
		if err := AcceptStmt(inner, p); err != nil {
			return err
		}
	}
	p.indent--
	p.sb.WriteString(")")
	return nil
}

func (p *Printer) VisitIfStmt(stmt *IfStmt) error {
	cond, err := p.PrintExpr(stmt.Cond)
	if err != nil {
		return err
	}

	p.sb.WriteString("(if " + cond)
	p.indent++
	p.newline()
	if err := AcceptStmt(stmt.Body, p); err != nil {
		return err
	}
	if stmt.Else != nil {
		p.newline()
		if err := AcceptStmt(stmt.Else, p); err != nil {
			return err
		}
	}
	p.indent--
	p.sb.WriteString(")")
	return nil
}

func (p *Printer) VisitWhileStmt(stmt *WhileStmt) error {
	cond, err := p.PrintExpr(stmt.Cond)
	if err != nil {
		return err
	}

	p.sb.WriteString("(while " + cond)
	p.indent++
	p.newline()
	if err := AcceptStmt(stmt.Body, p); err != nil {
		return err
	}
	p.indent--
	p.sb.WriteString(")")
	return nil
}

func (p *Printer) parenthesize(name string, exprs ...Expr) (string, error) {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, expr := range exprs {
		s, err := p.PrintExpr(expr)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	sb.WriteString(")")

	return sb.String(), nil
}

func (p *Printer) writeParenthesized(name string, exprs ...Expr) error {
	s, err := p.parenthesize(name, exprs...)
	if err != nil {
		return err
	}
	p.sb.WriteString(s)
	return nil
}

func (p *Printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat("  ", p.indent))
}

var (
	_ ExprVisitor[string] = (*Printer)(nil)
	_ StmtVisitor         = (*Printer)(nil)
)
