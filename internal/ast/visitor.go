package ast

import "fmt"

// ExprVisitor has one operation per expression variant. Adding a new
// analysis means implementing this interface, not touching the nodes.
type ExprVisitor[R any] interface {
	VisitLiteralExpr(expr *LiteralExpr) (R, error)
	VisitGroupingExpr(expr *GroupingExpr) (R, error)
	VisitVariableExpr(expr *VariableExpr) (R, error)
	VisitAssignExpr(expr *AssignExpr) (R, error)
	VisitUnaryExpr(expr *UnaryExpr) (R, error)
	VisitBinaryExpr(expr *BinaryExpr) (R, error)
	VisitLogicalExpr(expr *LogicalExpr) (R, error)
}

type StmtVisitor interface {
	VisitExprStmt(stmt *ExprStmt) error
	VisitPrintStmt(stmt *PrintStmt) error
	VisitVarDeclStmt(stmt *VarDeclStmt) error
	VisitScopeStmt(stmt *ScopeStmt) error
	VisitIfStmt(stmt *IfStmt) error
	VisitWhileStmt(stmt *WhileStmt) error
}

type UnknownNodeError struct {
	Node AstNode
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown ast node: %T", e.Node)
}

func AcceptExpr[R any](expr Expr, v ExprVisitor[R]) (R, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return v.VisitLiteralExpr(e)
	case *GroupingExpr:
		return v.VisitGroupingExpr(e)
	case *VariableExpr:
		return v.VisitVariableExpr(e)
	case *AssignExpr:
		return v.VisitAssignExpr(e)
	case *UnaryExpr:
		return v.VisitUnaryExpr(e)
	case *BinaryExpr:
		return v.VisitBinaryExpr(e)
	case *LogicalExpr:
		return v.VisitLogicalExpr(e)
	}

	var zero R
	return zero, &UnknownNodeError{Node: expr}
}

func AcceptStmt(stmt Stmt, v StmtVisitor) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		return v.VisitExprStmt(s)
	case *PrintStmt:
		return v.VisitPrintStmt(s)
	case *VarDeclStmt:
		return v.VisitVarDeclStmt(s)
	case *ScopeStmt:
		return v.VisitScopeStmt(s)
	case *IfStmt:
		return v.VisitIfStmt(s)
	case *WhileStmt:
		return v.VisitWhileStmt(s)
	}

	return &UnknownNodeError{Node: stmt}
}
