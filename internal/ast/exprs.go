package ast

import (
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/value"
)

type LiteralExpr struct {
	StartToken *lexer.Token

	Value value.Value
}

type GroupingExpr struct {
	StartToken *lexer.Token

	Inner Expr
}

type VariableExpr struct {
	StartToken *lexer.Token

	Name *lexer.Token
}

type AssignExpr struct {
	StartToken *lexer.Token

	Name  *lexer.Token
	Value Expr
}

type UnaryExpr struct {
	StartToken *lexer.Token

	Op    *lexer.Token
	Right Expr
}

type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

// LogicalExpr is an "and"/"or" expression. Unlike BinaryExpr its right
// operand is only evaluated when the left one does not decide the result.
type LogicalExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

func (LiteralExpr) AstNode()  {}
func (GroupingExpr) AstNode() {}
func (VariableExpr) AstNode() {}
func (AssignExpr) AstNode()   {}
func (UnaryExpr) AstNode()    {}
func (BinaryExpr) AstNode()   {}
func (LogicalExpr) AstNode()  {}

func (e *LiteralExpr) FirstToken() *lexer.Token  { return e.StartToken }
func (e *GroupingExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *VariableExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *AssignExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *UnaryExpr) FirstToken() *lexer.Token    { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *LogicalExpr) FirstToken() *lexer.Token  { return e.StartToken }

func (LiteralExpr) ExprNode()  {}
func (GroupingExpr) ExprNode() {}
func (VariableExpr) ExprNode() {}
func (AssignExpr) ExprNode()   {}
func (UnaryExpr) ExprNode()    {}
func (BinaryExpr) ExprNode()   {}
func (LogicalExpr) ExprNode()  {}
