package ast

import "github.com/kievzenit/ylox/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}
