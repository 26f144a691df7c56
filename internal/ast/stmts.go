package ast

import "github.com/kievzenit/ylox/internal/lexer"

type ExprStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type PrintStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

// VarDeclStmt declares Name in the current scope. Value is nil when the
// declaration has no initializer.
type VarDeclStmt struct {
	StartToken *lexer.Token

	Name  *lexer.Token
	Value Expr
}

type ScopeStmt struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

type IfStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body Stmt
	Else Stmt
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body Stmt
}

func (ExprStmt) AstNode()    {}
func (PrintStmt) AstNode()   {}
func (VarDeclStmt) AstNode() {}
func (ScopeStmt) AstNode()   {}
func (IfStmt) AstNode()      {}
func (WhileStmt) AstNode()   {}

func (s *ExprStmt) FirstToken() *lexer.Token    { return s.StartToken }
func (s *PrintStmt) FirstToken() *lexer.Token   { return s.StartToken }
func (s *VarDeclStmt) FirstToken() *lexer.Token { return s.StartToken }
func (s *ScopeStmt) FirstToken() *lexer.Token   { return s.StartToken }
func (s *IfStmt) FirstToken() *lexer.Token      { return s.StartToken }
func (s *WhileStmt) FirstToken() *lexer.Token   { return s.StartToken }

func (ExprStmt) StmtNode()    {}
func (PrintStmt) StmtNode()   {}
func (VarDeclStmt) StmtNode() {}
func (ScopeStmt) StmtNode()   {}
func (IfStmt) StmtNode()      {}
func (WhileStmt) StmtNode()   {}
