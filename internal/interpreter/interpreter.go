package interpreter

import (
	"fmt"
	"io"

	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/runtime"
	"github.com/kievzenit/ylox/internal/value"
)

// Interpreter walks statement trees. Its global scope outlives a single
// Interpret call, so successive REPL lines share variables.
type Interpreter struct {
	globals *runtime.Environment
	env     *runtime.Environment

	stdout io.Writer
}

func NewInterpreter(stdout io.Writer) *Interpreter {
	globals := runtime.NewEnvironment(nil)

	return &Interpreter{
		globals: globals,
		env:     globals,

		stdout: stdout,
	}
}

func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Interpret executes stmts in order and stops at the first runtime error,
// which it returns. Statements before the failing one keep their effects.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) Evaluate(expr ast.Expr) (value.Value, error) {
	return ast.AcceptExpr[value.Value](expr, i)
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	return ast.AcceptStmt(stmt, i)
}

// executeScope runs stmts in env and puts the previous scope back however
// it exits.
func (i *Interpreter) executeScope(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) VisitExprStmt(stmt *ast.ExprStmt) error {
	_, err := i.Evaluate(stmt.Expr)
	return err
}

func (i *Interpreter) VisitPrintStmt(stmt *ast.PrintStmt) error {
	v, err := i.Evaluate(stmt.Expr)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(i.stdout, v.String())
	return err
}

func (i *Interpreter) VisitVarDeclStmt(stmt *ast.VarDeclStmt) error {
	var v value.Value = value.Nil{}
	if stmt.Value != nil {
		var err error
		v, err = i.Evaluate(stmt.Value)
		if err != nil {
			return err
		}
	}

	i.env.Define(stmt.Name.Lexeme, v)
	return nil
}

func (i *Interpreter) VisitScopeStmt(stmt *ast.ScopeStmt) error {
	return i.executeScope(stmt.Stmts, runtime.NewEnvironment(i.env))
}

func (i *Interpreter) VisitIfStmt(stmt *ast.IfStmt) error {
	cond, err := i.Evaluate(stmt.Cond)
	if err != nil {
		return err
	}

	if value.IsTruthy(cond) {
		return i.execute(stmt.Body)
	}
	if stmt.Else != nil {
		return i.execute(stmt.Else)
	}

	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *ast.WhileStmt) error {
	for {
		cond, err := i.Evaluate(stmt.Cond)
		if err != nil {
			return err
		}
		if !value.IsTruthy(cond) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitLiteralExpr(expr *ast.LiteralExpr) (value.Value, error) {
	if expr.Value == nil {
		return value.Nil{}, nil
	}
	return expr.Value, nil
}

func (i *Interpreter) VisitGroupingExpr(expr *ast.GroupingExpr) (value.Value, error) {
	return i.Evaluate(expr.Inner)
}

func (i *Interpreter) VisitVariableExpr(expr *ast.VariableExpr) (value.Value, error) {
	return i.env.Get(*expr.Name)
}

func (i *Interpreter) VisitAssignExpr(expr *ast.AssignExpr) (value.Value, error) {
	v, err := i.Evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if err := i.env.Assign(*expr.Name, v); err != nil {
		return nil, err
	}

	return v, nil
}

// VisitLogicalExpr returns an operand itself, not a boolean, and leaves
// the right operand unevaluated when the left one decides the result.
func (i *Interpreter) VisitLogicalExpr(expr *ast.LogicalExpr) (value.Value, error) {
	left, err := i.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case lexer.OR:
		if value.IsTruthy(left) {
			return left, nil
		}
	case lexer.AND:
		if !value.IsTruthy(left) {
			return left, nil
		}
	default:
		return nil, invalidOperatorError(expr.Op, "logical")
	}

	return i.Evaluate(expr.Right)
}

var (
	_ ast.ExprVisitor[value.Value] = (*Interpreter)(nil)
	_ ast.StmtVisitor              = (*Interpreter)(nil)
)
