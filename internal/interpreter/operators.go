package interpreter

import (
	"github.com/kievzenit/ylox/internal/ast"
	"github.com/kievzenit/ylox/internal/lexer"
	"github.com/kievzenit/ylox/internal/runtime"
	"github.com/kievzenit/ylox/internal/value"
)

func (i *Interpreter) VisitUnaryExpr(expr *ast.UnaryExpr) (value.Value, error) {
	right, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case lexer.MINUS:
		n, ok := right.(value.Number)
		if !ok {
			return nil, runtime.NewRuntimeError(*expr.Op, "Operand must be a number.")
		}
		return -n, nil
	case lexer.XMARK:
		return value.Bool(!value.IsTruthy(right)), nil
	}

	return nil, invalidOperatorError(expr.Op, "unary")
}

// VisitBinaryExpr always evaluates both operands, left first.
//
// Equality is only defined between numbers: "a" == "a" is a runtime
// error just like "a" < "b".
func (i *Interpreter) VisitBinaryExpr(expr *ast.BinaryExpr) (value.Value, error) {
	left, err := i.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	if expr.Op.Kind == lexer.PLUS {
		return add(expr.Op, left, right)
	}

	l, r, err := numberOperands(expr.Op, left, right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case lexer.MINUS:
		return l - r, nil
	case lexer.ASTERISK:
		return l * r, nil
	case lexer.SLASH:
		return l / r, nil
	case lexer.GT:
		return value.Bool(l > r), nil
	case lexer.GEQ:
		return value.Bool(l >= r), nil
	case lexer.LT:
		return value.Bool(l < r), nil
	case lexer.LEQ:
		return value.Bool(l <= r), nil
	case lexer.EQ:
		return value.Bool(l == r), nil
	case lexer.NEQ:
		return value.Bool(l != r), nil
	}

	return nil, invalidOperatorError(expr.Op, "binary")
}

func add(op *lexer.Token, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Number:
		if r, ok := right.(value.Number); ok {
			return l + r, nil
		}
	case value.String:
		if r, ok := right.(value.String); ok {
			return l + r, nil
		}
	}

	return nil, runtime.NewRuntimeError(*op, "Operands must be two numbers or two strings.")
}

func numberOperands(op *lexer.Token, left, right value.Value) (value.Number, value.Number, error) {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return 0, 0, runtime.NewRuntimeError(*op, "Operands must be numbers.")
	}

	return l, r, nil
}

// invalidOperatorError covers operator/node combinations the parser never
// builds.
func invalidOperatorError(op *lexer.Token, kind string) error {
	return runtime.NewRuntimeError(*op, "Invalid %s operator '%s'.", kind, op.Lexeme)
}
