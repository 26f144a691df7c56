package runtime

import (
	"fmt"

	"github.com/kievzenit/ylox/internal/lexer"
)

// RuntimeError stops the current run. Token locates the operator or name
// the error was raised at.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func NewRuntimeError(token lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	}
}

func newUndefinedVariableError(name lexer.Token) *RuntimeError {
	return NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (e *RuntimeError) GetMessage() string { return e.Message }
func (e *RuntimeError) GetLine() int       { return e.Token.Line }

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}
