package lexer

import (
	"fmt"

	"github.com/kievzenit/ylox/internal/value"
)

type TokenKind int

const (
	EOF TokenKind = iota

	NUMBER
	STRING

	IDENT

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /

	ASSIGN // =

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	LPAREN // (
	LBRACE // {

	RPAREN // )
	RBRACE // }

	SEMICOLON // ;
	DOT       // .
	COMMA     // ,
	XMARK     // !

	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case ASSIGN:
		return "ASSIGN"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case LPAREN:
		return "LPAREN"
	case LBRACE:
		return "LBRACE"
	case RPAREN:
		return "RPAREN"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case COMMA:
		return "COMMA"
	case XMARK:
		return "XMARK"
	case AND:
		return "AND"
	case CLASS:
		return "CLASS"
	case ELSE:
		return "ELSE"
	case FALSE:
		return "FALSE"
	case FUN:
		return "FUN"
	case FOR:
		return "FOR"
	case IF:
		return "IF"
	case NIL:
		return "NIL"
	case OR:
		return "OR"
	case PRINT:
		return "PRINT"
	case RETURN:
		return "RETURN"
	case SUPER:
		return "SUPER"
	case THIS:
		return "THIS"
	case TRUE:
		return "TRUE"
	case VAR:
		return "VAR"
	case WHILE:
		return "WHILE"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(tk))
	}
}

var keywords = map[string]TokenKind{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Token is immutable once the lexer has produced it. Literal is nil for
// tokens that carry no decoded payload.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal value.Value
	Line    int
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case NUMBER, STRING, IDENT:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}
