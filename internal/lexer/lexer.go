package lexer

import (
	"strconv"

	"github.com/kievzenit/ylox/internal/diagnostics"
	"github.com/kievzenit/ylox/internal/value"
)

type LexerError struct {
	Message string
	Line    int
}

func newUnexpectedCharacterError(line int) *LexerError {
	return &LexerError{
		Message: "Unexpected character.",
		Line:    line,
	}
}

func newUnterminatedStringError(line int) *LexerError {
	return &LexerError{
		Message: "Unterminated string.",
		Line:    line,
	}
}

func (e *LexerError) GetMessage() string { return e.Message }
func (e *LexerError) GetLine() int       { return e.Line }
func (e *LexerError) GetWhere() string   { return "" }
func (e *LexerError) Error() string      { return diagnostics.Format(e) }

// Lexer turns source text into tokens in a single pass. It never stops on
// bad input: problems go to the error handler and scanning carries on with
// the next character.
type Lexer struct {
	buf []rune

	start, pos int
	line       int

	eh diagnostics.ErrorHandler
}

func NewLexer(source string, eh diagnostics.ErrorHandler) *Lexer {
	return &Lexer{
		buf: []rune(source),

		line: 1,

		eh: eh,
	}
}

func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for l.hasChars() {
		l.start = l.pos
		c := l.read()

		switch {
		case l.isSkippable(c):
			l.advance()
			if c == '\n' {
				l.line++
			}

		case isDigit(c):
			tokens = append(tokens, l.processNumber())

		case isIdentifierStart(c):
			tokens = append(tokens, l.processIdentifier())

		case c == '"':
			if token, ok := l.processStringLiteral(); ok {
				tokens = append(tokens, token)
			}

		case c == '/' && l.next() == '/':
			l.skipComment()

		case isPunctuation(c):
			tokens = append(tokens, l.processPunctuation())

		default:
			l.advance()
			l.eh.AddError(newUnexpectedCharacterError(l.line))
		}
	}

	tokens = append(tokens, Token{
		Kind: EOF,
		Line: l.line,
	})

	return tokens
}

func isIdentifierStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isPunctuation(c rune) bool {
	switch c {
	case '(', ')', '{', '}', ',', '.', '-', '+', ';', '*', '/', '!', '=', '<', '>':
		return true
	}
	return false
}

func (l *Lexer) isSkippable(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func (l *Lexer) processIdentifier() Token {
	for l.hasChars() && (isIdentifierStart(l.read()) || isDigit(l.read())) {
		l.advance()
	}

	kind, ok := keywords[l.lexeme()]
	if !ok {
		return l.token(IDENT, nil)
	}

	switch kind {
	case TRUE:
		return l.token(TRUE, value.Bool(true))
	case FALSE:
		return l.token(FALSE, value.Bool(false))
	case NIL:
		return l.token(NIL, value.Nil{})
	}

	return l.token(kind, nil)
}

// processNumber consumes digits and at most one '.', and only when a digit
// follows it, so "1." scans as NUMBER then DOT.
func (l *Lexer) processNumber() Token {
	for l.hasChars() && isDigit(l.read()) {
		l.advance()
	}

	if l.hasChars() && l.read() == '.' && isDigit(l.next()) {
		l.advance()
		for l.hasChars() && isDigit(l.read()) {
			l.advance()
		}
	}

	// digit runs too long for a float64 come back as +Inf with ErrRange
	number, _ := strconv.ParseFloat(l.lexeme(), 64)

	return l.token(NUMBER, value.Number(number))
}

// processStringLiteral scans up to the closing quote, across newlines. An
// unterminated string is reported and produces no token.
func (l *Lexer) processStringLiteral() (Token, bool) {
	l.advance()

	for l.hasChars() && l.read() != '"' {
		if l.read() == '\n' {
			l.line++
		}
		l.advance()
	}

	if !l.hasChars() {
		l.eh.AddError(newUnterminatedStringError(l.line))
		return Token{}, false
	}

	l.advance()

	content := string(l.buf[l.start+1 : l.pos-1])
	return l.token(STRING, value.String(content)), true
}

func (l *Lexer) skipComment() {
	for l.hasChars() && l.read() != '\n' {
		l.advance()
	}
}

func (l *Lexer) processPunctuation() Token {
	c := l.read()
	l.advance()

	switch c {
	case '(':
		return l.token(LPAREN, nil)
	case ')':
		return l.token(RPAREN, nil)
	case '{':
		return l.token(LBRACE, nil)
	case '}':
		return l.token(RBRACE, nil)
	case ',':
		return l.token(COMMA, nil)
	case '.':
		return l.token(DOT, nil)
	case '-':
		return l.token(MINUS, nil)
	case '+':
		return l.token(PLUS, nil)
	case ';':
		return l.token(SEMICOLON, nil)
	case '*':
		return l.token(ASTERISK, nil)
	case '/':
		return l.token(SLASH, nil)
	case '!':
		return l.processWithEquals(XMARK, NEQ)
	case '=':
		return l.processWithEquals(ASSIGN, EQ)
	case '<':
		return l.processWithEquals(LT, LEQ)
	}

	return l.processWithEquals(GT, GEQ)
}

// processWithEquals emits the two-character form when the operator is
// followed by '='.
func (l *Lexer) processWithEquals(single, withEquals TokenKind) Token {
	if l.hasChars() && l.read() == '=' {
		l.advance()
		return l.token(withEquals, nil)
	}

	return l.token(single, nil)
}

func (l *Lexer) token(kind TokenKind, literal value.Value) Token {
	return Token{
		Kind:    kind,
		Lexeme:  l.lexeme(),
		Literal: literal,
		Line:    l.line,
	}
}

func (l *Lexer) lexeme() string { return string(l.buf[l.start:l.pos]) }

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) next() rune {
	if l.pos+1 >= len(l.buf) {
		return 0
	}
	return l.buf[l.pos+1]
}

func (l *Lexer) advance()   { l.pos++ }
func (l *Lexer) read() rune { return l.buf[l.pos] }
