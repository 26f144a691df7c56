package lexer

// TokenScanner is the parser's cursor over a token sequence that ends in
// EOF. It never moves past the EOF token.
type TokenScanner interface {
	Peek() Token
	Previous() Token
	Read() Token
	HasTokens() bool
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Kind: EOF, Line: line})
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Peek() Token {
	return s.tokens[s.pos]
}

// Previous returns the most recently consumed token, or the current one
// when nothing has been consumed yet.
func (s *SimpleTokenScanner) Previous() Token {
	if s.pos == 0 {
		return s.tokens[0]
	}
	return s.tokens[s.pos-1]
}

func (s *SimpleTokenScanner) Read() Token {
	token := s.tokens[s.pos]
	if s.HasTokens() {
		s.pos++
	}

	return token
}

func (s *SimpleTokenScanner) HasTokens() bool {
	return s.tokens[s.pos].Kind != EOF
}
