package internal

import "fmt"

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeNumber     TokenType = "NUMBER"
	TokenTypeVariable   TokenType = "VARIABLE"
	TokenTypeDice       TokenType = "DICE"
	TokenTypeSpecial    TokenType = "SPECIAL"
	TokenTypeFate       TokenType = "FATE"
	TokenTypeAdvantage  TokenType = "ADVANTAGE"
	TokenTypeOperator   TokenType = "OPERATOR"
	TokenTypeModifier   TokenType = "MODIFIER"
	TokenTypeComparison TokenType = "COMPARISON"
	TokenTypeTarget     TokenType = "TARGET"
	TokenTypeLParen     TokenType = "LPAREN"
	TokenTypeRParen     TokenType = "RPAREN"
	TokenTypeEOF        TokenType = "EOF"
)

// Token represents a lexical token with its source offset
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// String returns a debug representation of the token
func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
	return string(t.Type)
}

// NewToken creates a token
func NewToken(tokenType TokenType, value string, pos int) Token {
	return Token{Type: tokenType, Value: value, Pos: pos}
}

// NewEOFToken creates an end-of-input token
func NewEOFToken(pos int) Token {
	return Token{Type: TokenTypeEOF, Pos: pos}
}
