// Package token defines the lexical vocabulary of the Voltage language.
package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Literal-carrying tokens
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Keywords
	FN       TokenType = "FN"
	LET      TokenType = "LET"
	IF       TokenType = "IF"
	ELIF     TokenType = "ELIF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	UNSAFE   TokenType = "UNSAFE"
	IMPORT   TokenType = "IMPORT"
	AS       TokenType = "AS"

	// Punctuation and operators
	ASSIGN      TokenType = "="
	COLON       TokenType = ":"
	LPAREN      TokenType = "("
	RPAREN      TokenType = ")"
	LBRACE      TokenType = "{"
	RBRACE      TokenType = "}"
	SEMI        TokenType = ";"
	COMMA       TokenType = ","
	ARROW       TokenType = "->"
	GT          TokenType = ">"
	GTE         TokenType = ">="
	LT          TokenType = "<"
	LTE         TokenType = "<="
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	LBRACKET    TokenType = "["
	RBRACKET    TokenType = "]"
	DOT         TokenType = "."
	DOUBLECOLON TokenType = "::"
)

// Token is one lexeme. Literal carries the decoded payload for IDENT
// (string), NUMBER (int64) and STRING (the raw quoted text); it is nil for
// every other token type. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"fn":       FN,
	"let":      LET,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"unsafe":   UNSAFE,
	"import":   IMPORT,
	"as":       AS,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Text returns the identifier payload of an IDENT token.
func (t Token) Text() string {
	if s, ok := t.Literal.(string); ok {
		return s
	}
	return t.Lexeme
}
