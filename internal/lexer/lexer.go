// Package lexer turns Voltage source text into a token sequence. Tokenizing
// is total: unrecognized characters are skipped with a diagnostic, never an
// abort, and the full token slice is produced before parsing begins.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	diags []*diagnostics.Diagnostic
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize consumes the whole input and returns the token sequence, without
// a trailing EOF marker. It never fails; lexical problems are recorded as
// diagnostics and the offending characters skipped.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.nextToken()
		if tok.Type == token.EOF {
			return tokens
		}
		if tok.Type == token.ILLEGAL {
			continue
		}
		tokens = append(tokens, tok)
	}
}

// Diagnostics returns the non-fatal problems recorded while tokenizing.
func (l *Lexer) Diagnostics() []*diagnostics.Diagnostic {
	return l.diags
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
		l.readChar()
	}
}

func (l *Lexer) nextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case 0:
		tok = token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = token.Token{Type: token.DOUBLECOLON, Lexeme: "::", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.COLON)
		}
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case ';':
		tok = l.newToken(token.SEMI)
	case ',':
		tok = l.newToken(token.COMMA)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.MINUS)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Lexeme: ">=", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.GT)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LTE, Lexeme: "<=", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.LT)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Line: l.line, Column: l.column}
		} else {
			l.reportIllegal()
			tok = token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Line: l.line, Column: l.column}
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '%':
		tok = l.newToken(token.PERCENT)
	case '[':
		tok = l.newToken(token.LBRACKET)
	case ']':
		tok = l.newToken(token.RBRACKET)
	case '.':
		tok = l.newToken(token.DOT)
	case '"':
		return l.readString()
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		l.reportIllegal()
		tok = token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Line: l.line, Column: l.column}
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tt token.TokenType) token.Token {
	return token.Token{Type: tt, Lexeme: string(l.ch), Line: l.line, Column: l.column}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(ident),
		Lexeme:  ident,
		Literal: ident,
		Line:    line,
		Column:  col,
	}
}

// readNumber scans an integer literal. Text that does not fit in an int64
// is clamped to 0 rather than failing.
func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.position]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		n = 0
	}
	return token.Token{
		Type:    token.NUMBER,
		Lexeme:  text,
		Literal: n,
		Line:    line,
		Column:  col,
	}
}

// readString scans a quoted string literal. The token carries the raw text
// including the surrounding quotes and any backslash escapes; unquoting is
// deferred to later consumers. An unterminated string is recorded as a
// diagnostic and the remainder of the line skipped.
func (l *Lexer) readString() token.Token {
	line, col := l.line, l.column
	start := l.position
	l.readChar() // opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == 0 {
		l.diags = append(l.diags, diagnostics.NewWarning(
			diagnostics.ErrL001,
			token.Token{Line: line, Column: col},
			"unterminated string literal",
		))
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: line, Column: col}
	}
	l.readChar() // closing quote
	raw := l.input[start:l.position]
	return token.Token{
		Type:    token.STRING,
		Lexeme:  raw,
		Literal: raw,
		Line:    line,
		Column:  col,
	}
}

func (l *Lexer) reportIllegal() {
	l.diags = append(l.diags, diagnostics.NewWarning(
		diagnostics.ErrL001,
		token.Token{Line: l.line, Column: l.column},
		fmt.Sprintf("could not tokenize character %q", l.ch),
	))
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
