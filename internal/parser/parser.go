// Package parser implements a recursive-descent parser over the token
// sequence. Every production returns an explicit error; a structural
// violation aborts the current top-level unit and bubbles to the caller
// instead of terminating the process.
package parser

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses the whole token sequence into an ordered list of
// top-level statements. The first structural violation stops parsing and is
// returned alongside the statements accepted so far.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return statements, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// cursor helpers

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) cur() token.Token {
	if p.atEnd() {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *Parser) check(tt token.TokenType) bool {
	return p.cur().Type == tt
}

func (p *Parser) match(tt token.TokenType) bool {
	if p.check(tt) {
		p.pos++
		return true
	}
	return false
}

// expect consumes the current token if it has the wanted type, or fails
// with an expected-vs-found diagnostic.
func (p *Parser) expect(tt token.TokenType) (token.Token, error) {
	if p.atEnd() {
		return token.Token{}, diagnostics.NewError(
			diagnostics.ErrP002,
			p.lastToken(),
			fmt.Sprintf("expected %q, got end of input", string(tt)),
		)
	}
	if !p.check(tt) {
		return token.Token{}, diagnostics.NewError(
			diagnostics.ErrP001,
			p.cur(),
			fmt.Sprintf("expected %q, found %q", string(tt), p.cur().Lexeme),
		)
	}
	return p.advance(), nil
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent(what string) (token.Token, string, error) {
	if p.atEnd() {
		return token.Token{}, "", diagnostics.NewError(
			diagnostics.ErrP002,
			p.lastToken(),
			fmt.Sprintf("expected %s, got end of input", what),
		)
	}
	if !p.check(token.IDENT) {
		return token.Token{}, "", diagnostics.NewError(
			diagnostics.ErrP001,
			p.cur(),
			fmt.Sprintf("expected %s, found %q", what, p.cur().Lexeme),
		)
	}
	tok := p.advance()
	return tok, tok.Text(), nil
}

func (p *Parser) lastToken() token.Token {
	if len(p.tokens) == 0 {
		return token.Token{}
	}
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// parseTypeAnnotation parses the type after ':' or '->'. Only identifier
// type names exist in the surface grammar; unknown names degrade to
// UnknownType, while a non-identifier token is an error.
func (p *Parser) parseTypeAnnotation() (ast.Type, error) {
	if p.atEnd() || !p.check(token.IDENT) {
		return nil, diagnostics.NewError(
			diagnostics.ErrP003,
			p.cur(),
			fmt.Sprintf("expected type name, found %q", p.cur().Lexeme),
		)
	}
	tok := p.advance()
	return ast.LookupPrimitive(tok.Text()), nil
}
