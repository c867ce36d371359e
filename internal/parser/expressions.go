package parser

import (
	"fmt"
	"strings"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/token"
)

// Precedence is encoded in the call chain, loosest first:
// assignment, equality, comparison, additive, multiplicative, postfix.

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment handles 'target = value' (right-associative). The target
// must already be an identifier, index expression, or field access; the
// corresponding assignment node replaces it.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if !p.check(token.ASSIGN) {
		return left, nil
	}
	eqTok := p.advance()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	switch target := left.(type) {
	case *ast.Identifier:
		return &ast.AssignExpression{Token: eqTok, Name: target.Value, Value: value}, nil
	case *ast.IndexExpression:
		return &ast.IndexAssignment{Token: eqTok, Left: target.Left, Index: target.Index, Value: value}, nil
	case *ast.FieldAccess:
		return &ast.FieldAssignment{Token: eqTok, Object: target.Object, Field: target.Field, Value: value}, nil
	default:
		return nil, invalidAssignTarget(eqTok, left)
	}
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		op := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Lexeme, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.check(token.LT) || p.check(token.LTE) || p.check(token.GT) || p.check(token.GTE) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Lexeme, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Lexeme, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.check(token.ASTERISK) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Lexeme, Right: right}
	}
	return left, nil
}

// parsePostfix parses a primary followed by any number of call, index, and
// field-access suffixes.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.LPAREN:
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case token.LBRACKET:
			lbracket := p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpression{Token: lbracket, Left: expr, Index: index}
		case token.DOT:
			dot := p.advance()
			_, field, err := p.expectIdent("field name")
			if err != nil {
				return nil, err
			}
			expr = &ast.FieldAccess{Token: dot, Object: expr, Field: field}
		default:
			return expr, nil
		}
	}
}

// finishCall consumes '(args)' after a callee. Only simple identifiers are
// callable; method-style calls on a field access are rejected here. Calls
// to puts/print whose first argument is a string literal containing "{}"
// are rewritten into a format call.
func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	ident, ok := callee.(*ast.Identifier)
	if !ok {
		return nil, diagnostics.NewError(
			diagnostics.ErrP004,
			p.cur(),
			fmt.Sprintf("cannot call %q, only simple names are callable", callee.String()),
		)
	}
	lparen, err := p.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}

	var args []ast.Expression
	for !p.check(token.RPAREN) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if ident.Value == "puts" || ident.Value == "print" {
		if len(args) > 0 {
			if lit, ok := args[0].(*ast.StringLiteral); ok {
				format := lit.Value()
				if strings.Contains(format, "{}") {
					return &ast.FormatCallExpression{
						Token:     lparen,
						Name:      ident.Value,
						Format:    format,
						Arguments: args[1:],
					}, nil
				}
			}
		}
	}
	return &ast.CallExpression{Token: lparen, Name: ident.Value, Arguments: args}, nil
}

// parsePrimary parses literals, grouped expressions, array literals, and
// identifier-led forms. An identifier directly followed by '{' starts a
// struct initialization; one followed by '::' starts an enum variant.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur().Type {
	case token.NUMBER:
		tok := p.advance()
		value, _ := tok.Literal.(int64)
		return &ast.IntegerLiteral{Token: tok, Value: value}, nil

	case token.STRING:
		tok := p.advance()
		return &ast.StringLiteral{Token: tok, Raw: tok.Lexeme}, nil

	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case token.LBRACKET:
		return p.parseArrayLiteral()

	case token.IDENT:
		tok := p.cur()
		switch tok.Text() {
		case "true":
			p.advance()
			return &ast.BooleanLiteral{Token: tok, Value: true}, nil
		case "false":
			p.advance()
			return &ast.BooleanLiteral{Token: tok, Value: false}, nil
		}
		if p.peek().Type == token.LBRACE {
			return p.parseStructInitialization()
		}
		if p.peek().Type == token.DOUBLECOLON {
			return p.parseEnumVariant()
		}
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Text()}, nil

	default:
		if p.atEnd() {
			return nil, diagnostics.NewError(
				diagnostics.ErrP002,
				p.lastToken(),
				"expected expression, got end of input",
			)
		}
		return nil, diagnostics.NewError(
			diagnostics.ErrP001,
			p.cur(),
			fmt.Sprintf("expected expression, found %q", p.cur().Lexeme),
		)
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	lbracket, err := p.expect(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	lit := &ast.ArrayLiteral{Token: lbracket}
	for !p.check(token.RBRACKET) {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, elem)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return lit, nil
}

// parseStructInitialization parses 'Name { field: expr, ... }' with an
// optional trailing comma.
func (p *Parser) parseStructInitialization() (ast.Expression, error) {
	nameTok, name, err := p.expectIdent("struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	init := &ast.StructInitialization{Token: nameTok, Name: name}
	for !p.check(token.RBRACE) {
		_, fieldName, err := p.expectIdent("field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init.Fields = append(init.Fields, &ast.StructField{Name: fieldName, Value: value})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return init, nil
}

// parseEnumVariant parses 'Enum::Variant' with an optional payload list.
func (p *Parser) parseEnumVariant() (ast.Expression, error) {
	nameTok, enumName, err := p.expectIdent("enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DOUBLECOLON); err != nil {
		return nil, err
	}
	_, variant, err := p.expectIdent("variant name")
	if err != nil {
		return nil, err
	}
	ev := &ast.EnumVariant{Token: nameTok, EnumName: enumName, Variant: variant}
	if p.match(token.LPAREN) {
		for !p.check(token.RPAREN) {
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			ev.Values = append(ev.Values, value)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	return ev, nil
}
