package parser

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/token"
)

// parseDeclaration handles the top of the statement grammar: function and
// let declarations first, everything else falls through to parseStatement.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	switch p.cur().Type {
	case token.FN:
		return p.parseFunctionStatement()
	case token.LET:
		return p.parseLetStatement()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.LET:
		return p.parseLetStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		tok := p.advance()
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{Token: tok}, nil
	case token.CONTINUE:
		tok := p.advance()
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{Token: tok}, nil
	case token.UNSAFE:
		return p.parseUnsafeStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseFunctionStatement parses 'fn name(params) [-> type] { body }'.
// Missing parameter and return annotations degrade to unknown and void.
func (p *Parser) parseFunctionStatement() (ast.Statement, error) {
	fnTok, err := p.expect(token.FN)
	if err != nil {
		return nil, err
	}
	_, name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Parameter
	for !p.check(token.RPAREN) {
		_, pname, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		ptype := ast.Type(ast.UnknownType)
		if p.match(token.COLON) {
			ptype, err = p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, &ast.Parameter{Name: pname, Type: ptype})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	retType := ast.Type(ast.VoidType)
	if p.match(token.ARROW) {
		retType, err = p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStatement{
		Token:      fnTok,
		Name:       name,
		Parameters: params,
		ReturnType: retType,
		Body:       body,
	}, nil
}

// parseLetStatement parses 'let name [: type] = expr;'.
func (p *Parser) parseLetStatement() (ast.Statement, error) {
	letTok, err := p.expect(token.LET)
	if err != nil {
		return nil, err
	}
	_, name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	annot := ast.Type(ast.UnknownType)
	if p.match(token.COLON) {
		annot, err = p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.LetStatement{
		Token:          letTok,
		Name:           name,
		TypeAnnotation: annot,
		Value:          value,
	}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	ifTok, err := p.expect(token.IF)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	consequence, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Token: ifTok, Condition: cond, Consequence: consequence}
	for p.check(token.ELIF) {
		p.advance()
		elifCond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elifBody, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		stmt.ElifBranches = append(stmt.ElifBranches, &ast.ElifBranch{
			Condition: elifCond,
			Body:      elifBody,
		})
	}
	if p.match(token.ELSE) {
		alt, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alt
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	whileTok, err := p.expect(token.WHILE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseForStatement() (ast.Statement, error) {
	forTok, err := p.expect(token.FOR)
	if err != nil {
		return nil, err
	}
	_, item, err := p.expectIdent("loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Token: forTok, Item: item, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseUnsafeStatement() (ast.Statement, error) {
	unsafeTok, err := p.expect(token.UNSAFE)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.UnsafeStatement{Token: unsafeTok, Body: body}, nil
}

// parseImportStatement parses 'import module [as alias]'. The terminating
// semicolon is optional. The statement is recorded but has no runtime
// effect.
func (p *Parser) parseImportStatement() (ast.Statement, error) {
	importTok, err := p.expect(token.IMPORT)
	if err != nil {
		return nil, err
	}
	_, module, err := p.expectIdent("module name")
	if err != nil {
		return nil, err
	}
	alias := ""
	if p.match(token.AS) {
		_, alias, err = p.expectIdent("module alias")
		if err != nil {
			return nil, err
		}
	}
	p.match(token.SEMI)
	return &ast.ImportStatement{Token: importTok, Module: module, Alias: alias}, nil
}

// parseBlockStatement parses '{ statements }'.
func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{Token: lbrace}
	for !p.check(token.RBRACE) {
		if p.atEnd() {
			return nil, diagnostics.NewError(
				diagnostics.ErrP002,
				p.lastToken(),
				"unterminated block, expected \"}\"",
			)
		}
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseExpressionStatement parses 'expr;'.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	first := p.cur()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: first, Expression: expr}, nil
}

// invalidAssignTarget reports an '=' whose left side is not assignable.
func invalidAssignTarget(eqTok token.Token, left ast.Expression) error {
	return diagnostics.NewError(
		diagnostics.ErrP001,
		eqTok,
		fmt.Sprintf("invalid assignment target %q", left.String()),
	)
}
