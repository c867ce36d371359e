// Package ast defines the abstract syntax tree produced by the parser.
// Each node owns its children exclusively; nothing is shared or mutated
// after construction.
package ast

import (
	"fmt"
	"strings"

	"github.com/voltage-lang/voltage/internal/token"
)

// Node is the base interface for all AST nodes. String renders the node's
// structural shape deterministically, which the tests rely on.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	String() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
func (es *ExpressionStatement) String() string        { return es.Expression.String() + ";" }

// LetStatement represents a variable declaration.
// let x: int = expr;
type LetStatement struct {
	Token          token.Token // the 'let' token
	Name           string
	TypeAnnotation Type // UnknownType when no annotation was written
	Value          Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }
func (ls *LetStatement) String() string {
	if ls.TypeAnnotation != nil && ls.TypeAnnotation != UnknownType {
		return fmt.Sprintf("let %s: %s = %s;", ls.Name, ls.TypeAnnotation.String(), ls.Value.String())
	}
	return fmt.Sprintf("let %s = %s;", ls.Name, ls.Value.String())
}

// BlockStatement represents a list of statements within curly braces.
type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }
func (bs *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range bs.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// Parameter is one function parameter with its declared or unknown type.
type Parameter struct {
	Name string
	Type Type
}

// FunctionStatement represents a function declaration. Built once by the
// parser and consumed read-only by the compiler and the codegen backend.
type FunctionStatement struct {
	Token      token.Token // the 'fn' token
	Name       string
	Parameters []*Parameter
	ReturnType Type // VoidType when no '->' annotation was written
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }
func (fs *FunctionStatement) String() string {
	params := make([]string, len(fs.Parameters))
	for i, p := range fs.Parameters {
		if p.Type != nil && p.Type != UnknownType {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.String())
		} else {
			params[i] = p.Name
		}
	}
	ret := ""
	if fs.ReturnType != nil && fs.ReturnType != VoidType {
		ret = " -> " + fs.ReturnType.String()
	}
	return fmt.Sprintf("fn %s(%s)%s %s", fs.Name, strings.Join(params, ", "), ret, fs.Body.String())
}

// ElifBranch is one 'elif cond { ... }' arm of an if statement.
type ElifBranch struct {
	Condition Expression
	Body      *BlockStatement
}

// IfStatement represents if/elif*/else.
type IfStatement struct {
	Token        token.Token // the 'if' token
	Condition    Expression
	Consequence  *BlockStatement
	ElifBranches []*ElifBranch
	Alternative  *BlockStatement // nil when there is no else
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }
func (is *IfStatement) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "if %s %s", is.Condition.String(), is.Consequence.String())
	for _, eb := range is.ElifBranches {
		fmt.Fprintf(&sb, " elif %s %s", eb.Condition.String(), eb.Body.String())
	}
	if is.Alternative != nil {
		fmt.Fprintf(&sb, " else %s", is.Alternative.String())
	}
	return sb.String()
}

// WhileStatement represents a while loop.
type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }
func (ws *WhileStatement) String() string {
	return fmt.Sprintf("while %s %s", ws.Condition.String(), ws.Body.String())
}

// ForStatement represents 'for item in iterable { ... }'.
type ForStatement struct {
	Token    token.Token // the 'for' token
	Item     string
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }
func (fs *ForStatement) String() string {
	return fmt.Sprintf("for %s in %s %s", fs.Item, fs.Iterable.String(), fs.Body.String())
}

// BreakStatement represents 'break;'.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }
func (bs *BreakStatement) String() string        { return "break;" }

// ContinueStatement represents 'continue;'.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }
func (cs *ContinueStatement) String() string        { return "continue;" }

// UnsafeStatement represents 'unsafe { ... }'. The core executes the body
// like any other block.
type UnsafeStatement struct {
	Token token.Token // the 'unsafe' token
	Body  *BlockStatement
}

func (us *UnsafeStatement) statementNode()        {}
func (us *UnsafeStatement) TokenLiteral() string  { return us.Token.Lexeme }
func (us *UnsafeStatement) GetToken() token.Token { return us.Token }
func (us *UnsafeStatement) String() string        { return "unsafe " + us.Body.String() }

// ImportStatement represents 'import module' or 'import module as alias'.
// Module resolution is not part of the core; the compiler treats this as a
// no-op.
type ImportStatement struct {
	Token  token.Token // the 'import' token
	Module string
	Alias  string // empty when no 'as' clause was written
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }
func (is *ImportStatement) String() string {
	if is.Alias != "" {
		return fmt.Sprintf("import %s as %s", is.Module, is.Alias)
	}
	return "import " + is.Module
}
