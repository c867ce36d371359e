package ast

import (
	"fmt"
	"strings"

	"github.com/voltage-lang/voltage/internal/token"
)

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }
func (il *IntegerLiteral) String() string        { return fmt.Sprintf("%d", il.Value) }

// FloatLiteral represents a float literal. The lexer does not currently
// produce these, but the value model includes floats and the compiler
// lowers them like any other literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }
func (fl *FloatLiteral) String() string        { return fmt.Sprintf("%g", fl.Value) }

// StringLiteral carries the raw quoted text exactly as lexed, surrounding
// quotes and backslash escapes included. Value() decodes it.
type StringLiteral struct {
	Token token.Token
	Raw   string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }
func (sl *StringLiteral) String() string        { return sl.Raw }

// Value strips the surrounding quotes and processes backslash escapes.
func (sl *StringLiteral) Value() string {
	s := sl.Raw
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// BooleanLiteral represents 'true' or 'false'.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }
func (bl *BooleanLiteral) String() string        { return fmt.Sprintf("%t", bl.Value) }

// Identifier represents a plain variable reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (id *Identifier) expressionNode()       {}
func (id *Identifier) TokenLiteral() string  { return id.Token.Lexeme }
func (id *Identifier) GetToken() token.Token { return id.Token }
func (id *Identifier) String() string        { return id.Value }

// BinaryExpression represents 'left op right'.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }
func (be *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Operator, be.Right.String())
}

// CallExpression represents 'name(args...)'. Only identifiers are callable.
type CallExpression struct {
	Token     token.Token // the '(' token
	Name      string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", ce.Name, strings.Join(args, ", "))
}

// FormatCallExpression is the rewritten form of a puts/print call whose
// first argument was a string literal containing "{}". Format carries the
// decoded format string; Arguments carries only the substitution values.
type FormatCallExpression struct {
	Token     token.Token
	Name      string
	Format    string
	Arguments []Expression
}

func (fc *FormatCallExpression) expressionNode()       {}
func (fc *FormatCallExpression) TokenLiteral() string  { return fc.Token.Lexeme }
func (fc *FormatCallExpression) GetToken() token.Token { return fc.Token }
func (fc *FormatCallExpression) String() string {
	args := make([]string, 0, len(fc.Arguments)+1)
	args = append(args, fmt.Sprintf("%q", fc.Format))
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", fc.Name, strings.Join(args, ", "))
}

// ArrayLiteral represents '[e, e, ...]'.
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }
func (al *ArrayLiteral) String() string {
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// IndexExpression represents 'array[index]'.
type IndexExpression struct {
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }
func (ie *IndexExpression) String() string {
	return fmt.Sprintf("%s[%s]", ie.Left.String(), ie.Index.String())
}

// IndexAssignment represents 'array[index] = value'.
type IndexAssignment struct {
	Token token.Token // the '=' token
	Left  Expression
	Index Expression
	Value Expression
}

func (ia *IndexAssignment) expressionNode()       {}
func (ia *IndexAssignment) TokenLiteral() string  { return ia.Token.Lexeme }
func (ia *IndexAssignment) GetToken() token.Token { return ia.Token }
func (ia *IndexAssignment) String() string {
	return fmt.Sprintf("%s[%s] = %s", ia.Left.String(), ia.Index.String(), ia.Value.String())
}

// AssignExpression represents bare reassignment 'name = value'. The grammar
// accepts it but the compiler rejects it; declaring a binding requires let.
type AssignExpression struct {
	Token token.Token // the '=' token
	Name  string
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }
func (ae *AssignExpression) String() string {
	return fmt.Sprintf("%s = %s", ae.Name, ae.Value.String())
}

// StructField is one 'name: value' pair of a struct initialization.
type StructField struct {
	Name  string
	Value Expression
}

// StructInitialization represents 'Name { field: expr, ... }'.
type StructInitialization struct {
	Token  token.Token // the struct name token
	Name   string
	Fields []*StructField
}

func (si *StructInitialization) expressionNode()       {}
func (si *StructInitialization) TokenLiteral() string  { return si.Token.Lexeme }
func (si *StructInitialization) GetToken() token.Token { return si.Token }
func (si *StructInitialization) String() string {
	fields := make([]string, len(si.Fields))
	for i, f := range si.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Value.String())
	}
	return fmt.Sprintf("%s { %s }", si.Name, strings.Join(fields, ", "))
}

// FieldAccess represents 'object.field'.
type FieldAccess struct {
	Token  token.Token // the '.' token
	Object Expression
	Field  string
}

func (fa *FieldAccess) expressionNode()       {}
func (fa *FieldAccess) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAccess) GetToken() token.Token { return fa.Token }
func (fa *FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", fa.Object.String(), fa.Field)
}

// FieldAssignment represents 'object.field = value'.
type FieldAssignment struct {
	Token  token.Token // the '=' token
	Object Expression
	Field  string
	Value  Expression
}

func (fa *FieldAssignment) expressionNode()       {}
func (fa *FieldAssignment) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAssignment) GetToken() token.Token { return fa.Token }
func (fa *FieldAssignment) String() string {
	return fmt.Sprintf("%s.%s = %s", fa.Object.String(), fa.Field, fa.Value.String())
}

// EnumVariant represents 'Enum::Variant' or 'Enum::Variant(args...)'.
type EnumVariant struct {
	Token    token.Token // the enum name token
	EnumName string
	Variant  string
	Values   []Expression
}

func (ev *EnumVariant) expressionNode()       {}
func (ev *EnumVariant) TokenLiteral() string  { return ev.Token.Lexeme }
func (ev *EnumVariant) GetToken() token.Token { return ev.Token }
func (ev *EnumVariant) String() string {
	if len(ev.Values) == 0 {
		return fmt.Sprintf("%s::%s", ev.EnumName, ev.Variant)
	}
	vals := make([]string, len(ev.Values))
	for i, v := range ev.Values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("%s::%s(%s)", ev.EnumName, ev.Variant, strings.Join(vals, ", "))
}

// MatchArm is one arm of an enum match.
type MatchArm struct {
	Variant  string // empty for a wildcard arm
	Bindings []string
	Body     Expression
}

// EnumMatch represents a match over enum variants. The surface grammar
// does not currently produce it; the compiler lowers it schematically.
type EnumMatch struct {
	Token   token.Token
	Subject Expression
	Arms    []*MatchArm
}

func (em *EnumMatch) expressionNode()       {}
func (em *EnumMatch) TokenLiteral() string  { return em.Token.Lexeme }
func (em *EnumMatch) GetToken() token.Token { return em.Token }
func (em *EnumMatch) String() string {
	return fmt.Sprintf("match %s { %d arms }", em.Subject.String(), len(em.Arms))
}
