package parser

import (
	"errors"
	"testing"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/lexer"
)

func parseProgram(t *testing.T, input string) []ast.Statement {
	t.Helper()
	statements, err := New(lexer.New(input).Tokenize()).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	return statements
}

func parseError(t *testing.T, input string) *diagnostics.Diagnostic {
	t.Helper()
	_, err := New(lexer.New(input).Tokenize()).ParseProgram()
	if err == nil {
		t.Fatalf("expected parse error for %q", input)
	}
	var diag *diagnostics.Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("error is not a diagnostic: %T", err)
	}
	return diag
}

func TestLetStatement(t *testing.T) {
	statements := parseProgram(t, `let x: int = 5;`)
	if len(statements) != 1 {
		t.Fatalf("wrong statement count. got=%d", len(statements))
	}
	let, ok := statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("statement is not LetStatement. got=%T", statements[0])
	}
	if let.Name != "x" {
		t.Errorf("wrong name. got=%q", let.Name)
	}
	if let.TypeAnnotation != ast.IntegerType {
		t.Errorf("wrong annotation. got=%s", let.TypeAnnotation)
	}
	if let.Value.String() != "5" {
		t.Errorf("wrong value. got=%q", let.Value.String())
	}
}

func TestLetWithUnknownTypeName(t *testing.T) {
	statements := parseProgram(t, `let p: Point = 1;`)
	let := statements[0].(*ast.LetStatement)
	if let.TypeAnnotation != ast.UnknownType {
		t.Errorf("unknown type name should degrade to unknown. got=%s", let.TypeAnnotation)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	statements := parseProgram(t, `fn add(a: int, b: int) -> int { a + b; }`)
	fn, ok := statements[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("statement is not FunctionStatement. got=%T", statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("wrong name. got=%q", fn.Name)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("wrong parameter count. got=%d", len(fn.Parameters))
	}
	if fn.Parameters[0].Name != "a" || fn.Parameters[1].Name != "b" {
		t.Errorf("wrong parameter names. got=%q, %q", fn.Parameters[0].Name, fn.Parameters[1].Name)
	}
	if fn.ReturnType != ast.IntegerType {
		t.Errorf("wrong return type. got=%s", fn.ReturnType)
	}
	if len(fn.Body.Statements) != 1 {
		t.Errorf("wrong body length. got=%d", len(fn.Body.Statements))
	}
}

func TestFunctionWithoutReturnTypeIsVoid(t *testing.T) {
	statements := parseProgram(t, `fn main() { }`)
	fn := statements[0].(*ast.FunctionStatement)
	if fn.ReturnType != ast.VoidType {
		t.Errorf("missing annotation should default to void. got=%s", fn.ReturnType)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"1 * 2 + 3;", "((1 * 2) + 3);"},
		{"1 + 2 < 3 + 4;", "((1 + 2) < (3 + 4));"},
		{"1 < 2 == true;", "((1 < 2) == true);"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"10 % 3 - 1;", "((10 % 3) - 1);"},
		{"a + b[0];", "(a + b[0]);"},
	}

	for _, tt := range tests {
		statements := parseProgram(t, tt.input)
		if got := statements[0].String(); got != tt.expected {
			t.Errorf("%q parsed wrong. got=%q, want=%q", tt.input, got, tt.expected)
		}
	}
}

func TestIfElifElse(t *testing.T) {
	statements := parseProgram(t, `if a < 1 { puts("a"); } elif a < 2 { puts("b"); } elif a < 3 { puts("c"); } else { puts("d"); }`)
	stmt, ok := statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is not IfStatement. got=%T", statements[0])
	}
	if len(stmt.ElifBranches) != 2 {
		t.Errorf("wrong elif count. got=%d", len(stmt.ElifBranches))
	}
	if stmt.Alternative == nil {
		t.Errorf("else branch missing")
	}
}

func TestForInStatement(t *testing.T) {
	statements := parseProgram(t, `for item in [1, 2, 3] { puts(item); }`)
	stmt, ok := statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is not ForStatement. got=%T", statements[0])
	}
	if stmt.Item != "item" {
		t.Errorf("wrong loop variable. got=%q", stmt.Item)
	}
	if _, ok := stmt.Iterable.(*ast.ArrayLiteral); !ok {
		t.Errorf("iterable is not ArrayLiteral. got=%T", stmt.Iterable)
	}
}

func TestStructInitializationDisambiguation(t *testing.T) {
	statements := parseProgram(t, `let p = Point { x: 1, y: 2 };`)
	let := statements[0].(*ast.LetStatement)
	init, ok := let.Value.(*ast.StructInitialization)
	if !ok {
		t.Fatalf("value is not StructInitialization. got=%T", let.Value)
	}
	if init.Name != "Point" {
		t.Errorf("wrong struct name. got=%q", init.Name)
	}
	if len(init.Fields) != 2 {
		t.Fatalf("wrong field count. got=%d", len(init.Fields))
	}
	if init.Fields[0].Name != "x" || init.Fields[1].Name != "y" {
		t.Errorf("wrong field names. got=%q, %q", init.Fields[0].Name, init.Fields[1].Name)
	}
}

func TestEnumVariantDisambiguation(t *testing.T) {
	statements := parseProgram(t, `let c = Color::Red; let s = Shape::Circle(1, 2);`)

	first := statements[0].(*ast.LetStatement).Value.(*ast.EnumVariant)
	if first.EnumName != "Color" || first.Variant != "Red" {
		t.Errorf("wrong variant. got=%s::%s", first.EnumName, first.Variant)
	}
	if len(first.Values) != 0 {
		t.Errorf("payload should be empty. got=%d", len(first.Values))
	}

	second := statements[1].(*ast.LetStatement).Value.(*ast.EnumVariant)
	if len(second.Values) != 2 {
		t.Errorf("wrong payload count. got=%d", len(second.Values))
	}
}

func TestBooleanIdentifiersAreLiterals(t *testing.T) {
	statements := parseProgram(t, `let a = true; let b = false;`)
	a := statements[0].(*ast.LetStatement).Value
	if lit, ok := a.(*ast.BooleanLiteral); !ok || !lit.Value {
		t.Errorf("true did not parse as boolean literal. got=%T (%s)", a, a.String())
	}
	b := statements[1].(*ast.LetStatement).Value
	if lit, ok := b.(*ast.BooleanLiteral); !ok || lit.Value {
		t.Errorf("false did not parse as boolean literal. got=%T (%s)", b, b.String())
	}
}

func TestFormatCallRewrite(t *testing.T) {
	statements := parseProgram(t, `puts("x is {}", x);`)
	expr := statements[0].(*ast.ExpressionStatement).Expression
	fc, ok := expr.(*ast.FormatCallExpression)
	if !ok {
		t.Fatalf("call was not rewritten. got=%T", expr)
	}
	if fc.Format != "x is {}" {
		t.Errorf("wrong format. got=%q", fc.Format)
	}
	if len(fc.Arguments) != 1 {
		t.Errorf("format string leaked into arguments. got=%d", len(fc.Arguments))
	}
}

func TestPlainPutsIsNotRewritten(t *testing.T) {
	statements := parseProgram(t, `puts("no placeholders", x);`)
	expr := statements[0].(*ast.ExpressionStatement).Expression
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected plain CallExpression. got=%T", expr)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("wrong argument count. got=%d", len(call.Arguments))
	}
}

func TestAssignmentRewrites(t *testing.T) {
	statements := parseProgram(t, `x = 1; a[0] = 2; p.x = 3;`)

	if _, ok := statements[0].(*ast.ExpressionStatement).Expression.(*ast.AssignExpression); !ok {
		t.Errorf("bare assignment did not rewrite. got=%T", statements[0].(*ast.ExpressionStatement).Expression)
	}
	if _, ok := statements[1].(*ast.ExpressionStatement).Expression.(*ast.IndexAssignment); !ok {
		t.Errorf("index assignment did not rewrite. got=%T", statements[1].(*ast.ExpressionStatement).Expression)
	}
	if _, ok := statements[2].(*ast.ExpressionStatement).Expression.(*ast.FieldAssignment); !ok {
		t.Errorf("field assignment did not rewrite. got=%T", statements[2].(*ast.ExpressionStatement).Expression)
	}
}

func TestMethodCallIsRejected(t *testing.T) {
	diag := parseError(t, `p.render();`)
	if diag.Code != diagnostics.ErrP004 {
		t.Errorf("wrong code. got=%q, want=%q", diag.Code, diagnostics.ErrP004)
	}
}

func TestMissingTokenError(t *testing.T) {
	diag := parseError(t, `let = 5;`)
	if diag.Code != diagnostics.ErrP001 {
		t.Errorf("wrong code. got=%q, want=%q", diag.Code, diagnostics.ErrP001)
	}
}

func TestUnexpectedEndOfInput(t *testing.T) {
	diag := parseError(t, `fn broken() {`)
	if diag.Code != diagnostics.ErrP002 {
		t.Errorf("wrong code. got=%q, want=%q", diag.Code, diagnostics.ErrP002)
	}
}

func TestInvalidTypeAnnotation(t *testing.T) {
	diag := parseError(t, `let x: 5 = 1;`)
	if diag.Code != diagnostics.ErrP003 {
		t.Errorf("wrong code. got=%q, want=%q", diag.Code, diagnostics.ErrP003)
	}
}

func TestImportStatementWithoutSemicolon(t *testing.T) {
	statements := parseProgram(t, "import math\nlet x = 1;")
	if len(statements) != 2 {
		t.Fatalf("wrong statement count. got=%d", len(statements))
	}
	imp, ok := statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("statement is not ImportStatement. got=%T", statements[0])
	}
	if imp.Module != "math" {
		t.Errorf("wrong module. got=%q", imp.Module)
	}
}

func TestBareBlockStatement(t *testing.T) {
	statements := parseProgram(t, `{ let x = 1; let y = 2; }`)
	if len(statements) != 1 {
		t.Fatalf("wrong statement count. got=%d", len(statements))
	}
	block, ok := statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("statement is not BlockStatement. got=%T", statements[0])
	}
	if len(block.Statements) != 2 {
		t.Errorf("wrong body length. got=%d", len(block.Statements))
	}
}

func TestImportStatement(t *testing.T) {
	statements := parseProgram(t, `import math; import net as web;`)
	first := statements[0].(*ast.ImportStatement)
	if first.Module != "math" || first.Alias != "" {
		t.Errorf("wrong import. got=%q as %q", first.Module, first.Alias)
	}
	second := statements[1].(*ast.ImportStatement)
	if second.Module != "net" || second.Alias != "web" {
		t.Errorf("wrong aliased import. got=%q as %q", second.Module, second.Alias)
	}
}

func TestUnsafeBlock(t *testing.T) {
	statements := parseProgram(t, `unsafe { let x = 1; }`)
	stmt, ok := statements[0].(*ast.UnsafeStatement)
	if !ok {
		t.Fatalf("statement is not UnsafeStatement. got=%T", statements[0])
	}
	if len(stmt.Body.Statements) != 1 {
		t.Errorf("wrong body length. got=%d", len(stmt.Body.Statements))
	}
}
