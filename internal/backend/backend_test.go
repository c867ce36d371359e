package backend

import (
	"sort"
	"testing"

	"github.com/voltage-lang/voltage/internal/ast"
)

func TestDeclareBuiltins(t *testing.T) {
	b := New()
	b.DeclareBuiltins()

	names := b.DeclaredBuiltins()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "print" || names[1] != "puts" {
		t.Errorf("wrong builtins. got=%v", names)
	}
}

func TestCompileFunctionStubYieldsZero(t *testing.T) {
	b := New()
	fn := &ast.FunctionStatement{Name: "main", Body: &ast.BlockStatement{}}

	addr, err := b.CompileFunction(fn)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if addr != 0 {
		t.Errorf("stub must yield address 0. got=%d", addr)
	}
	if got := b.CompiledFunctions(); len(got) != 1 || got[0] != "main" {
		t.Errorf("compiled names not recorded. got=%v", got)
	}
}

func TestCompileFunctionRejectsMissingBody(t *testing.T) {
	b := New()
	if _, err := b.CompileFunction(&ast.FunctionStatement{Name: "broken"}); err == nil {
		t.Errorf("missing body should fail")
	}
}
