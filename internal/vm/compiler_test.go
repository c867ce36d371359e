package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/voltage-lang/voltage/internal/diagnostics"
)

func mustCompileError(t *testing.T, input string) *diagnostics.Diagnostic {
	t.Helper()
	_, err := NewCompiler().Compile(parse(t, input))
	if err == nil {
		t.Fatalf("expected compile error for %q", input)
	}
	var diag *diagnostics.Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("error is not a diagnostic: %T", err)
	}
	return diag
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{`fn outer() { fn inner() { } }`, diagnostics.ErrC001},
		{`break;`, diagnostics.ErrC003},
		{`continue;`, diagnostics.ErrC004},
		{`for x in 5 { }`, diagnostics.ErrC005},
		{`nothing();`, diagnostics.ErrC006},
		{`fn add(a, b) { } add(1);`, diagnostics.ErrC007},
		{`x = 5;`, diagnostics.ErrC008},
	}
	for _, tt := range tests {
		diag := mustCompileError(t, tt.input)
		if diag.Code != tt.code {
			t.Errorf("%q wrong code. got=%q, want=%q", tt.input, diag.Code, tt.code)
		}
	}
}

func TestJumpTargetsArePatched(t *testing.T) {
	chunk := compileSource(t, `
let i = 0;
while i < 3 {
	if i == 1 { break; } else { continue; }
}
if true { 1; } elif false { 2; } else { 3; }`)

	for offset := 0; offset < chunk.Len(); {
		op := Opcode(chunk.Code[offset])
		switch op {
		case OP_JUMP, OP_JUMP_IF_FALSE, OP_JUMP_IF_TRUE:
			target := chunk.ReadUint16(offset + 1)
			if target == 0xffff {
				t.Fatalf("unpatched jump at offset %d", offset)
			}
			if target > chunk.Len() {
				t.Fatalf("jump at offset %d points past the code: %d", offset, target)
			}
			offset += 3
		case OP_CONST, OP_GET_GLOBAL, OP_SET_GLOBAL, OP_MAKE_ARRAY:
			offset += 3
		case OP_CALL:
			offset += 4
		case OP_CALL_BUILTIN:
			offset += 3
		case OP_GET_LOCAL, OP_SET_LOCAL:
			offset += 2
		default:
			offset++
		}
	}
}

func TestFunctionEntryIsPatchedIntoSharedConstant(t *testing.T) {
	chunk := compileSource(t, `fn greet() { puts("hi"); }`)

	var fn *Function
	for _, c := range chunk.Constants {
		if c.IsFunc() {
			fn = c.AsFunction()
		}
	}
	if fn == nil {
		t.Fatal("no function constant in pool")
	}
	if fn.Name != "greet" {
		t.Errorf("wrong name. got=%q", fn.Name)
	}
	if fn.Entry < 0 {
		t.Errorf("entry offset never patched. got=%d", fn.Entry)
	}
}

func TestEntryFunctionIsOptIn(t *testing.T) {
	source := `fn main() { let ran = 1; }`

	// Without an entry function the body is only defined, never run.
	machine := New()
	machine.SetOutput(&bytes.Buffer{})
	if _, err := machine.Run(compileSource(t, source)); err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	if machine.Globals().Has("ran") {
		t.Errorf("body ran without an entry function")
	}

	compiler := NewCompiler()
	compiler.SetEntryFunction("main")
	chunk, err := compiler.Compile(parse(t, source))
	if err != nil {
		t.Fatalf("compilation error: %s", err)
	}
	machine = New()
	machine.SetOutput(&bytes.Buffer{})
	if _, err := machine.Run(chunk); err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	if !machine.Globals().Has("ran") {
		t.Errorf("entry function was not called")
	}
}

func TestImportCompilesToNothing(t *testing.T) {
	chunk := compileSource(t, `import math`)
	if chunk.Len() != 0 {
		t.Errorf("import emitted %d byte(s) of code", chunk.Len())
	}
}

func TestDisassembleSmoke(t *testing.T) {
	chunk := compileSource(t, `
fn add(a, b) { puts("{}", a + b); }
add(1, 2);`)

	out := Disassemble(chunk, "test")
	for _, want := range []string{"== test ==", "OP_CALL", "OP_CALL_BUILTIN", "OP_JUMP", "OP_RETURN"} {
		if !strings.Contains(out, want) {
			t.Errorf("disassembly is missing %q:\n%s", want, out)
		}
	}
}

func TestBuiltinLowering(t *testing.T) {
	chunk := compileSource(t, `puts("x"); print("y");`)

	var ids []byte
	for offset := 0; offset < chunk.Len(); {
		op := Opcode(chunk.Code[offset])
		switch op {
		case OP_CALL_BUILTIN:
			ids = append(ids, chunk.Code[offset+1])
			offset += 3
		case OP_CONST, OP_GET_GLOBAL, OP_SET_GLOBAL, OP_MAKE_ARRAY,
			OP_JUMP, OP_JUMP_IF_FALSE, OP_JUMP_IF_TRUE:
			offset += 3
		case OP_CALL:
			offset += 4
		case OP_GET_LOCAL, OP_SET_LOCAL:
			offset += 2
		default:
			offset++
		}
	}
	if len(ids) != 2 || ids[0] != BuiltinPuts || ids[1] != BuiltinPrint {
		t.Errorf("wrong builtin ids. got=%v, want=[%d %d]", ids, BuiltinPuts, BuiltinPrint)
	}
}
