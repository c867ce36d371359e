package vm

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
)

// LoopContext tracks the jumps emitted by break/continue inside the loop
// currently being compiled. Both sets are backpatched when the loop's
// layout is final: break jumps to the first instruction after the loop,
// continue to the loop's re-entry point (the condition for while, the
// index increment for for-in).
type LoopContext struct {
	breakJumps    []int
	continueJumps []int
}

// Compiler lowers a parsed program into a single chunk. Functions are
// collected in a pre-pass so forward references and recursion resolve
// through shared *Function constants whose entry offsets are patched once
// each body is emitted.
type Compiler struct {
	chunk *Chunk

	functions  map[string]*Function
	fnConstIdx map[string]int

	loops []*LoopContext

	// entryFunction, when set, is called automatically after the top-level
	// statements have run. The CLI sets it to "main"; the REPL leaves it
	// empty so accepted snippets never re-run it.
	entryFunction string

	// inFunction guards against nested function declarations.
	inFunction bool

	// loopCounter numbers the hidden iteration globals. It only ever
	// increases, so every compiled for loop owns its cursor pair even
	// when one loop's body calls into a function holding another loop.
	loopCounter int
}

func NewCompiler() *Compiler {
	return &Compiler{
		chunk:      NewChunk(),
		functions:  make(map[string]*Function),
		fnConstIdx: make(map[string]int),
	}
}

// SetEntryFunction makes Compile append a call to the named top-level
// function after the main-line statements.
func (c *Compiler) SetEntryFunction(name string) {
	c.entryFunction = name
}

// Compile lowers the statements into a chunk. The first violation aborts
// compilation and is returned as a diagnostic.
func (c *Compiler) Compile(statements []ast.Statement) (*Chunk, error) {
	// Pre-pass: register every top-level function so calls can resolve
	// before the body has been emitted.
	for _, stmt := range statements {
		if fn, ok := stmt.(*ast.FunctionStatement); ok {
			c.registerFunction(fn)
		}
	}

	for _, stmt := range statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}

	if c.entryFunction != "" {
		if idx, ok := c.fnConstIdx[c.entryFunction]; ok {
			line := 0
			if n := c.chunk.Len(); n > 0 {
				line = c.chunk.Line(n - 1)
			}
			c.chunk.WriteOp(OP_CALL, line)
			c.chunk.WriteUint16(idx, line)
			c.chunk.Write(0, line)
			c.chunk.WriteOp(OP_POP, line)
		}
	}
	return c.chunk, nil
}

// registerFunction creates (or reuses) the shared *Function constant for a
// declaration. A redeclaration reuses the record, so the last emitted body
// wins its entry offset.
func (c *Compiler) registerFunction(stmt *ast.FunctionStatement) *Function {
	if fn, ok := c.functions[stmt.Name]; ok {
		fn.NumParams = len(stmt.Parameters)
		return fn
	}
	fn := &Function{Name: stmt.Name, Entry: -1, NumParams: len(stmt.Parameters)}
	c.functions[stmt.Name] = fn
	c.fnConstIdx[stmt.Name] = c.chunk.AddConstant(FuncVal(fn))
	return fn
}

// identifierConstant interns a name in the constant pool for the
// global load/store instructions.
func (c *Compiler) identifierConstant(name string) int {
	return c.chunk.AddConstant(StringVal(name))
}

// emitJump writes op with a placeholder target and returns the offset of
// the operand for patchJump.
func (c *Compiler) emitJump(op Opcode, line int) int {
	c.chunk.WriteOp(op, line)
	operandAt := c.chunk.Len()
	c.chunk.Write(0xff, line)
	c.chunk.Write(0xff, line)
	return operandAt
}

// patchJump points a previously emitted jump at the current end of code.
func (c *Compiler) patchJump(operandAt int) {
	c.chunk.PatchUint16(operandAt, c.chunk.Len())
}

// patchJumpTo points a previously emitted jump at an explicit target.
func (c *Compiler) patchJumpTo(operandAt, target int) {
	c.chunk.PatchUint16(operandAt, target)
}

// emitJumpTo writes an unconditional jump to a known target.
func (c *Compiler) emitJumpTo(target, line int) {
	c.chunk.WriteOp(OP_JUMP, line)
	c.chunk.WriteUint16(target, line)
}

func (c *Compiler) currentLoop() *LoopContext {
	if len(c.loops) == 0 {
		return nil
	}
	return c.loops[len(c.loops)-1]
}

func compileError(code string, node ast.Node, format string, args ...any) error {
	return diagnostics.NewError(code, node.GetToken(), fmt.Sprintf(format, args...))
}
