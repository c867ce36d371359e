package vm

import (
	"io"
	"os"
)

// Initial operand stack capacity
const InitialStackSize = 256

// CallFrame represents a single ongoing function call. Locals are reserved
// in the frame shape for an indexed-slot lowering; the current lowering
// binds everything through the global environment.
type CallFrame struct {
	returnAddr int
	locals     []Value
}

// VM is a single-threaded stack machine executing one chunk at a time.
// Globals survive across Run calls, which is what the REPL relies on.
type VM struct {
	chunk *Chunk
	ip    int

	stack []Value
	sp    int // points to next free slot

	frames []CallFrame

	globals *Globals
	output  io.Writer

	lastPopped Value
}

// New creates a VM with a fresh global environment writing to stdout.
func New() *VM {
	return NewWithGlobals(NewGlobals())
}

// NewWithGlobals creates a VM sharing an existing global environment.
func NewWithGlobals(globals *Globals) *VM {
	return &VM{
		stack:   make([]Value, InitialStackSize),
		globals: globals,
		output:  os.Stdout,
	}
}

// SetOutput redirects builtin output, mainly for tests and the REPL.
func (vm *VM) SetOutput(w io.Writer) {
	vm.output = w
}

// Globals exposes the global environment for inspection.
func (vm *VM) Globals() *Globals {
	return vm.globals
}

// LastPopped returns the value most recently discarded by OP_POP, which is
// the result of the last expression statement.
func (vm *VM) LastPopped() Value {
	return vm.lastPopped
}

func (vm *VM) push(v Value) {
	if vm.sp == len(vm.stack) {
		vm.stack = append(vm.stack, make([]Value, InitialStackSize)...)
	}
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() (Value, *RuntimeError) {
	if vm.sp == 0 {
		return Value{}, newRuntimeError(StackUnderflow, vm.currentLine(), "operand stack is empty")
	}
	vm.sp--
	return vm.stack[vm.sp], nil
}

func (vm *VM) peek() (Value, *RuntimeError) {
	if vm.sp == 0 {
		return Value{}, newRuntimeError(StackUnderflow, vm.currentLine(), "operand stack is empty")
	}
	return vm.stack[vm.sp-1], nil
}

// currentLine maps the instruction being executed back to its source line.
func (vm *VM) currentLine() int {
	if vm.chunk == nil {
		return 0
	}
	return vm.chunk.Line(vm.ip - 1)
}
