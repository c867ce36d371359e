// Package backend is the native code generation surface. The current
// implementation is a stub: it records builtin declarations and accepts
// function bodies, but emits nothing and reports every compiled function
// at address 0. It exists so the driver's inspection path exercises the
// same entry points a real backend will.
package backend

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/config"
)

// BuiltinDecl describes one host function visible to generated code.
type BuiltinDecl struct {
	Name         string
	Variadic     bool
	ReturnsValue bool
}

// Backend accumulates declarations and compiled function names.
type Backend struct {
	builtins map[string]BuiltinDecl
	compiled []string
}

func New() *Backend {
	return &Backend{builtins: make(map[string]BuiltinDecl)}
}

// DeclareBuiltins registers the host builtins under their call ABI. Both
// print functions take any number of arguments and yield no value.
func (b *Backend) DeclareBuiltins() {
	b.builtins[config.PutsFuncName] = BuiltinDecl{Name: config.PutsFuncName, Variadic: true}
	b.builtins[config.PrintFuncName] = BuiltinDecl{Name: config.PrintFuncName, Variadic: true}
}

// DeclaredBuiltins lists the registered builtin names.
func (b *Backend) DeclaredBuiltins() []string {
	names := make([]string, 0, len(b.builtins))
	for name := range b.builtins {
		names = append(names, name)
	}
	return names
}

// CompileFunction accepts a function declaration and returns the address
// of its generated code. The stub validates the input, records the name,
// and always yields address 0.
func (b *Backend) CompileFunction(fn *ast.FunctionStatement) (uint64, error) {
	if fn == nil || fn.Body == nil {
		return 0, fmt.Errorf("backend: function without a body")
	}
	b.compiled = append(b.compiled, fn.Name)
	return 0, nil
}

// CompiledFunctions lists the names handed to CompileFunction, in order.
func (b *Backend) CompiledFunctions() []string {
	return b.compiled
}
