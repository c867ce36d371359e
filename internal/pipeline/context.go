package pipeline

import (
	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/token"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the artifacts of a single compile-and-run cycle
// through the stages. Compiled bytecode is stored untyped so this package
// stays below the vm package in the dependency order.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	Statements  []ast.Statement

	// Compiled holds the *vm.Chunk produced by the compiler stage.
	Compiled any

	Errors   []*diagnostics.Diagnostic
	Warnings []*diagnostics.Diagnostic
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any stage recorded an error-severity diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	for _, d := range ctx.Errors {
		if d.IsError() {
			return true
		}
	}
	return false
}

// AddError appends an error, stamping the context's file path on it.
func (ctx *PipelineContext) AddError(d *diagnostics.Diagnostic) {
	if d.File == "" {
		d.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, d)
}
