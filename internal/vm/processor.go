package vm

import (
	"errors"

	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/pipeline"
	"github.com/voltage-lang/voltage/internal/token"
)

// CompilerProcessor adapts the bytecode compiler to the pipeline. The
// produced chunk is stored on the context for the driver to execute.
type CompilerProcessor struct {
	// EntryFunction, when non-empty, is auto-called after top-level code.
	EntryFunction string
}

func (cp *CompilerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	c := NewCompiler()
	if cp.EntryFunction != "" {
		c.SetEntryFunction(cp.EntryFunction)
	}
	chunk, err := c.Compile(ctx.Statements)
	if err != nil {
		var diag *diagnostics.Diagnostic
		if errors.As(err, &diag) {
			if diag.File == "" {
				diag.File = ctx.FilePath
			}
			ctx.AddError(diag)
		} else {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrC006, token.Token{}, err.Error()))
		}
		return ctx
	}
	chunk.File = ctx.FilePath
	ctx.Compiled = chunk
	return ctx
}
