package parser

import (
	"errors"

	"github.com/voltage-lang/voltage/internal/diagnostics"
	"github.com/voltage-lang/voltage/internal/pipeline"
	"github.com/voltage-lang/voltage/internal/token"
)

// ParserProcessor adapts the parser to the pipeline.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	statements, err := New(ctx.TokenStream).ParseProgram()
	ctx.Statements = statements
	if err != nil {
		var diag *diagnostics.Diagnostic
		if errors.As(err, &diag) {
			if diag.File == "" {
				diag.File = ctx.FilePath
			}
			ctx.AddError(diag)
		} else {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, err.Error()))
		}
	}
	return ctx
}
