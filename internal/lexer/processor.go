package lexer

import (
	"github.com/voltage-lang/voltage/internal/pipeline"
)

// LexerProcessor adapts the lexer to the pipeline.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	ctx.TokenStream = l.Tokenize()
	for _, d := range l.Diagnostics() {
		if d.File == "" {
			d.File = ctx.FilePath
		}
		ctx.Warnings = append(ctx.Warnings, d)
	}
	return ctx
}
