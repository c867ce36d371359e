package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/voltage-lang/voltage/internal/lexer"
	"github.com/voltage-lang/voltage/internal/parser"
	"github.com/voltage-lang/voltage/internal/pipeline"
	"github.com/voltage-lang/voltage/internal/vm"
)

func fullPipeline(entry string) *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&vm.CompilerProcessor{EntryFunction: entry},
	)
}

func TestPipelineProducesRunnableChunk(t *testing.T) {
	ctx := pipeline.NewPipelineContext(`fn main() { puts("{}", 2 + 3); }`)
	ctx.FilePath = "prog.v"
	ctx = fullPipeline("main").Run(ctx)

	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors[0])
	}
	chunk, ok := ctx.Compiled.(*vm.Chunk)
	if !ok {
		t.Fatalf("no chunk produced. got=%T", ctx.Compiled)
	}
	if chunk.File != "prog.v" {
		t.Errorf("file not stamped on chunk. got=%q", chunk.File)
	}

	var out bytes.Buffer
	machine := vm.New()
	machine.SetOutput(&out)
	if _, err := machine.Run(chunk); err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	if out.String() != "5\n" {
		t.Errorf("wrong output. got=%q, want=%q", out.String(), "5\n")
	}
}

func TestPipelineCollectsParserErrors(t *testing.T) {
	ctx := pipeline.NewPipelineContext(`let = 5;`)
	ctx.FilePath = "broken.v"
	ctx = fullPipeline("main").Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected errors")
	}
	if ctx.Errors[0].File != "broken.v" {
		t.Errorf("file not stamped on diagnostic. got=%q", ctx.Errors[0].File)
	}
	if ctx.Compiled != nil {
		t.Errorf("compiler stage ran despite errors")
	}
}

func TestPipelineKeepsLexerWarnings(t *testing.T) {
	ctx := pipeline.NewPipelineContext(`let x = 1@;`)
	ctx = fullPipeline("").Run(ctx)

	if len(ctx.Warnings) != 1 {
		t.Fatalf("wrong warning count. got=%d", len(ctx.Warnings))
	}
	if ctx.HasErrors() {
		t.Errorf("lexer warning escalated to error")
	}
}
