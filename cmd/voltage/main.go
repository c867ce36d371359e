package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/backend"
	"github.com/voltage-lang/voltage/internal/config"
	"github.com/voltage-lang/voltage/internal/lexer"
	"github.com/voltage-lang/voltage/internal/parser"
	"github.com/voltage-lang/voltage/internal/pipeline"
	"github.com/voltage-lang/voltage/internal/repl"
	"github.com/voltage-lang/voltage/internal/vm"
)

// EntryFunctionName is the top-level function the driver calls after a
// source file's main-line statements have run.
const EntryFunctionName = "main"

func main() {
	replMode := flag.Bool("repl", false, "start the interactive REPL")
	configPath := flag.String("config", config.DefaultPath(), "path of the config file")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		cfg = config.Default()
	}

	if *replMode {
		if err := repl.New(cfg, os.Stdin, os.Stdout).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "repl error: %v\n", err)
		}
		return
	}

	if flag.NArg() == 0 {
		usage()
		return
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		return
	}

	if config.IsSourceFile(path) {
		runSourceFile(cfg, path, string(source))
		return
	}
	inspectFile(cfg, path, string(source))
}

// runSourceFile compiles a source file to bytecode and executes it. The
// entry function is called after the top-level statements, and every
// unrecoverable error goes to stderr without a distinct exit code.
func runSourceFile(cfg *config.Config, path, source string) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&vm.CompilerProcessor{EntryFunction: EntryFunctionName},
	)
	ctx = p.Run(ctx)

	for _, d := range ctx.Warnings {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if ctx.HasErrors() {
		for _, d := range ctx.Errors {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return
	}

	chunk, ok := ctx.Compiled.(*vm.Chunk)
	if !ok {
		fmt.Fprintln(os.Stderr, "no bytecode was produced")
		return
	}
	if cfg.ShowDisasm {
		fmt.Fprint(os.Stderr, vm.Disassemble(chunk, config.TrimSourceExt(path)))
	}

	machine := vm.New()
	if _, err := machine.Run(chunk); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

// inspectFile tokenizes and parses a non-source file for inspection, and
// pushes its declarations through the codegen stub so the native path is
// exercised end to end.
func inspectFile(cfg *config.Config, path, source string) {
	l := lexer.New(source)
	tokens := l.Tokenize()
	for _, d := range l.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if cfg.ShowTokens {
		for _, tok := range tokens {
			fmt.Printf("%s %q (line %d, column %d)\n", tok.Type, tok.Lexeme, tok.Line, tok.Column)
		}
	}

	statements, err := parser.New(tokens).ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	fmt.Printf("%s: %d token(s), %d top-level statement(s)\n", path, len(tokens), len(statements))

	b := backend.New()
	b.DeclareBuiltins()
	for _, stmt := range statements {
		fn, ok := stmt.(*ast.FunctionStatement)
		if !ok {
			continue
		}
		addr, err := b.CompileFunction(fn)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		fmt.Printf("compiled %s at 0x%x\n", fn.Name, addr)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [--repl] [--config path] [file%s]\n", os.Args[0], config.SourceFileExt)
	fmt.Fprintln(os.Stderr, "  --repl    start the interactive REPL")
	fmt.Fprintf(os.Stderr, "  file%s    compile to bytecode and run\n", config.SourceFileExt)
	fmt.Fprintln(os.Stderr, "  other     tokenize and parse for inspection")
}
