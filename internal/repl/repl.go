// Package repl implements the interactive loop. Each accepted snippet is
// atomic: it is compiled together with every previously accepted function
// declaration into a fresh chunk and only run when compilation succeeds,
// so a broken line can never corrupt the session. Globals live in one
// shared environment across snippets.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/config"
	"github.com/voltage-lang/voltage/internal/history"
	"github.com/voltage-lang/voltage/internal/lexer"
	"github.com/voltage-lang/voltage/internal/parser"
	"github.com/voltage-lang/voltage/internal/vm"
)

const (
	colorRed   = "\x1b[31m"
	colorGray  = "\x1b[90m"
	colorReset = "\x1b[0m"
)

// Repl holds the session state: the persistent machine, the accepted
// function declarations, and the optional history store.
type Repl struct {
	cfg     *config.Config
	machine *vm.VM

	// functions are the accepted declarations, recompiled into every
	// subsequent snippet so calls keep resolving.
	functions []*ast.FunctionStatement

	store *history.Store

	in    io.Reader
	out   io.Writer
	color bool
}

func New(cfg *config.Config, in io.Reader, out io.Writer) *Repl {
	r := &Repl{
		cfg:     cfg,
		machine: vm.New(),
		in:      in,
		out:     out,
	}
	r.machine.SetOutput(out)
	if cfg.Color {
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			r.color = true
		}
	}
	if cfg.HistoryFile != "" {
		if store, err := history.Open(cfg.HistoryFile); err == nil {
			r.store = store
		}
	}
	return r
}

// Run reads snippets until EOF or an exit command.
func (r *Repl) Run() error {
	fmt.Fprintln(r.out, "voltage repl, type exit to leave")
	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		r.eval(line)
	}
	if r.store != nil {
		return r.store.Close()
	}
	return scanner.Err()
}

// eval compiles and runs one snippet, reporting any failure without
// touching the session state.
func (r *Repl) eval(line string) {
	id := uuid.New().String()

	l := lexer.New(line)
	tokens := l.Tokenize()
	for _, d := range l.Diagnostics() {
		r.printError(d.Error())
	}

	snippet, err := parser.New(tokens).ParseProgram()
	if err != nil {
		r.printError(err.Error())
		r.record(id, line, false)
		return
	}

	// Recompile the accepted declarations together with the new snippet
	// into a discardable chunk. No entry function is set, so a session
	// that defined main never re-runs it implicitly.
	statements := make([]ast.Statement, 0, len(r.functions)+len(snippet))
	for _, fn := range r.functions {
		statements = append(statements, fn)
	}
	statements = append(statements, snippet...)

	chunk, err := vm.NewCompiler().Compile(statements)
	if err != nil {
		r.printError(err.Error())
		r.record(id, line, false)
		return
	}

	result, runErr := r.machine.Run(chunk)
	if runErr != nil {
		r.printError(runErr.Error())
		r.record(id, line, false)
		return
	}

	r.adoptFunctions(snippet)
	r.record(id, line, true)

	if !result.IsNull() {
		if r.color {
			fmt.Fprintf(r.out, "%s%s%s\n", colorGray, result.Inspect(), colorReset)
		} else {
			fmt.Fprintln(r.out, result.Inspect())
		}
	}
}

// adoptFunctions keeps the snippet's declarations for future snippets,
// replacing any previous declaration with the same name.
func (r *Repl) adoptFunctions(snippet []ast.Statement) {
	for _, stmt := range snippet {
		fn, ok := stmt.(*ast.FunctionStatement)
		if !ok {
			continue
		}
		replaced := false
		for i, existing := range r.functions {
			if existing.Name == fn.Name {
				r.functions[i] = fn
				replaced = true
				break
			}
		}
		if !replaced {
			r.functions = append(r.functions, fn)
		}
	}
}

func (r *Repl) record(id, source string, ok bool) {
	if r.store == nil {
		return
	}
	// History is best effort; a full disk should not kill the session.
	_ = r.store.Append(id, source, ok)
}

func (r *Repl) printError(msg string) {
	if r.color {
		fmt.Fprintf(r.out, "%s%s%s\n", colorRed, msg, colorReset)
		return
	}
	fmt.Fprintln(r.out, msg)
}
