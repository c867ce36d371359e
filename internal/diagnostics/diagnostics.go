// Package diagnostics defines the structured error values produced by the
// lexer, parser and bytecode compiler. A Diagnostic implements error so the
// stages can thread it through ordinary error returns.
package diagnostics

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/token"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic codes. L = lexer, P = parser, C = compiler.
const (
	ErrL001 = "L001" // unrecognized character

	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // unexpected end of input
	ErrP003 = "P003" // invalid type annotation
	ErrP004 = "P004" // invalid call target

	ErrC001 = "C001" // nested function unsupported
	ErrC002 = "C002" // unknown builtin
	ErrC003 = "C003" // break outside loop
	ErrC004 = "C004" // continue outside loop
	ErrC005 = "C005" // non-iterable for target
	ErrC006 = "C006" // unresolved callee
	ErrC007 = "C007" // wrong argument count
	ErrC008 = "C008" // reassignment unsupported
)

// Diagnostic is a single reported problem, tied to the token where it was
// detected. File is filled in by the pipeline once the source is known.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Line     int
	Column   int
	File     string
}

// NewError builds an error-severity diagnostic at tok's position.
func NewError(code string, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  message,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// NewWarning builds a warning-severity diagnostic at tok's position.
func NewWarning(code string, tok token.Token, message string) *Diagnostic {
	d := NewError(code, tok, message)
	d.Severity = SeverityWarning
	return d
}

func (d *Diagnostic) Error() string {
	prefix := "error"
	if d.Severity == SeverityWarning {
		prefix = "warning"
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s %s: %s (line %d, column %d)", prefix, d.Code, d.Message, d.Line, d.Column)
	}
	return fmt.Sprintf("%s %s: %s", prefix, d.Code, d.Message)
}

// IsError reports whether d carries error severity.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}
