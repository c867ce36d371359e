package vm

import "fmt"

// RuntimeErrorKind classifies unrecoverable execution failures.
type RuntimeErrorKind int

const (
	StackUnderflow RuntimeErrorKind = iota
	TypeMismatch
	DivisionByZero
	ModuloByZero
	UndefinedVariable
	UndefinedFunction
	UnknownBuiltinId
)

var runtimeErrorKindNames = map[RuntimeErrorKind]string{
	StackUnderflow:    "StackUnderflow",
	TypeMismatch:      "TypeMismatch",
	DivisionByZero:    "DivisionByZero",
	ModuloByZero:      "ModuloByZero",
	UndefinedVariable: "UndefinedVariable",
	UndefinedFunction: "UndefinedFunction",
	UnknownBuiltinId:  "UnknownBuiltinId",
}

func (k RuntimeErrorKind) String() string {
	if name, ok := runtimeErrorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// RuntimeError aborts the entire run; a corrupted operand stack cannot be
// safely resumed. The VM returns it instead of panicking the host process.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error [%s]: %s (line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("runtime error [%s]: %s", e.Kind, e.Message)
}

func newRuntimeError(kind RuntimeErrorKind, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}
