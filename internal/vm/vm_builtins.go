package vm

import (
	"fmt"
	"strings"
)

// Builtin ids referenced by OP_CALL_BUILTIN.
const (
	BuiltinPuts  byte = 0
	BuiltinPrint byte = 1
)

// builtinIdByName maps a call name to its builtin id.
func builtinIdByName(name string) (byte, bool) {
	switch name {
	case "puts":
		return BuiltinPuts, true
	case "print":
		return BuiltinPrint, true
	default:
		return 0, false
	}
}

func (vm *VM) callBuiltin(id byte, args []Value, line int) (Value, *RuntimeError) {
	switch id {
	case BuiltinPuts:
		fmt.Fprintln(vm.output, renderArgs(args))
		return NullVal(), nil
	case BuiltinPrint:
		fmt.Fprint(vm.output, renderArgs(args))
		return NullVal(), nil
	default:
		return NullVal(), newRuntimeError(UnknownBuiltinId, line, "unknown builtin id %d", id)
	}
}

// renderArgs performs positional "{}" substitution when the first argument
// is a format string; otherwise it joins every argument with a space.
func renderArgs(args []Value) string {
	if len(args) > 0 && args[0].IsString() && strings.Contains(args[0].Str, "{}") {
		return substitute(args[0].Str, args[1:])
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Inspect()
	}
	return strings.Join(parts, " ")
}

// substitute replaces each "{}" with the next argument in order. Surplus
// placeholders stay verbatim; surplus arguments are ignored.
func substitute(format string, args []Value) string {
	var sb strings.Builder
	rest := format
	for _, arg := range args {
		idx := strings.Index(rest, "{}")
		if idx < 0 {
			break
		}
		sb.WriteString(rest[:idx])
		sb.WriteString(arg.Inspect())
		rest = rest[idx+2:]
	}
	sb.WriteString(rest)
	return sb.String()
}
