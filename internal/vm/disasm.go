package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders a chunk as human-readable bytecode, one instruction
// per line with offsets, operands and resolved constants.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	for offset := 0; offset < chunk.Len(); {
		offset = disassembleInstruction(&sb, chunk, offset)
	}
	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)
	if offset > 0 && chunk.Line(offset) == chunk.Line(offset-1) {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", chunk.Line(offset))
	}

	op := Opcode(chunk.Code[offset])
	switch op {
	case OP_CONST, OP_GET_GLOBAL, OP_SET_GLOBAL:
		idx := chunk.ReadUint16(offset + 1)
		fmt.Fprintf(sb, "%-18s %4d '%s'\n", op, idx, chunk.Constants[idx].Inspect())
		return offset + 3

	case OP_JUMP, OP_JUMP_IF_FALSE, OP_JUMP_IF_TRUE:
		target := chunk.ReadUint16(offset + 1)
		fmt.Fprintf(sb, "%-18s -> %d\n", op, target)
		return offset + 3

	case OP_MAKE_ARRAY:
		n := chunk.ReadUint16(offset + 1)
		fmt.Fprintf(sb, "%-18s %4d\n", op, n)
		return offset + 3

	case OP_CALL:
		idx := chunk.ReadUint16(offset + 1)
		argc := chunk.Code[offset+3]
		fmt.Fprintf(sb, "%-18s %4d '%s' argc=%d\n", op, idx, chunk.Constants[idx].Inspect(), argc)
		return offset + 4

	case OP_CALL_BUILTIN:
		id := chunk.Code[offset+1]
		argc := chunk.Code[offset+2]
		fmt.Fprintf(sb, "%-18s id=%d argc=%d\n", op, id, argc)
		return offset + 3

	case OP_GET_LOCAL, OP_SET_LOCAL:
		slot := chunk.Code[offset+1]
		fmt.Fprintf(sb, "%-18s %4d\n", op, slot)
		return offset + 2

	default:
		fmt.Fprintf(sb, "%s\n", op)
		return offset + 1
	}
}
