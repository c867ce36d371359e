package vm

// Opcode is a single bytecode instruction tag.
type Opcode byte

const (
	// Constants and stack ops
	OP_CONST Opcode = iota // Push constant from pool (u16 index)
	OP_NULL                // Push Null
	OP_POP                 // Discard top of stack
	OP_DUP                 // Duplicate top of stack

	// Arithmetic
	OP_ADD // +
	OP_SUB // -
	OP_MUL // *
	OP_DIV // /
	OP_MOD // %

	// Comparison
	OP_EQ // ==
	OP_NE // !=
	OP_LT // <
	OP_LE // <=
	OP_GT // >
	OP_GE // >=

	// Variables
	OP_GET_LOCAL  // Get frame local by slot (u8)
	OP_SET_LOCAL  // Set frame local by slot (u8)
	OP_GET_GLOBAL // Get global by name constant (u16 index)
	OP_SET_GLOBAL // Set global by name constant (u16 index)

	// Control flow. Jump targets are absolute chunk offsets (u16).
	OP_JUMP          // Unconditional jump
	OP_JUMP_IF_FALSE // Pop condition, jump when false
	OP_JUMP_IF_TRUE  // Pop condition, jump when true

	// Calls
	OP_CALL         // Call function constant (u16 index) with argc (u8)
	OP_CALL_BUILTIN // Call builtin id (u8) with argc (u8)
	OP_RETURN       // Pop frame, restore caller ip, keep result on stack

	// Arrays and strings
	OP_MAKE_ARRAY // Pop N elements (u16 count), push array
	OP_GET_INDEX  // Pop index, pop container, push element
	OP_SET_INDEX  // Pop value, index, container; store; push value
	OP_LEN        // Pop container, push its length
)

// OpcodeNames maps opcodes to their mnemonic for the disassembler.
var OpcodeNames = map[Opcode]string{
	OP_CONST:         "OP_CONST",
	OP_NULL:          "OP_NULL",
	OP_POP:           "OP_POP",
	OP_DUP:           "OP_DUP",
	OP_ADD:           "OP_ADD",
	OP_SUB:           "OP_SUB",
	OP_MUL:           "OP_MUL",
	OP_DIV:           "OP_DIV",
	OP_MOD:           "OP_MOD",
	OP_EQ:            "OP_EQ",
	OP_NE:            "OP_NE",
	OP_LT:            "OP_LT",
	OP_LE:            "OP_LE",
	OP_GT:            "OP_GT",
	OP_GE:            "OP_GE",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_JUMP:          "OP_JUMP",
	OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	OP_JUMP_IF_TRUE:  "OP_JUMP_IF_TRUE",
	OP_CALL:          "OP_CALL",
	OP_CALL_BUILTIN:  "OP_CALL_BUILTIN",
	OP_RETURN:        "OP_RETURN",
	OP_MAKE_ARRAY:    "OP_MAKE_ARRAY",
	OP_GET_INDEX:     "OP_GET_INDEX",
	OP_SET_INDEX:     "OP_SET_INDEX",
	OP_LEN:           "OP_LEN",
}

func (op Opcode) String() string {
	if name, ok := OpcodeNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}
