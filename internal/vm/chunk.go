package vm

// Chunk is a compiled unit: flat bytecode plus its constant pool.
type Chunk struct {
	// Code is the bytecode instructions
	Code []byte

	// Constants pool - literals, global names, function records
	Constants []Value

	// Lines maps bytecode offset to source line number (for errors)
	Lines []int

	// File is the source file name
	File string
}

// NewChunk creates a new empty chunk
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 256),
		Constants: make([]Value, 0, 64),
		Lines:     make([]int, 0, 256),
	}
}

// Write adds a byte to the chunk with line info
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp writes an opcode to the chunk
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.Write(byte(op), line)
}

// WriteUint16 writes a 16-bit big-endian operand
func (c *Chunk) WriteUint16(v int, line int) {
	c.Write(byte(v>>8), line)
	c.Write(byte(v), line)
}

// AddConstant adds a constant to the pool and returns its index.
// The pool is append-only; no dedup is attempted.
func (c *Chunk) AddConstant(value Value) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// WriteConstant writes OP_CONST followed by the constant index
func (c *Chunk) WriteConstant(value Value, line int) {
	idx := c.AddConstant(value)
	c.WriteOp(OP_CONST, line)
	c.WriteUint16(idx, line)
}

// ReadUint16 reads a 2-byte big-endian operand at offset
func (c *Chunk) ReadUint16(offset int) int {
	return int(c.Code[offset])<<8 | int(c.Code[offset+1])
}

// PatchUint16 overwrites a 2-byte operand at offset
func (c *Chunk) PatchUint16(offset, v int) {
	c.Code[offset] = byte(v >> 8)
	c.Code[offset+1] = byte(v)
}

// Line returns the source line recorded for the byte at offset
func (c *Chunk) Line(offset int) int {
	if offset >= 0 && offset < len(c.Lines) {
		return c.Lines[offset]
	}
	return 0
}

// Len returns the number of bytes in the chunk
func (c *Chunk) Len() int {
	return len(c.Code)
}
