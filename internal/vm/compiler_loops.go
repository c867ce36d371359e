package vm

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
)

func (c *Compiler) compileWhileStatement(s *ast.WhileStatement) error {
	line := s.GetToken().Line
	loopStart := c.chunk.Len()

	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	exitJump := c.emitJump(OP_JUMP_IF_FALSE, line)

	c.loops = append(c.loops, &LoopContext{})
	err := c.compileBlock(s.Body)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	if err != nil {
		return err
	}

	// continue re-checks the condition
	for _, j := range loop.continueJumps {
		c.patchJumpTo(j, loopStart)
	}
	c.emitJumpTo(loopStart, line)

	c.patchJump(exitJump)
	for _, j := range loop.breakJumps {
		c.patchJump(j)
	}
	return nil
}

// compileForStatement lowers 'for item in iterable' onto two hidden
// globals, one holding the evaluated iterable and one the running index:
//
//	$for:iterN = iterable; $for:idxN = 0
//	while $for:idxN < len($for:iterN) {
//	    item = $for:iterN[$for:idxN]
//	    <body>
//	    $for:idxN = $for:idxN + 1      <- continue lands here
//	}
//
// The names contain ':' so source programs cannot collide with them. N
// comes from a counter that only ever increases within one compilation, so
// each textual loop owns its cursor pair — nested loops and loops reached
// through a call from another loop's body stay independent. A function
// recursing into itself still shares its own loop's cursor, a known limit
// of the global-only binding model.
func (c *Compiler) compileForStatement(s *ast.ForStatement) error {
	switch s.Iterable.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral:
		return compileError(diagnostics.ErrC005, s, "cannot iterate over %q", s.Iterable.String())
	}

	line := s.GetToken().Line
	loopId := c.loopCounter
	c.loopCounter++
	iterIdx := c.identifierConstant(fmt.Sprintf("$for:iter%d", loopId))
	idxIdx := c.identifierConstant(fmt.Sprintf("$for:idx%d", loopId))
	itemIdx := c.identifierConstant(s.Item)

	if err := c.compileExpression(s.Iterable); err != nil {
		return err
	}
	c.chunk.WriteOp(OP_SET_GLOBAL, line)
	c.chunk.WriteUint16(iterIdx, line)

	c.chunk.WriteConstant(IntVal(0), line)
	c.chunk.WriteOp(OP_SET_GLOBAL, line)
	c.chunk.WriteUint16(idxIdx, line)

	loopStart := c.chunk.Len()

	// idx < len(iter)
	c.chunk.WriteOp(OP_GET_GLOBAL, line)
	c.chunk.WriteUint16(idxIdx, line)
	c.chunk.WriteOp(OP_GET_GLOBAL, line)
	c.chunk.WriteUint16(iterIdx, line)
	c.chunk.WriteOp(OP_LEN, line)
	c.chunk.WriteOp(OP_LT, line)
	exitJump := c.emitJump(OP_JUMP_IF_FALSE, line)

	// item = iter[idx]
	c.chunk.WriteOp(OP_GET_GLOBAL, line)
	c.chunk.WriteUint16(iterIdx, line)
	c.chunk.WriteOp(OP_GET_GLOBAL, line)
	c.chunk.WriteUint16(idxIdx, line)
	c.chunk.WriteOp(OP_GET_INDEX, line)
	c.chunk.WriteOp(OP_SET_GLOBAL, line)
	c.chunk.WriteUint16(itemIdx, line)

	c.loops = append(c.loops, &LoopContext{})
	err := c.compileBlock(s.Body)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	if err != nil {
		return err
	}

	// continue advances the index before looping
	incrementStart := c.chunk.Len()
	for _, j := range loop.continueJumps {
		c.patchJumpTo(j, incrementStart)
	}
	c.chunk.WriteOp(OP_GET_GLOBAL, line)
	c.chunk.WriteUint16(idxIdx, line)
	c.chunk.WriteConstant(IntVal(1), line)
	c.chunk.WriteOp(OP_ADD, line)
	c.chunk.WriteOp(OP_SET_GLOBAL, line)
	c.chunk.WriteUint16(idxIdx, line)
	c.emitJumpTo(loopStart, line)

	c.patchJump(exitJump)
	for _, j := range loop.breakJumps {
		c.patchJump(j)
	}
	return nil
}

func (c *Compiler) compileBreakStatement(s *ast.BreakStatement) error {
	loop := c.currentLoop()
	if loop == nil {
		return compileError(diagnostics.ErrC003, s, "break outside of a loop")
	}
	loop.breakJumps = append(loop.breakJumps, c.emitJump(OP_JUMP, s.GetToken().Line))
	return nil
}

func (c *Compiler) compileContinueStatement(s *ast.ContinueStatement) error {
	loop := c.currentLoop()
	if loop == nil {
		return compileError(diagnostics.ErrC004, s, "continue outside of a loop")
	}
	loop.continueJumps = append(loop.continueJumps, c.emitJump(OP_JUMP, s.GetToken().Line))
	return nil
}
