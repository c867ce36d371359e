package vm

import (
	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
)

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if err := c.compileExpression(s.Expression); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, s.GetToken().Line)
		return nil

	case *ast.LetStatement:
		return c.compileLetStatement(s)

	case *ast.BlockStatement:
		return c.compileBlock(s)

	case *ast.FunctionStatement:
		return c.compileFunctionStatement(s)

	case *ast.IfStatement:
		return c.compileIfStatement(s)

	case *ast.WhileStatement:
		return c.compileWhileStatement(s)

	case *ast.ForStatement:
		return c.compileForStatement(s)

	case *ast.BreakStatement:
		return c.compileBreakStatement(s)

	case *ast.ContinueStatement:
		return c.compileContinueStatement(s)

	case *ast.UnsafeStatement:
		// The bytecode core runs the body like any plain block.
		return c.compileBlock(s.Body)

	case *ast.ImportStatement:
		// Module resolution is out of scope; the statement is a no-op.
		return nil

	default:
		return compileError(diagnostics.ErrC006, stmt, "cannot compile statement %q", stmt.String())
	}
}

func (c *Compiler) compileBlock(block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// compileLetStatement lowers 'let name = expr;' to the value followed by a
// global store. Every binding is global; see compileForStatement for the
// hidden iteration bindings that share the namespace.
func (c *Compiler) compileLetStatement(s *ast.LetStatement) error {
	if err := c.compileExpression(s.Value); err != nil {
		return err
	}
	line := s.GetToken().Line
	nameIdx := c.identifierConstant(s.Name)
	c.chunk.WriteOp(OP_SET_GLOBAL, line)
	c.chunk.WriteUint16(nameIdx, line)
	return nil
}

// compileFunctionStatement emits the body inline, guarded by a jump so the
// main line never falls into it. The function's entry offset is patched
// into the shared constant registered by the pre-pass.
func (c *Compiler) compileFunctionStatement(s *ast.FunctionStatement) error {
	if c.inFunction {
		return compileError(diagnostics.ErrC001, s, "nested function %q is not supported", s.Name)
	}

	line := s.GetToken().Line
	skip := c.emitJump(OP_JUMP, line)

	fn := c.registerFunction(s)
	fn.Entry = c.chunk.Len()

	// The caller pushed arguments left to right, so binding pops them in
	// reverse to land each one in the right global.
	for i := len(s.Parameters) - 1; i >= 0; i-- {
		nameIdx := c.identifierConstant(s.Parameters[i].Name)
		c.chunk.WriteOp(OP_SET_GLOBAL, line)
		c.chunk.WriteUint16(nameIdx, line)
	}

	c.inFunction = true
	err := c.compileBlock(s.Body)
	c.inFunction = false
	if err != nil {
		return err
	}

	endLine := line
	if n := len(s.Body.Statements); n > 0 {
		endLine = s.Body.Statements[n-1].GetToken().Line
	}
	c.chunk.WriteOp(OP_NULL, endLine)
	c.chunk.WriteOp(OP_RETURN, endLine)

	c.patchJump(skip)
	return nil
}

// compileIfStatement chains if/elif*/else with forward jumps. Every arm
// ends with a jump to the shared end label; each failed condition falls
// through to the next arm.
func (c *Compiler) compileIfStatement(s *ast.IfStatement) error {
	var endJumps []int

	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	line := s.GetToken().Line
	nextArm := c.emitJump(OP_JUMP_IF_FALSE, line)
	if err := c.compileBlock(s.Consequence); err != nil {
		return err
	}
	endJumps = append(endJumps, c.emitJump(OP_JUMP, line))

	for _, elif := range s.ElifBranches {
		c.patchJump(nextArm)
		if err := c.compileExpression(elif.Condition); err != nil {
			return err
		}
		nextArm = c.emitJump(OP_JUMP_IF_FALSE, line)
		if err := c.compileBlock(elif.Body); err != nil {
			return err
		}
		endJumps = append(endJumps, c.emitJump(OP_JUMP, line))
	}

	c.patchJump(nextArm)
	if s.Alternative != nil {
		if err := c.compileBlock(s.Alternative); err != nil {
			return err
		}
	}

	for _, j := range endJumps {
		c.patchJump(j)
	}
	return nil
}
