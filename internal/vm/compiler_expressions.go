package vm

import (
	"fmt"

	"github.com/voltage-lang/voltage/internal/ast"
	"github.com/voltage-lang/voltage/internal/diagnostics"
)

var binaryOpcodes = map[string]Opcode{
	"+":  OP_ADD,
	"-":  OP_SUB,
	"*":  OP_MUL,
	"/":  OP_DIV,
	"%":  OP_MOD,
	"==": OP_EQ,
	"!=": OP_NE,
	"<":  OP_LT,
	"<=": OP_LE,
	">":  OP_GT,
	">=": OP_GE,
}

func (c *Compiler) compileExpression(expr ast.Expression) error {
	line := expr.GetToken().Line
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		c.chunk.WriteConstant(IntVal(e.Value), line)
		return nil

	case *ast.FloatLiteral:
		c.chunk.WriteConstant(FloatVal(e.Value), line)
		return nil

	case *ast.StringLiteral:
		c.chunk.WriteConstant(StringVal(e.Value()), line)
		return nil

	case *ast.BooleanLiteral:
		c.chunk.WriteConstant(BoolVal(e.Value), line)
		return nil

	case *ast.Identifier:
		nameIdx := c.identifierConstant(e.Value)
		c.chunk.WriteOp(OP_GET_GLOBAL, line)
		c.chunk.WriteUint16(nameIdx, line)
		return nil

	case *ast.BinaryExpression:
		return c.compileBinaryExpression(e)

	case *ast.CallExpression:
		return c.compileCallExpression(e)

	case *ast.FormatCallExpression:
		return c.compileFormatCall(e)

	case *ast.ArrayLiteral:
		for _, elem := range e.Elements {
			if err := c.compileExpression(elem); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(OP_MAKE_ARRAY, line)
		c.chunk.WriteUint16(len(e.Elements), line)
		return nil

	case *ast.IndexExpression:
		if err := c.compileExpression(e.Left); err != nil {
			return err
		}
		if err := c.compileExpression(e.Index); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_GET_INDEX, line)
		return nil

	case *ast.IndexAssignment:
		if err := c.compileExpression(e.Left); err != nil {
			return err
		}
		if err := c.compileExpression(e.Index); err != nil {
			return err
		}
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_SET_INDEX, line)
		return nil

	case *ast.AssignExpression:
		return compileError(diagnostics.ErrC008, e,
			"cannot assign to %q, declare bindings with let", e.Name)

	case *ast.StructInitialization:
		return c.compileStructInitialization(e)

	case *ast.FieldAccess:
		// Field layout is not tracked yet; evaluate the object for its
		// effects and push the field name as a placeholder.
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, line)
		c.chunk.WriteConstant(StringVal(e.Field), line)
		return nil

	case *ast.FieldAssignment:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, line)
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, line)
		c.chunk.WriteOp(OP_NULL, line)
		return nil

	case *ast.EnumVariant:
		for _, v := range e.Values {
			if err := c.compileExpression(v); err != nil {
				return err
			}
			c.chunk.WriteOp(OP_POP, line)
		}
		c.chunk.WriteConstant(StringVal(fmt.Sprintf("<enum %s::%s>", e.EnumName, e.Variant)), line)
		return nil

	case *ast.EnumMatch:
		if err := c.compileExpression(e.Subject); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, line)
		c.chunk.WriteOp(OP_NULL, line)
		return nil

	default:
		return compileError(diagnostics.ErrC006, expr, "cannot compile expression %q", expr.String())
	}
}

func (c *Compiler) compileBinaryExpression(e *ast.BinaryExpression) error {
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	op, ok := binaryOpcodes[e.Operator]
	if !ok {
		return compileError(diagnostics.ErrC006, e, "unknown operator %q", e.Operator)
	}
	c.chunk.WriteOp(op, e.GetToken().Line)
	return nil
}

// compileCallExpression lowers builtin calls directly and resolves user
// calls through the function table built by the pre-pass, so forward
// references and recursion both work.
func (c *Compiler) compileCallExpression(e *ast.CallExpression) error {
	line := e.GetToken().Line

	if id, ok := builtinIdByName(e.Name); ok {
		for _, arg := range e.Arguments {
			if err := c.compileExpression(arg); err != nil {
				return err
			}
		}
		c.chunk.WriteOp(OP_CALL_BUILTIN, line)
		c.chunk.Write(id, line)
		c.chunk.Write(byte(len(e.Arguments)), line)
		return nil
	}

	fn, ok := c.functions[e.Name]
	if !ok {
		return compileError(diagnostics.ErrC006, e, "call to unknown function %q", e.Name)
	}
	if len(e.Arguments) != fn.NumParams {
		return compileError(diagnostics.ErrC007, e,
			"%q takes %d argument(s), got %d", e.Name, fn.NumParams, len(e.Arguments))
	}

	for _, arg := range e.Arguments {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.chunk.WriteOp(OP_CALL, line)
	c.chunk.WriteUint16(c.fnConstIdx[e.Name], line)
	c.chunk.Write(byte(len(e.Arguments)), line)
	return nil
}

// compileFormatCall lowers the format string as a constant followed by the
// substitution arguments; the builtin performs the positional "{}"
// substitution at execution time. Placeholder and argument counts are not
// validated against each other: excess placeholders stay literal and
// excess arguments are ignored when the builtin runs.
func (c *Compiler) compileFormatCall(e *ast.FormatCallExpression) error {
	line := e.GetToken().Line
	id, ok := builtinIdByName(e.Name)
	if !ok {
		return compileError(diagnostics.ErrC002, e, "call to unknown builtin %q", e.Name)
	}

	c.chunk.WriteConstant(StringVal(e.Format), line)
	for _, arg := range e.Arguments {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.chunk.WriteOp(OP_CALL_BUILTIN, line)
	c.chunk.Write(id, line)
	c.chunk.Write(byte(len(e.Arguments)+1), line)
	return nil
}

// compileStructInitialization evaluates each field for its effects and
// pushes a tagged placeholder; struct layout is not modeled by the
// bytecode core yet.
func (c *Compiler) compileStructInitialization(e *ast.StructInitialization) error {
	line := e.GetToken().Line
	for _, field := range e.Fields {
		if err := c.compileExpression(field.Value); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_POP, line)
	}
	c.chunk.WriteConstant(StringVal(fmt.Sprintf("<struct %s>", e.Name)), line)
	return nil
}
