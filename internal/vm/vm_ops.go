package vm

// executeBinary pops right then left and applies op. Arithmetic and
// ordering require both operands to share a variant; equality compares
// across variants and simply reports false on a mismatch.
func (vm *VM) executeBinary(op Opcode, line int) *RuntimeError {
	right, err := vm.pop()
	if err != nil {
		return err
	}
	left, err := vm.pop()
	if err != nil {
		return err
	}

	switch op {
	case OP_EQ:
		vm.push(BoolVal(left.Equals(right)))
		return nil
	case OP_NE:
		vm.push(BoolVal(!left.Equals(right)))
		return nil
	}

	if left.Type != right.Type {
		return newRuntimeError(TypeMismatch, line,
			"operands must share a type, got %s and %s", left.TypeName(), right.TypeName())
	}

	switch left.Type {
	case ValInt:
		return vm.executeIntBinary(op, left.AsInt(), right.AsInt(), line)
	case ValFloat:
		return vm.executeFloatBinary(op, left.AsFloat(), right.AsFloat(), line)
	case ValString:
		return vm.executeStringBinary(op, left.Str, right.Str, line)
	default:
		return newRuntimeError(TypeMismatch, line, "unsupported operand type %s", left.TypeName())
	}
}

func (vm *VM) executeIntBinary(op Opcode, a, b int64, line int) *RuntimeError {
	switch op {
	case OP_ADD:
		vm.push(IntVal(a + b))
	case OP_SUB:
		vm.push(IntVal(a - b))
	case OP_MUL:
		vm.push(IntVal(a * b))
	case OP_DIV:
		if b == 0 {
			return newRuntimeError(DivisionByZero, line, "division by zero")
		}
		vm.push(IntVal(a / b))
	case OP_MOD:
		if b == 0 {
			return newRuntimeError(ModuloByZero, line, "modulo by zero")
		}
		vm.push(IntVal(a % b))
	case OP_LT:
		vm.push(BoolVal(a < b))
	case OP_LE:
		vm.push(BoolVal(a <= b))
	case OP_GT:
		vm.push(BoolVal(a > b))
	case OP_GE:
		vm.push(BoolVal(a >= b))
	default:
		return newRuntimeError(TypeMismatch, line, "unsupported integer operation %s", op)
	}
	return nil
}

func (vm *VM) executeFloatBinary(op Opcode, a, b float64, line int) *RuntimeError {
	switch op {
	case OP_ADD:
		vm.push(FloatVal(a + b))
	case OP_SUB:
		vm.push(FloatVal(a - b))
	case OP_MUL:
		vm.push(FloatVal(a * b))
	case OP_DIV:
		if b == 0 {
			return newRuntimeError(DivisionByZero, line, "division by zero")
		}
		vm.push(FloatVal(a / b))
	case OP_MOD:
		return newRuntimeError(TypeMismatch, line, "modulo is not defined for floats")
	case OP_LT:
		vm.push(BoolVal(a < b))
	case OP_LE:
		vm.push(BoolVal(a <= b))
	case OP_GT:
		vm.push(BoolVal(a > b))
	case OP_GE:
		vm.push(BoolVal(a >= b))
	default:
		return newRuntimeError(TypeMismatch, line, "unsupported float operation %s", op)
	}
	return nil
}

func (vm *VM) executeStringBinary(op Opcode, a, b string, line int) *RuntimeError {
	switch op {
	case OP_ADD:
		vm.push(StringVal(a + b))
	case OP_LT:
		vm.push(BoolVal(a < b))
	case OP_LE:
		vm.push(BoolVal(a <= b))
	case OP_GT:
		vm.push(BoolVal(a > b))
	case OP_GE:
		vm.push(BoolVal(a >= b))
	default:
		return newRuntimeError(TypeMismatch, line, "unsupported string operation %s", op)
	}
	return nil
}

// executeGetIndex pops index then container. Arrays index by element,
// strings by rune position (yielding a one-rune string).
func (vm *VM) executeGetIndex(line int) *RuntimeError {
	index, err := vm.pop()
	if err != nil {
		return err
	}
	container, err := vm.pop()
	if err != nil {
		return err
	}
	if !index.IsInt() {
		return newRuntimeError(TypeMismatch, line, "index must be an integer, got %s", index.TypeName())
	}
	i := index.AsInt()

	switch container.Type {
	case ValArray:
		a := container.AsArray()
		if i < 0 || i >= int64(len(a.Elements)) {
			return newRuntimeError(TypeMismatch, line, "index %d out of range for array of length %d", i, len(a.Elements))
		}
		vm.push(a.Elements[i])
	case ValString:
		runes := []rune(container.Str)
		if i < 0 || i >= int64(len(runes)) {
			return newRuntimeError(TypeMismatch, line, "index %d out of range for string of length %d", i, len(runes))
		}
		vm.push(StringVal(string(runes[i])))
	default:
		return newRuntimeError(TypeMismatch, line, "cannot index into %s", container.TypeName())
	}
	return nil
}

// executeSetIndex pops value, index, container; stores into the array and
// leaves the value on the stack as the expression result.
func (vm *VM) executeSetIndex(line int) *RuntimeError {
	value, err := vm.pop()
	if err != nil {
		return err
	}
	index, err := vm.pop()
	if err != nil {
		return err
	}
	container, err := vm.pop()
	if err != nil {
		return err
	}
	if !container.IsArray() {
		return newRuntimeError(TypeMismatch, line, "cannot assign into %s", container.TypeName())
	}
	if !index.IsInt() {
		return newRuntimeError(TypeMismatch, line, "index must be an integer, got %s", index.TypeName())
	}
	a := container.AsArray()
	i := index.AsInt()
	if i < 0 || i >= int64(len(a.Elements)) {
		return newRuntimeError(TypeMismatch, line, "index %d out of range for array of length %d", i, len(a.Elements))
	}
	a.Elements[i] = value
	vm.push(value)
	return nil
}

func (vm *VM) executeLen(line int) *RuntimeError {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	switch v.Type {
	case ValArray:
		vm.push(IntVal(int64(len(v.AsArray().Elements))))
	case ValString:
		vm.push(IntVal(int64(len([]rune(v.Str)))))
	default:
		return newRuntimeError(TypeMismatch, line, "cannot take length of %s", v.TypeName())
	}
	return nil
}
