package vm

// Run executes a chunk to completion. The loop fetches the opcode at the
// program counter, advances it, and dispatches, until the counter runs
// past the end of the code with no call frames pending. The returned value
// is the result of the last expression statement.
func (vm *VM) Run(chunk *Chunk) (Value, error) {
	vm.chunk = chunk
	vm.ip = 0
	vm.sp = 0
	vm.frames = vm.frames[:0]
	vm.lastPopped = NullVal()

	for vm.ip < chunk.Len() {
		op := Opcode(chunk.Code[vm.ip])
		opLine := chunk.Line(vm.ip)
		vm.ip++

		if err := vm.dispatch(op, opLine); err != nil {
			return NullVal(), err
		}
	}
	return vm.lastPopped, nil
}

func (vm *VM) dispatch(op Opcode, line int) *RuntimeError {
	switch op {
	case OP_CONST:
		idx := vm.readUint16()
		vm.push(vm.chunk.Constants[idx])

	case OP_NULL:
		vm.push(NullVal())

	case OP_POP:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.lastPopped = v

	case OP_DUP:
		v, err := vm.peek()
		if err != nil {
			return err
		}
		vm.push(v)

	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD,
		OP_EQ, OP_NE, OP_LT, OP_LE, OP_GT, OP_GE:
		return vm.executeBinary(op, line)

	case OP_GET_LOCAL:
		slot := int(vm.readByte())
		frame := vm.currentFrame()
		if frame == nil || slot >= len(frame.locals) {
			return newRuntimeError(UndefinedVariable, line, "local slot %d is not defined", slot)
		}
		vm.push(frame.locals[slot])

	case OP_SET_LOCAL:
		slot := int(vm.readByte())
		frame := vm.currentFrame()
		if frame == nil {
			return newRuntimeError(UndefinedVariable, line, "local slot %d outside of a call", slot)
		}
		v, err := vm.pop()
		if err != nil {
			return err
		}
		for len(frame.locals) <= slot {
			frame.locals = append(frame.locals, NullVal())
		}
		frame.locals[slot] = v

	case OP_GET_GLOBAL:
		name := vm.chunk.Constants[vm.readUint16()].AsString()
		v, ok := vm.globals.Get(name)
		if !ok {
			return newRuntimeError(UndefinedVariable, line, "undefined variable %q", name)
		}
		vm.push(v)

	case OP_SET_GLOBAL:
		name := vm.chunk.Constants[vm.readUint16()].AsString()
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals.Set(name, v)

	case OP_JUMP:
		vm.ip = vm.readUint16()

	case OP_JUMP_IF_FALSE, OP_JUMP_IF_TRUE:
		target := vm.readUint16()
		cond, err := vm.pop()
		if err != nil {
			return err
		}
		if !cond.IsBool() {
			return newRuntimeError(TypeMismatch, line, "condition must be a boolean, got %s", cond.TypeName())
		}
		if cond.AsBool() == (op == OP_JUMP_IF_TRUE) {
			vm.ip = target
		}

	case OP_CALL:
		fnIdx := vm.readUint16()
		vm.readByte() // argc, consumed by the callee's parameter binding
		fnVal := vm.chunk.Constants[fnIdx]
		fn := fnVal.AsFunction()
		if fn == nil || fn.Entry < 0 {
			return newRuntimeError(UndefinedFunction, line, "function %q is not defined", fnVal.Inspect())
		}
		vm.frames = append(vm.frames, CallFrame{returnAddr: vm.ip})
		vm.ip = fn.Entry

	case OP_CALL_BUILTIN:
		id := vm.readByte()
		argc := int(vm.readByte())
		if vm.sp < argc {
			return newRuntimeError(StackUnderflow, line, "builtin needs %d argument(s), stack has %d", argc, vm.sp)
		}
		args := make([]Value, argc)
		copy(args, vm.stack[vm.sp-argc:vm.sp])
		vm.sp -= argc
		result, err := vm.callBuiltin(id, args, line)
		if err != nil {
			return err
		}
		vm.push(result)

	case OP_RETURN:
		result, err := vm.pop()
		if err != nil {
			return err
		}
		if len(vm.frames) == 0 {
			return newRuntimeError(StackUnderflow, line, "return outside of a call")
		}
		frame := vm.frames[len(vm.frames)-1]
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.ip = frame.returnAddr
		vm.push(result)

	case OP_MAKE_ARRAY:
		n := vm.readUint16()
		if vm.sp < n {
			return newRuntimeError(StackUnderflow, line, "array needs %d element(s), stack has %d", n, vm.sp)
		}
		elements := make([]Value, n)
		copy(elements, vm.stack[vm.sp-n:vm.sp])
		vm.sp -= n
		vm.push(ArrayVal(&Array{Elements: elements}))

	case OP_GET_INDEX:
		return vm.executeGetIndex(line)

	case OP_SET_INDEX:
		return vm.executeSetIndex(line)

	case OP_LEN:
		return vm.executeLen(line)

	default:
		return newRuntimeError(UnknownBuiltinId, line, "unknown opcode 0x%02x", byte(op))
	}
	return nil
}

func (vm *VM) currentFrame() *CallFrame {
	if len(vm.frames) == 0 {
		return nil
	}
	return &vm.frames[len(vm.frames)-1]
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readUint16() int {
	v := vm.chunk.ReadUint16(vm.ip)
	vm.ip += 2
	return v
}
