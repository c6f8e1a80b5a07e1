package m68k

// sizeBytes resolves an Operand's byte width from its Size for integer
// lifting.
func (op Operand) sizeBytes() int {
	return ActualSize[op.Size]
}

// PreIL emits any side effect that must happen before an operand's value is
// read or written: only -(An) decrements the address register first.
// Callers must call PreIL before SourceIL/DestIL/AddressIL for an operand
// that might be a predecrement, and PostIL afterward for one that might be
// a postincrement.
func PreIL(il IL, op Operand) {
	if op.Kind == OpRegisterIndirectPredecrement {
		size := op.sizeBytes()
		addr := il.Sub(4, il.Reg(4, op.Reg), il.Const(4, int64(size)), FlagWriteNone)
		il.SetReg(4, op.Reg, addr, FlagWriteNone)
	}
}

// PostIL emits the side effect that must happen after an operand's value is
// read or written: only (An)+ increments the address register afterward.
func PostIL(il IL, op Operand) {
	if op.Kind == OpRegisterIndirectPostincrement {
		size := op.sizeBytes()
		addr := il.Add(4, il.Reg(4, op.Reg), il.Const(4, int64(size)), FlagWriteNone)
		il.SetReg(4, op.Reg, addr, FlagWriteNone)
	}
}

// AddressIL computes the effective memory address of a memory operand. It
// must not be called for OpRegisterDirect/OpImmediate, which have no
// address.
func AddressIL(il IL, op Operand, instrAddr uint32) Expr {
	switch op.Kind {
	case OpRegisterIndirect, OpRegisterIndirectPostincrement, OpRegisterIndirectPredecrement:
		return il.Reg(4, op.Reg)

	case OpRegisterIndirectDisplacement:
		if op.PCRelative {
			return il.ConstPointer(4, uint32(int64(instrAddr)+2+int64(op.Disp)))
		}
		return il.Add(4, il.Reg(4, op.Reg), il.Const(4, int64(op.Disp)), FlagWriteNone)

	case OpRegisterIndirectIndex:
		base := baseAddressIL(il, op, instrAddr)
		indexed := il.Add(4, base, indexValueIL(il, op), FlagWriteNone)
		if op.Disp != 0 {
			return il.Add(4, indexed, il.Const(4, int64(op.Disp)), FlagWriteNone)
		}
		return indexed

	case OpMemoryIndirectPreindex:
		base := baseAddressIL(il, op, instrAddr)
		withDisp := base
		if op.Disp != 0 {
			withDisp = il.Add(4, base, il.Const(4, int64(op.Disp)), FlagWriteNone)
		}
		indexed := il.Add(4, withDisp, indexValueIL(il, op), FlagWriteNone)
		indirect := il.Load(4, indexed)
		if op.OuterDisp != 0 {
			return il.Add(4, indirect, il.Const(4, int64(op.OuterDisp)), FlagWriteNone)
		}
		return indirect

	case OpMemoryIndirectPostindex:
		base := baseAddressIL(il, op, instrAddr)
		withDisp := base
		if op.Disp != 0 {
			withDisp = il.Add(4, base, il.Const(4, int64(op.Disp)), FlagWriteNone)
		}
		indirect := il.Load(4, withDisp)
		indexed := il.Add(4, indirect, indexValueIL(il, op), FlagWriteNone)
		if op.OuterDisp != 0 {
			return il.Add(4, indexed, il.Const(4, int64(op.OuterDisp)), FlagWriteNone)
		}
		return indexed

	case OpAbsolute:
		return il.ConstPointer(4, op.Address)

	default:
		return il.Unimplemented()
	}
}

func baseAddressIL(il IL, op Operand, instrAddr uint32) Expr {
	if op.Reg == NoRegister {
		return il.Const(4, 0)
	}
	if op.PCRelative {
		return il.ConstPointer(4, instrAddr+2)
	}
	return il.Reg(4, op.Reg)
}

func indexValueIL(il IL, op Operand) Expr {
	if op.IndexReg == NoRegister {
		return il.Const(4, 0)
	}
	v := il.Reg(4, op.IndexReg)
	if !op.IndexLong {
		v = il.SignExtend(4, il.Reg(2, op.IndexReg))
	}
	if op.Scale > 1 {
		shift := uint(0)
		switch op.Scale {
		case 2:
			shift = 1
		case 4:
			shift = 2
		case 8:
			shift = 3
		}
		v = il.ShiftLeft(4, v, il.Const(4, int64(shift)), FlagWriteNone)
	}
	return v
}

// SourceIL reads an operand's value. Every register, CCR included, reads
// directly through il.Reg. Memory operands load through AddressIL.
func SourceIL(il IL, op Operand, instrAddr uint32) Expr {
	size := op.sizeBytes()
	switch op.Kind {
	case OpRegisterDirect:
		return il.Reg(size, op.Reg)
	case OpImmediate:
		return il.Const(size, op.Value)
	case OpRegisterIndirect, OpRegisterIndirectPostincrement, OpRegisterIndirectPredecrement,
		OpRegisterIndirectDisplacement, OpRegisterIndirectIndex,
		OpMemoryIndirectPreindex, OpMemoryIndirectPostindex, OpAbsolute:
		return il.Load(size, AddressIL(il, op, instrAddr))
	default:
		return il.Unimplemented()
	}
}

// DestIL writes value to an operand, returning the expression the host IL
// builder produced for the assignment. flags carries the flag-write set the
// owning instruction declares for this write. instrAddr is the owning
// instruction's address, needed to resolve a PC-relative memory
// destination's AddressIL the same way SourceIL does.
func DestIL(il IL, op Operand, value Expr, flags FlagWriteType, instrAddr uint32) Expr {
	size := op.sizeBytes()
	switch op.Kind {
	case OpRegisterDirect:
		if op.Reg.IsAddress() {
			if size < 4 {
				value = il.SignExtend(4, value)
			}
			return il.SetReg(4, op.Reg, value, FlagWriteNone)
		}
		return il.SetReg(size, op.Reg, value, flags)
	case OpRegisterIndirect, OpRegisterIndirectPostincrement, OpRegisterIndirectPredecrement,
		OpRegisterIndirectDisplacement, OpRegisterIndirectIndex,
		OpMemoryIndirectPreindex, OpMemoryIndirectPostindex, OpAbsolute:
		return il.Store(size, AddressIL(il, op, instrAddr), value, flags)
	default:
		return il.Unimplemented()
	}
}
