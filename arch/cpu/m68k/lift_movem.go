package m68k

// liftMovem emits a movem load or store. Store order depends on
// cfg.MovemStoreDecremented: the 68020+ form computes each store address by
// decrementing the address register as it goes (so the final register
// value already reflects every store), while the 68000/010 form computes
// the final address once up front and stores forward from a fixed base,
// updating the address register only after every store has completed.
// Both forms store the same registers to the same memory layout (the
// predecrement list is in reversed register order, so its first register
// lands at the highest address); they differ only in when the address
// register's new value becomes visible.
func liftMovem(il IL, cfg VariantConfig, instr DecodedInstruction, addr uint32) (int, error) {
	ops := instr.Operands
	load := ops[0].Kind == OpRegisterMovemList
	var list, mem Operand
	if load {
		list, mem = ops[1], ops[0]
	} else {
		list, mem = ops[0], ops[1]
	}
	size := ActualSize[instr.Size]

	if load {
		base := AddressIL(il, mem, addr)
		for i, reg := range list.Regs {
			elemAddr := base
			if i != 0 {
				elemAddr = il.Add(4, base, il.Const(4, int64(i*size)), FlagWriteNone)
			}
			v := il.Load(size, elemAddr)
			if size < 4 {
				v = il.SignExtend(4, v)
			}
			il.SetReg(4, reg, v, FlagWriteNone)
		}
		PostIL(il, mem)
		return instr.Length, nil
	}

	if mem.Kind != OpRegisterIndirectPredecrement {
		base := AddressIL(il, mem, addr)
		for i, reg := range list.Regs {
			elemAddr := base
			if i != 0 {
				elemAddr = il.Add(4, base, il.Const(4, int64(i*size)), FlagWriteNone)
			}
			il.Store(size, elemAddr, il.Reg(4, reg), FlagWriteNone)
		}
		return instr.Length, nil
	}

	// Predecrement destination: list.Regs is already in reverse
	// (SP..D0) movem bit order.
	n := len(list.Regs)
	if cfg.MovemStoreDecremented {
		for _, reg := range list.Regs {
			current := il.Sub(4, il.Reg(4, mem.Reg), il.Const(4, int64(size)), FlagWriteNone)
			il.SetReg(4, mem.Reg, current, FlagWriteNone)
			il.Store(size, il.Reg(4, mem.Reg), il.Reg(4, reg), FlagWriteNone)
		}
		return instr.Length, nil
	}

	final := il.Sub(4, il.Reg(4, mem.Reg), il.Const(4, int64(n*size)), FlagWriteNone)
	for i, reg := range list.Regs {
		elemAddr := il.Add(4, final, il.Const(4, int64((n-1-i)*size)), FlagWriteNone)
		il.Store(size, elemAddr, il.Reg(4, reg), FlagWriteNone)
	}
	il.SetReg(4, mem.Reg, final, FlagWriteNone)
	return instr.Length, nil
}

// liftBitOp emits btst/bchg/bclr/bset. Register destinations test/modify
// one of 32 bits (the bit number modulo 32); memory destinations test/
// modify one of 8 bits within the addressed byte (the bit number modulo 8).
func liftBitOp(il IL, instr DecodedInstruction, addr uint32) (int, error) {
	ops := instr.Operands
	width := 8
	if ops[1].Kind == OpRegisterDirect {
		width = 32
	}

	var bitNum Expr
	if ops[0].Kind == OpImmediate {
		bitNum = il.Const(1, ops[0].Value%int64(width))
	} else {
		bitNum = il.ModUnsigned(1, SourceIL(il, ops[0], addr), il.Const(1, int64(width)), FlagWriteNone)
	}

	v := SourceIL(il, ops[1], addr)
	il.TestBit(widthBytes(width), v, bitNum)

	switch instr.Mnemonic {
	case "btst":
		return instr.Length, nil
	case "bchg":
		mask := il.ShiftLeft(widthBytes(width), il.Const(widthBytes(width), 1), bitNum, FlagWriteNone)
		DestIL(il, ops[1], il.Xor(widthBytes(width), v, mask, FlagWriteNone), FlagWriteNone, addr)
	case "bclr":
		mask := il.Not(widthBytes(width), il.ShiftLeft(widthBytes(width), il.Const(widthBytes(width), 1), bitNum, FlagWriteNone), FlagWriteNone)
		DestIL(il, ops[1], il.And(widthBytes(width), v, mask, FlagWriteNone), FlagWriteNone, addr)
	case "bset":
		mask := il.ShiftLeft(widthBytes(width), il.Const(widthBytes(width), 1), bitNum, FlagWriteNone)
		DestIL(il, ops[1], il.Or(widthBytes(width), v, mask, FlagWriteNone), FlagWriteNone, addr)
	}
	return instr.Length, nil
}

func widthBytes(bits int) int {
	if bits == 32 {
		return 4
	}
	return 1
}
