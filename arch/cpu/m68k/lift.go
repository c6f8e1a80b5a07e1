package m68k

// Lift emits instr's effect as a sequence of calls into il. addr is the
// address instr was decoded at. It returns instr.Length unchanged on
// success, so callers can use Lift's return value the same way they use
// Decode's, or ErrNotLiftable for mnemonics with no lifting defined (and
// for the 64-bit register-pair divide forms and branches whose target is
// not statically known). FP, cache/MMU and the other decode-only forms
// emit a single unimplemented node and succeed.
func Lift(cfg VariantConfig, instr DecodedInstruction, addr uint32, il IL) (int, error) {
	ops := instr.Operands
	n := instr.OperandCount

	switch instr.Mnemonic {
	case "nop":
		il.Nop()
	case "illegal", "trap", "trapv":
		il.SystemCall()
	case "reset", "stop":
		il.Unimplemented()

	case "move", "movea":
		PreIL(il, ops[0])
		v := SourceIL(il, ops[0], addr)
		PostIL(il, ops[0])
		PreIL(il, ops[1])
		flags := FlagWriteNZVC
		if instr.Mnemonic == "movea" {
			flags = FlagWriteNone
		}
		DestIL(il, ops[1], v, flags, addr)
		PostIL(il, ops[1])

	case "moveq":
		DestIL(il, ops[1], il.Const(4, ops[0].Value), FlagWriteNZVC, addr)

	case "lea":
		DestIL(il, ops[1], AddressIL(il, ops[0], addr), FlagWriteNone, addr)

	case "pea":
		il.Push(4, AddressIL(il, ops[0], addr))

	case "clr":
		DestIL(il, ops[0], il.Const(ops[0].sizeBytes(), 0), FlagWriteNZVC, addr)

	case "neg":
		v := SourceIL(il, ops[0], addr)
		result := il.Sub(ops[0].sizeBytes(), il.Const(ops[0].sizeBytes(), 0), v, FlagWriteAll)
		DestIL(il, ops[0], result, FlagWriteAll, addr)

	case "negx":
		v := SourceIL(il, ops[0], addr)
		borrow := il.Flag("x")
		result := il.Sub(ops[0].sizeBytes(), il.Sub(ops[0].sizeBytes(), il.Const(ops[0].sizeBytes(), 0), v, FlagWriteNone), borrow, FlagWriteAll)
		DestIL(il, ops[0], result, FlagWriteAll, addr)

	case "not":
		v := SourceIL(il, ops[0], addr)
		DestIL(il, ops[0], il.Not(ops[0].sizeBytes(), v, FlagWriteNZVC), FlagWriteNZVC, addr)

	case "tst":
		v := SourceIL(il, ops[0], addr)
		il.Sub(ops[0].sizeBytes(), v, il.Const(ops[0].sizeBytes(), 0), FlagWriteNZVC)

	case "tas":
		v := SourceIL(il, ops[0], addr)
		il.Sub(1, v, il.Const(1, 0), FlagWriteNZVC)
		DestIL(il, ops[0], il.Or(1, v, il.Const(1, 0x80), FlagWriteNone), FlagWriteNone, addr)

	case "chk":
		liftChk(il, ops, addr)

	case "add", "addi", "addq":
		lift2ArgArith(il, ops, n, addr, il.Add, FlagWriteAll)
	case "sub", "subi", "subq":
		lift2ArgArith(il, ops, n, addr, il.Sub, FlagWriteAll)
	case "and", "andi":
		lift2ArgArith(il, ops, n, addr, il.And, FlagWriteNZVC)
	case "or", "ori":
		lift2ArgArith(il, ops, n, addr, il.Or, FlagWriteNZVC)
	case "eor", "eori":
		lift2ArgArith(il, ops, n, addr, il.Xor, FlagWriteNZVC)

	case "adda":
		v := SourceIL(il, ops[0], addr)
		size := ops[0].sizeBytes()
		if size < 4 {
			v = il.SignExtend(4, v)
		}
		result := il.Add(4, il.Reg(4, ops[1].Reg), v, FlagWriteNone)
		il.SetReg(4, ops[1].Reg, result, FlagWriteNone)
	case "suba":
		v := SourceIL(il, ops[0], addr)
		size := ops[0].sizeBytes()
		if size < 4 {
			v = il.SignExtend(4, v)
		}
		result := il.Sub(4, il.Reg(4, ops[1].Reg), v, FlagWriteNone)
		il.SetReg(4, ops[1].Reg, result, FlagWriteNone)

	case "addx":
		liftExtended(il, ops, addr, il.Add)
	case "subx":
		liftExtended(il, ops, addr, il.Sub)

	case "cmp", "cmpi", "cmpm":
		a := SourceIL(il, ops[0], addr)
		b := SourceIL(il, ops[1], addr)
		il.Sub(ops[1].sizeBytes(), b, a, FlagWriteNZVC)
	case "cmpa":
		a := SourceIL(il, ops[0], addr)
		if ops[0].sizeBytes() < 4 {
			a = il.SignExtend(4, a)
		}
		il.Sub(4, il.Reg(4, ops[1].Reg), a, FlagWriteNZVC)

	case "muls":
		liftMultiply(il, ops, addr, true)
	case "mulu":
		liftMultiply(il, ops, addr, false)

	case "divs":
		if ops[1].Kind == OpRegisterDirectPair {
			// 64-bit dividend (Reg:Reg2) divided by a 32-bit source: this IL
			// contract has no primitive to combine two registers into a
			// single 64-bit value, so this form is decode-only.
			return 0, ErrNotLiftable
		}
		if ops[0].sizeBytes() == 4 {
			liftLongDivide(il, ops, addr, il.DivSigned)
			break
		}
		liftDivide(il, ops, addr, true, il.DivSigned, il.ModSigned)
	case "divu":
		if ops[1].Kind == OpRegisterDirectPair {
			return 0, ErrNotLiftable
		}
		if ops[0].sizeBytes() == 4 {
			liftLongDivide(il, ops, addr, il.DivUnsigned)
			break
		}
		liftDivide(il, ops, addr, false, il.DivUnsigned, il.ModUnsigned)

	case "swap":
		v := il.Reg(4, ops[0].Reg)
		swapped := il.RotateLeft(4, v, il.Const(4, 16), FlagWriteNZVC)
		il.SetReg(4, ops[0].Reg, swapped, FlagWriteNone)

	case "ext":
		var narrow Expr
		if instr.Size == SizeLong {
			narrow = il.Reg(2, ops[0].Reg)
			il.SetReg(4, ops[0].Reg, il.SignExtend(4, narrow), FlagWriteNZVC)
		} else {
			narrow = il.Reg(1, ops[0].Reg)
			il.SetReg(2, ops[0].Reg, il.SignExtend(2, narrow), FlagWriteNZVC)
		}
	case "extb":
		narrow := il.Reg(1, ops[0].Reg)
		il.SetReg(4, ops[0].Reg, il.SignExtend(4, narrow), FlagWriteNZVC)

	case "exg":
		tmp := il.Reg(4, ops[0].Reg)
		il.SetReg(4, ops[0].Reg, il.Reg(4, ops[1].Reg), FlagWriteNone)
		il.SetReg(4, ops[1].Reg, tmp, FlagWriteNone)

	case "link":
		sp := il.Sub(4, il.Reg(4, SP), il.Const(4, 4), FlagWriteNone)
		il.SetReg(4, SP, sp, FlagWriteNone)
		il.Store(4, il.Reg(4, SP), il.Reg(4, ops[0].Reg), FlagWriteNone)
		il.SetReg(4, ops[0].Reg, il.Reg(4, SP), FlagWriteNone)
		newSP := il.Add(4, il.Reg(4, SP), il.Const(4, ops[1].Value), FlagWriteNone)
		il.SetReg(4, SP, newSP, FlagWriteNone)
	case "unlk":
		il.SetReg(4, SP, il.Reg(4, ops[0].Reg), FlagWriteNone)
		il.SetReg(4, ops[0].Reg, il.Load(4, il.Reg(4, SP)), FlagWriteNone)
		il.SetReg(4, SP, il.Add(4, il.Reg(4, SP), il.Const(4, 4), FlagWriteNone), FlagWriteNone)

	case "bra":
		if target, ok := operandBranchTarget(ops[0], addr); ok {
			jumpToLabel(il, target)
		} else {
			il.Jump(il.Const(4, int64(ops[0].Address)))
		}
	case "bsr":
		il.Call(il.ConstPointer(4, ops[0].Address))
	case "jmp":
		il.Jump(AddressIL(il, ops[0], addr))
	case "jsr":
		il.Call(AddressIL(il, ops[0], addr))
	case "rts":
		il.Ret(il.Pop(4))
	case "rtd":
		target := il.Pop(4)
		il.SetReg(4, SP, il.Add(4, il.Reg(4, SP), il.Const(4, ops[0].Value), FlagWriteNone), FlagWriteNone)
		il.Ret(target)
	case "rtr":
		il.SetFlag("ccr", il.Pop(2))
		il.Ret(il.Pop(4))
	case "rte":
		il.SetFlag("sr", il.Pop(2))
		il.Ret(il.Pop(4))

	case "asl", "asr", "lsl", "lsr", "rol", "ror", "roxl", "roxr":
		return liftShiftRotate(il, instr, ops, n, addr)

	case "movem":
		return liftMovem(il, cfg, instr, addr)

	case "btst", "bchg", "bclr", "bset":
		return liftBitOp(il, instr, addr)

	default:
		// FP instructions (fmove/fadd/.../fbcc/fscc/ftrapcc/fsave/frestore)
		// and the supervisor/atomic 0x0-page forms this package decodes but
		// has no architecture-neutral IR for: these still report a decoded
		// length and still format, they just emit a single unimplemented IR
		// node and stop, the same contract reset/stop use above.
		switch instr.Mnemonic {
		case "cinv", "cpush", "pflush", "rtm", "callm", "chk2", "cmp2", "cas", "cas2", "moves":
			il.Unimplemented()
			return instr.Length, nil
		}
		if len(instr.Mnemonic) > 0 && instr.Mnemonic[0] == 'f' {
			il.Unimplemented()
			return instr.Length, nil
		}
		if len(instr.Mnemonic) >= 2 && instr.Mnemonic[:2] == "bf" {
			// Bit field family (bftst/bfextu/bfchg/bfexts/bfclr/bfffo/bfset/
			// bfins): no architecture-neutral IR for a variable-width,
			// arbitrarily-aligned bit field read/write, so this decodes and
			// formats but, like FP, only emits a single unimplemented node.
			il.Unimplemented()
			return instr.Length, nil
		}
		if len(instr.Mnemonic) == 3 && instr.Mnemonic[0] == 'b' {
			return liftConditionalBranch(il, instr, ops, addr)
		}
		if len(instr.Mnemonic) >= 2 && instr.Mnemonic[:2] == "db" {
			return liftDBcc(il, instr, ops, addr)
		}
		if (len(instr.Mnemonic) == 2 || len(instr.Mnemonic) == 3) && instr.Mnemonic[0] == 's' {
			return liftScc(il, instr, ops, addr)
		}
		return 0, ErrNotLiftable
	}

	return instr.Length, nil
}

type binOp func(size int, a, b Expr, flags FlagWriteType) Expr

func lift2ArgArith(il IL, ops [3]Operand, n int, addr uint32, op binOp, flags FlagWriteType) {
	a := SourceIL(il, ops[0], addr)
	b := SourceIL(il, ops[1], addr)
	result := op(ops[1].sizeBytes(), b, a, flags)
	DestIL(il, ops[1], result, flags, addr)
}

func liftExtended(il IL, ops [3]Operand, addr uint32, op binOp) {
	a := SourceIL(il, ops[0], addr)
	b := SourceIL(il, ops[1], addr)
	withCarry := il.Add(ops[1].sizeBytes(), a, il.Flag("x"), FlagWriteNone)
	result := op(ops[1].sizeBytes(), b, withCarry, FlagWriteAll)
	DestIL(il, ops[1], result, FlagWriteAll, addr)
}

// liftDivide lowers the word-divide forms (divs.w/divu.w), which pack a
// 16-bit quotient and 16-bit remainder into the destination's 32 bits. The
// divisor is sign-extended for divs and zero-extended for divu before the
// 32-bit divide/modulo so a negative word divisor is not misread as a large
// positive one.
func liftDivide(il IL, ops [3]Operand, addr uint32, signed bool, div, mod func(size int, a, b Expr, flags FlagWriteType) Expr) {
	size := 4
	a := SourceIL(il, ops[0], addr)
	var divisor Expr
	if signed {
		divisor = il.SignExtend(size, a)
	} else {
		divisor = il.ZeroExtend(size, a)
	}
	dividend := il.Reg(size, ops[1].Reg)
	quotient := div(size, dividend, divisor, FlagWriteNZVC)
	remainder := mod(size, dividend, divisor, FlagWriteNone)
	packed := il.Or(size, il.ShiftLeft(size, remainder, il.Const(size, 16), FlagWriteNone), quotient, FlagWriteNone)
	il.SetReg(size, ops[1].Reg, packed, FlagWriteNone)
}

// liftMultiply lowers muls/mulu. The 32x32->32 form truncates the product
// into a single register; the 68020+ register-pair form (dest.Kind ==
// OpRegisterDirectPair) produces a full 64-bit product split across dest's
// Reg (high) and Reg2 (low) via SetRegSplit.
func liftMultiply(il IL, ops [3]Operand, addr uint32, signed bool) {
	v := SourceIL(il, ops[0], addr)
	dest := ops[1]
	if dest.Kind == OpRegisterDirectPair {
		var a, b Expr
		if signed {
			a = il.SignExtend(8, v)
			b = il.SignExtend(8, il.Reg(4, dest.Reg2))
		} else {
			a = il.ZeroExtend(8, v)
			b = il.ZeroExtend(8, il.Reg(4, dest.Reg2))
		}
		product := il.Mult(8, a, b, FlagWriteNZVC)
		il.SetRegSplit(8, dest.Reg, dest.Reg2, product)
		return
	}
	var a Expr
	if signed {
		a = il.SignExtend(4, v)
	} else {
		a = il.ZeroExtend(4, v)
	}
	result := il.Mult(4, a, il.Reg(4, dest.Reg), FlagWriteNZVC)
	il.SetReg(4, dest.Reg, result, FlagWriteNone)
}

// liftLongDivide lowers the 68020+ 32/32 divide form collapsed to a single
// destination register (the dh == dl case of decodeLongMulDiv): a plain
// 32-bit dividend divided by a 32-bit source, quotient only, with no
// accessible remainder.
func liftLongDivide(il IL, ops [3]Operand, addr uint32, div func(size int, a, b Expr, flags FlagWriteType) Expr) {
	a := SourceIL(il, ops[0], addr)
	dividend := il.Reg(4, ops[1].Reg)
	quotient := div(4, dividend, a, FlagWriteNZVC)
	il.SetReg(4, ops[1].Reg, quotient, FlagWriteNone)
}

// liftChk lowers chk: it traps via SystemCall if the checked register is
// negative or exceeds the upper bound operand, the same if/else-label shape
// liftConditionalBranch uses for bcc.
func liftChk(il IL, ops [3]Operand, addr uint32) {
	size := ops[1].sizeBytes()
	bound := SourceIL(il, ops[0], addr)
	value := il.Reg(size, ops[1].Reg)

	il.Sub(size, value, il.Const(size, 0), FlagWriteAll)
	doneLabel := il.NewLabel()
	lowLabel, checkHighLabel := il.NewLabel(), il.NewLabel()
	il.IfExpr(conditionExprIL(il, ConditionLessThan), lowLabel, checkHighLabel)
	il.MarkLabel(lowLabel)
	il.SystemCall()
	il.Goto(doneLabel)

	il.MarkLabel(checkHighLabel)
	il.Sub(size, value, bound, FlagWriteAll)
	highLabel, okLabel := il.NewLabel(), il.NewLabel()
	il.IfExpr(conditionExprIL(il, ConditionGreaterThan), highLabel, okLabel)
	il.MarkLabel(highLabel)
	il.SystemCall()
	il.Goto(doneLabel)

	il.MarkLabel(okLabel)
	il.MarkLabel(doneLabel)
}

func jumpToLabel(il IL, addr uint32) {
	if label, ok := il.GetLabelForAddress(addr); ok {
		il.Goto(label)
		return
	}
	il.Jump(il.ConstPointer(4, addr))
}

func liftConditionalBranch(il IL, instr DecodedInstruction, ops [3]Operand, addr uint32) (int, error) {
	target, ok := operandBranchTarget(ops[0], addr)
	if !ok {
		return 0, ErrNotLiftable
	}
	tLabel, fLabel := il.NewLabel(), il.NewLabel()
	cond := conditionExprIL(il, instr.Condition)
	il.IfExpr(cond, tLabel, fLabel)
	il.MarkLabel(tLabel)
	jumpToLabel(il, target)
	il.MarkLabel(fLabel)
	return instr.Length, nil
}

func liftDBcc(il IL, instr DecodedInstruction, ops [3]Operand, addr uint32) (int, error) {
	target, ok := operandBranchTarget(ops[1], addr)
	if !ok {
		return 0, ErrNotLiftable
	}
	// If the condition is already true, fall through without decrementing.
	doneLabel, decLabel := il.NewLabel(), il.NewLabel()
	il.IfExpr(conditionExprIL(il, instr.Condition), doneLabel, decLabel)
	il.MarkLabel(decLabel)

	counter := il.Reg(2, ops[0].Reg)
	decremented := il.Sub(2, counter, il.Const(2, 1), FlagWriteNone)
	il.SetReg(2, ops[0].Reg, decremented, FlagWriteNone)

	branchLabel, fallLabel := il.NewLabel(), il.NewLabel()
	il.IfExpr(il.CompareEqual(2, decremented, il.Const(2, -1)), fallLabel, branchLabel)
	il.MarkLabel(branchLabel)
	jumpToLabel(il, target)
	il.MarkLabel(fallLabel)
	il.MarkLabel(doneLabel)
	return instr.Length, nil
}

func liftScc(il IL, instr DecodedInstruction, ops [3]Operand, addr uint32) (int, error) {
	tLabel, fLabel := il.NewLabel(), il.NewLabel()
	il.IfExpr(conditionExprIL(il, instr.Condition), tLabel, fLabel)
	il.MarkLabel(tLabel)
	DestIL(il, ops[0], il.Const(1, -1), FlagWriteNone, addr)
	doneLabel := il.NewLabel()
	il.Goto(doneLabel)
	il.MarkLabel(fLabel)
	DestIL(il, ops[0], il.Const(1, 0), FlagWriteNone, addr)
	il.MarkLabel(doneLabel)
	return instr.Length, nil
}

// conditionExprIL lowers a hardware Condition to an IL expression, handling
// the always-true/always-false conditions (which have no flag-condition
// test) as constants.
func conditionExprIL(il IL, cond Condition) Expr {
	switch cond {
	case ConditionTrue:
		return il.Const(1, 1)
	case ConditionFalse:
		return il.Const(1, 0)
	default:
		fc, _ := cond.ToFlagCondition()
		return il.FlagCondition(fc)
	}
}

func liftShiftRotate(il IL, instr DecodedInstruction, ops [3]Operand, n int, addr uint32) (int, error) {
	var value, shift Operand
	if n == 2 {
		shift, value = ops[0], ops[1]
	} else {
		value = ops[0]
		shift = Operand{Kind: OpImmediate, Value: 1}
	}

	v := SourceIL(il, value, addr)
	var count Expr
	if shift.Kind == OpImmediate {
		count = il.Const(1, shift.Value)
	} else {
		count = SourceIL(il, shift, addr)
	}

	size := value.sizeBytes()
	var result Expr
	switch instr.Mnemonic {
	case "asl":
		result = il.ShiftLeft(size, v, count, FlagWriteAll)
	case "asr":
		result = il.ArithShiftRight(size, v, count, FlagWriteAll)
	case "lsl":
		result = il.ShiftLeft(size, v, count, FlagWriteAll)
	case "lsr":
		result = il.LogicalShiftRight(size, v, count, FlagWriteAll)
	case "rol":
		result = il.RotateLeft(size, v, count, FlagWriteNZVC)
	case "ror":
		result = il.RotateRight(size, v, count, FlagWriteNZVC)
	case "roxl":
		result = il.RotateLeftCarry(size, v, count, FlagWriteAll)
	case "roxr":
		result = il.RotateRightCarry(size, v, count, FlagWriteAll)
	default:
		return 0, ErrNotLiftable
	}
	DestIL(il, value, result, FlagWriteAll, addr)
	return instr.Length, nil
}
