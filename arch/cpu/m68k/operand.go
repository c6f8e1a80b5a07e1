package m68k

// OperandKind discriminates the variant held by an Operand. The decoder
// models every addressing mode as one flat struct tagged by Kind instead of
// an interface with per-type dynamic dispatch: the decoder always knows the
// tag the moment it builds the operand, so there is nothing for dispatch to
// discover at runtime.
type OperandKind int

// Operand variants, one per supported addressing mode (integer and FP).
const (
	// OpRegisterDirect is Dn or An (or CCR/SR/USP/a control register,
	// carried in Reg for the move-from/to-ccr/sr and movec forms).
	OpRegisterDirect OperandKind = iota
	// OpRegisterDirectPair is the {dh:dl} pair used by 32-bit muls/mulu/
	// divs/divu register-pair forms, and by cas2's two operands.
	OpRegisterDirectPair
	// OpRegisterMovemList is the register list of movem, stored as Regs.
	OpRegisterMovemList
	// OpRegisterIndirect is (An).
	OpRegisterIndirect
	// OpRegisterIndirectPair is the {(Rn):(Rn)} pair used by cas2.
	OpRegisterIndirectPair
	// OpRegisterIndirectPostincrement is (An)+.
	OpRegisterIndirectPostincrement
	// OpRegisterIndirectPredecrement is -(An).
	OpRegisterIndirectPredecrement
	// OpRegisterIndirectDisplacement is d16(An) or d16(PC).
	OpRegisterIndirectDisplacement
	// OpRegisterIndirectIndex is d8(An,Xn.SIZE*SCALE) (brief extension
	// word), or the same relative to PC.
	OpRegisterIndirectIndex
	// OpMemoryIndirectPreindex is the 68020+ full extension word form with
	// the index applied before the memory indirection.
	OpMemoryIndirectPreindex
	// OpMemoryIndirectPostindex is the 68020+ full extension word form
	// with the index applied after the memory indirection.
	OpMemoryIndirectPostindex
	// OpAbsolute is an absolute short or long address.
	OpAbsolute
	// OpImmediate is an integer immediate (#imm).
	OpImmediate

	// OpFPRegisterDirect is FPn.
	OpFPRegisterDirect
	// OpFPImmediate is an FP immediate, carried as raw bytes plus a
	// decoded float64 and formatted text.
	OpFPImmediate
	// OpFPRegisterMovemList is the FP register list of fmovem, Regs holds
	// FP0..FP7 members in list order.
	OpFPRegisterMovemList
	// OpFPSCRegisterMovemList is the FP control-register list of fmovem
	// (fpcr/fpsr/fpiar), always rendered in fixed hardware order
	// regardless of encoding order.
	OpFPSCRegisterMovemList

	// OpBitField is a bit field operand: an effective address (BFBase)
	// plus an offset and width that each may be a literal or a data
	// register, used by bftst/bfextu/bfchg/bfexts/bfclr/bffo/bfset/bfins.
	OpBitField
)

// Operand is a single decoded operand. Only the fields relevant to Kind are
// meaningful; the rest are zero. This flat layout mirrors the operand
// classes of the reference decoder collapsed into one tagged value, per the
// no-dynamic-dispatch design this package follows throughout.
type Operand struct {
	Kind OperandKind
	Size Size

	// Reg is the primary register for RegisterDirect, RegisterIndirect and
	// its variants, RegisterIndirectDisplacement/Index, and the
	// memory-indirect forms (where it is the base register, NoRegister if
	// suppressed).
	Reg Register
	// Reg2 is the second register of RegisterDirectPair/RegisterIndirectPair.
	Reg2 Register
	// Regs is the ordered register list of a movem operand.
	Regs []Register

	// IndexReg is the index register of RegisterIndirectIndex and the
	// memory-indirect forms, NoRegister if suppressed.
	IndexReg Register
	// IndexLong reports whether IndexReg is used in its full 32-bit form
	// (Xn.L); false means the index is sign-extended from its low word
	// (Xn.W).

	IndexLong bool
	// Scale is the index scale factor: 1, 2, 4, or 8.
	Scale uint8

	// Disp is the displacement (d8/d16/d32, sign-extended) of
	// RegisterIndirectDisplacement, RegisterIndirectIndex, and the base
	// displacement of the memory-indirect forms.
	Disp int32
	// OuterDisp is the outer displacement of the memory-indirect forms.
	OuterDisp int32

	// Address is the absolute address of an Absolute operand.
	Address uint32
	// AddressSize is the encoded width in bytes (2 for absolute short, 4
	// for absolute long) of an Absolute operand.
	AddressSize int

	// Value is the sign- or zero-extended value of an Immediate operand,
	// widened to int64 regardless of Size.
	Value int64

	// FPRaw holds the immediate's original encoded bytes (FPImmediate).
	FPRaw []byte
	// FPValue is the decoded value of an FPImmediate.
	FPValue float64
	// FPText is the formatted text representation of an FPImmediate, used
	// when the encoded format (e.g. packed BCD) is lossy to round-trip
	// through FPValue alone.
	FPText string

	// PCRelative reports whether Reg/IndexReg address relative to the
	// program counter (d16(PC) and d8(PC,Xn) forms), which the lifter and
	// control-flow analyzer must resolve against the instruction's own
	// address rather than treating as a plain register read.
	PCRelative bool

	// BFBase is the effective address a BitField operand applies to.
	BFBase *Operand
	// BFOffsetIsReg reports whether the bit field's starting offset is
	// given by a data register (BFOffsetReg) rather than a literal
	// (BFOffset).
	BFOffsetIsReg bool
	// BFOffset is the literal bit offset (0-31) when !BFOffsetIsReg.
	BFOffset int32
	// BFOffsetReg is the data register holding the offset when
	// BFOffsetIsReg.
	BFOffsetReg Register
	// BFWidthIsReg reports whether the bit field's width is given by a
	// data register (BFWidthReg) rather than a literal (BFWidth).
	BFWidthIsReg bool
	// BFWidth is the literal bit field width (1-32) when !BFWidthIsReg.
	BFWidth int32
	// BFWidthReg is the data register holding the width when
	// BFWidthIsReg.
	BFWidthReg Register
}

// registerOperand builds a plain register-direct operand.
func registerOperand(size Size, reg Register) Operand {
	return Operand{Kind: OpRegisterDirect, Size: size, Reg: reg, IndexReg: NoRegister}
}

// immediateOperand builds an integer immediate operand.
func immediateOperand(size Size, value int64) Operand {
	return Operand{Kind: OpImmediate, Size: size, Value: value, IndexReg: NoRegister}
}

// absoluteOperand builds an absolute addressing operand.
func absoluteOperand(size Size, addr uint32, addrSize int) Operand {
	return Operand{Kind: OpAbsolute, Size: size, Address: addr, AddressSize: addrSize, IndexReg: NoRegister}
}

// pairOperand builds the {hi:lo} register-pair operand used by the
// register-pair forms of muls/mulu/divs/divu, and by cas2's compare/update
// register operands.
func pairOperand(size Size, hi, lo Register) Operand {
	return Operand{Kind: OpRegisterDirectPair, Size: size, Reg: hi, Reg2: lo, IndexReg: NoRegister}
}

// indirectPairOperand builds the {(Rn):(Rn)} operand used by cas2's memory
// operand.
func indirectPairOperand(size Size, r1, r2 Register) Operand {
	return Operand{Kind: OpRegisterIndirectPair, Size: size, Reg: r1, Reg2: r2, IndexReg: NoRegister}
}

// fpRegisterOperand builds an FPn register-direct operand.
func fpRegisterOperand(reg Register) Operand {
	return Operand{Kind: OpFPRegisterDirect, Size: SizeLong, Reg: reg, IndexReg: NoRegister}
}

// fpRegisterListOperand builds an fmovem FP data-register list operand.
func fpRegisterListOperand(regs []Register) Operand {
	return Operand{Kind: OpFPRegisterMovemList, Regs: regs, IndexReg: NoRegister}
}

// fpControlListOperand builds an fmovem FP system-control-register list
// operand (a subset of FPCR/FPSR/FPIAR).
func fpControlListOperand(regs []Register) Operand {
	return Operand{Kind: OpFPSCRegisterMovemList, Regs: regs, IndexReg: NoRegister}
}

// bitFieldOperand builds a bit field operand over base, with offset/width
// each resolved to either a literal or a data register per the extension
// word's Do/Dw flags.
func bitFieldOperand(base Operand, offsetIsReg bool, offset int32, offsetReg Register, widthIsReg bool, width int32, widthReg Register) Operand {
	return Operand{
		Kind: OpBitField, IndexReg: NoRegister, BFBase: &base,
		BFOffsetIsReg: offsetIsReg, BFOffset: offset, BFOffsetReg: offsetReg,
		BFWidthIsReg: widthIsReg, BFWidth: width, BFWidthReg: widthReg,
	}
}
