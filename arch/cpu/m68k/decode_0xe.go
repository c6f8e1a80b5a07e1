package m68k

var shiftRotateMnemonics = [...][2]string{
	{"asr", "asl"},
	{"lsr", "lsl"},
	{"roxr", "roxl"},
	{"ror", "rol"},
}

// bitFieldMnemonics indexes the 3-bit style field of a $Exxx bit field
// opcode: tst/extu/chg/exts/clr/ffo/set/ins.
var bitFieldMnemonics = [...]string{"bftst", "bfextu", "bfchg", "bfexts", "bfclr", "bfffo", "bfset", "bfins"}

// decodeGroupE decodes the $Exxx opcode page: register/memory shift-rotate
// (decodeShiftRotate) and the 68020+ bit field family (decodeBitField),
// distinguished the way the reference decoder does (instruction&0xF8C0==
// 0xE8C0 selects bit field; everything else on the page is shift/rotate).
func decodeGroupE(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	if op&0xF8C0 == 0xE8C0 {
		return decodeBitField(r, cfg, op, addr)
	}
	return decodeShiftRotate(r, cfg, op, addr)
}

// decodeBitField decodes a bit field instruction: an extension word carries
// the offset and width, each either a literal or a data register (the Do/Dw
// flags at bits 11 and 5), plus the Dn field at bits 14-12 that bfextu/
// bfexts/bfffo write their result to and bfins reads its source from.
func decodeBitField(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	style := (op >> 8) & 7
	mode := (op >> 3) & 7
	reg := op & 7

	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	dn := dataRegister((extra >> 12) & 7)

	offsetIsReg := extra&0x0800 != 0
	offsetReg := NoRegister
	var offset int32
	if offsetIsReg {
		offsetReg = dataRegister((extra >> 6) & 7)
	} else {
		offset = int32((extra >> 6) & 0x1F)
	}

	widthIsReg := extra&0x0020 != 0
	widthReg := NoRegister
	var width int32
	if widthIsReg {
		widthReg = dataRegister(extra & 7)
	} else {
		w := extra & 0x1F
		if w == 0 {
			w = 32
		}
		width = int32(w)
	}

	base, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	bf := bitFieldOperand(base, offsetIsReg, offset, offsetReg, widthIsReg, width, widthReg)
	mnemonic := bitFieldMnemonics[style]

	switch style {
	case 1, 3, 5: // bfextu, bfexts, bfffo: result written to Dn
		return DecodedInstruction{Mnemonic: mnemonic, Operands: [3]Operand{bf, registerOperand(SizeLong, dn)}, OperandCount: 2}, nil
	case 7: // bfins: Dn is the source, bf the destination
		return DecodedInstruction{Mnemonic: mnemonic, Operands: [3]Operand{registerOperand(SizeLong, dn), bf}, OperandCount: 2}, nil
	default: // bftst, bfchg, bfclr, bfset: the bit field alone
		return DecodedInstruction{Mnemonic: mnemonic, Operands: [3]Operand{bf}, OperandCount: 1}, nil
	}
}

// decodeShiftRotate decodes the $Exxx opcode page: the register shift/
// rotate instructions (asr/asl, lsr/lsl, roxr/roxl, ror/rol with an
// immediate or register count) and their single-bit memory forms.
func decodeShiftRotate(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	sizeField := (op >> 6) & 3
	left := op&0x0100 != 0

	if sizeField == 3 {
		typ := (op >> 9) & 3
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		dir := 0
		if left {
			dir = 1
		}
		mnemonic := shiftRotateMnemonics[typ][dir]
		return DecodedInstruction{Mnemonic: mnemonic, Size: SizeWord, SizeValid: true, Operands: [3]Operand{dest}, OperandCount: 1}, nil
	}

	size, ok := sizeFieldStd(sizeField)
	if !ok {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	typ := (op >> 3) & 3
	dn := dataRegister(op & 7)
	dir := 0
	if left {
		dir = 1
	}
	mnemonic := shiftRotateMnemonics[typ][dir]

	var count Operand
	if op&0x0020 != 0 {
		count = registerOperand(SizeLong, dataRegister((op>>9)&7))
	} else {
		n := (op >> 9) & 7
		if n == 0 {
			n = 8
		}
		count = immediateOperand(SizeByte, int64(n))
	}

	return DecodedInstruction{
		Mnemonic: mnemonic, Size: size, SizeValid: true,
		Operands: [3]Operand{count, registerOperand(size, dn)}, OperandCount: 2,
	}, nil
}
