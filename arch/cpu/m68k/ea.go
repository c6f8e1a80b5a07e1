package m68k

// Effective address modes, the top 3 bits of a 6-bit mode/register field.
const (
	eaModeDataDirect = iota
	eaModeAddrDirect
	eaModeIndirect
	eaModeIndirectPostinc
	eaModeIndirectPredec
	eaModeIndirectDisp
	eaModeIndirectIndex
	eaModeOther // reg selects the actual mode
)

// Sub-modes of eaModeOther (register field when mode == 7).
const (
	eaOtherAbsoluteShort = iota
	eaOtherAbsoluteLong
	eaOtherPCDisp
	eaOtherPCIndex
	eaOtherImmediate
)

// decodeEffectiveAddress decodes one 6-bit mode/register effective address
// field into an Operand, consuming whatever extension words the mode
// requires from r. addr is the address of the instruction's first byte,
// needed to resolve PC-relative forms.
func decodeEffectiveAddress(r *reader, cfg VariantConfig, mode, reg uint16, size Size, addr uint32) (Operand, error) {
	switch mode {
	case eaModeDataDirect:
		return registerOperand(size, dataRegister(reg)), nil

	case eaModeAddrDirect:
		return registerOperand(size, addressRegister(reg)), nil

	case eaModeIndirect:
		return Operand{Kind: OpRegisterIndirect, Size: size, Reg: addressRegister(reg), IndexReg: NoRegister}, nil

	case eaModeIndirectPostinc:
		return Operand{Kind: OpRegisterIndirectPostincrement, Size: size, Reg: addressRegister(reg), IndexReg: NoRegister}, nil

	case eaModeIndirectPredec:
		return Operand{Kind: OpRegisterIndirectPredecrement, Size: size, Reg: addressRegister(reg), IndexReg: NoRegister}, nil

	case eaModeIndirectDisp:
		disp, ok := r.u16()
		if !ok {
			return Operand{}, ErrShortInput
		}
		return Operand{
			Kind: OpRegisterIndirectDisplacement, Size: size,
			Reg: addressRegister(reg), IndexReg: NoRegister,
			Disp: int32(int16(disp)),
		}, nil

	case eaModeIndirectIndex:
		return decodeIndexedEA(r, cfg, size, addressRegister(reg), false, addr)

	case eaModeOther:
		switch reg {
		case eaOtherAbsoluteShort:
			v, ok := r.u16()
			if !ok {
				return Operand{}, ErrShortInput
			}
			return absoluteOperand(size, uint32(int32(int16(v)))&cfg.AddressMask(), 2), nil

		case eaOtherAbsoluteLong:
			v, ok := r.u32()
			if !ok {
				return Operand{}, ErrShortInput
			}
			return absoluteOperand(size, v, 4), nil

		case eaOtherPCDisp:
			disp, ok := r.u16()
			if !ok {
				return Operand{}, ErrShortInput
			}
			return Operand{
				Kind: OpRegisterIndirectDisplacement, Size: size,
				Reg: PC, IndexReg: NoRegister,
				Disp: int32(int16(disp)), PCRelative: true,
			}, nil

		case eaOtherPCIndex:
			return decodeIndexedEA(r, cfg, size, PC, true, addr)

		case eaOtherImmediate:
			return decodeImmediate(r, size)

		default:
			return Operand{}, ErrUnrecognizedEncoding
		}
	}
	return Operand{}, ErrUnrecognizedEncoding
}

// decodeImmediate reads a #imm operand. Byte immediates are still encoded
// in a full word with the value in the low byte.
func decodeImmediate(r *reader, size Size) (Operand, error) {
	switch size {
	case SizeByte:
		v, ok := r.u16()
		if !ok {
			return Operand{}, ErrShortInput
		}
		return immediateOperand(size, int64(int8(v))), nil
	case SizeWord:
		v, ok := r.u16()
		if !ok {
			return Operand{}, ErrShortInput
		}
		return immediateOperand(size, int64(int16(v))), nil
	case SizeLong:
		v, ok := r.u32()
		if !ok {
			return Operand{}, ErrShortInput
		}
		return immediateOperand(size, int64(int32(v))), nil
	default:
		return Operand{}, ErrUnrecognizedEncoding
	}
}

// decodeIndexedEA decodes the brief or full extension word forms shared by
// register-indirect-with-index (mode 6) and PC-relative-with-index (mode
// 7, reg 3). base is An for the register form, PC for the PC-relative form.
func decodeIndexedEA(r *reader, cfg VariantConfig, size Size, base Register, pcRelative bool, addr uint32) (Operand, error) {
	ext, ok := r.u16()
	if !ok {
		return Operand{}, ErrShortInput
	}

	indexIsAddr := ext&0x8000 != 0
	indexNum := (ext >> 12) & 7
	indexLong := ext&0x0800 != 0
	scale := uint8(1) << ((ext >> 9) & 3)

	var indexReg Register
	if indexIsAddr {
		indexReg = addressRegister(indexNum)
	} else {
		indexReg = dataRegister(indexNum)
	}

	full := ext&0x0100 != 0
	if !full {
		// Brief extension word: 8-bit signed displacement, index always
		// present (no suppress bit in the brief form).
		disp := int32(int8(ext & 0xFF))
		return Operand{
			Kind: OpRegisterIndirectIndex, Size: size,
			Reg: base, IndexReg: indexReg, IndexLong: indexLong,
			Scale: scale, Disp: disp, PCRelative: pcRelative,
		}, nil
	}

	if !cfg.LongDisplacement {
		return Operand{}, ErrUnsupportedOnVariant
	}

	baseSuppress := ext&0x0080 != 0
	indexSuppress := ext&0x0040 != 0
	bdSize := (ext >> 4) & 3
	iis := ext & 7

	effBase := base
	if baseSuppress {
		effBase = NoRegister
	}
	effIndex := indexReg
	if indexSuppress {
		effIndex = NoRegister
	}

	bd, err := readExtDisplacement(r, bdSize)
	if err != nil {
		return Operand{}, err
	}

	if iis == 0 {
		// No memory indirection: base + index + base displacement.
		return Operand{
			Kind: OpRegisterIndirectIndex, Size: size,
			Reg: effBase, IndexReg: effIndex, IndexLong: indexLong,
			Scale: scale, Disp: bd, PCRelative: pcRelative,
		}, nil
	}

	if !cfg.MemoryIndirect {
		return Operand{}, ErrUnsupportedOnVariant
	}

	outerSize := iis & 3
	od, err := readExtDisplacement(r, outerSize)
	if err != nil {
		return Operand{}, err
	}

	kind := OpMemoryIndirectPreindex
	if (iis>>2)&1 == 1 {
		kind = OpMemoryIndirectPostindex
	}

	return Operand{
		Kind: kind, Size: size,
		Reg: effBase, IndexReg: effIndex, IndexLong: indexLong,
		Scale: scale, Disp: bd, OuterDisp: od, PCRelative: pcRelative,
	}, nil
}

// readExtDisplacement reads a base or outer displacement of the size coded
// by a full extension word's two-bit size field: 0 reserved (treated as
// null), 1 null, 2 word (sign-extended), 3 long.
func readExtDisplacement(r *reader, sizeField uint16) (int32, error) {
	switch sizeField {
	case 0, 1:
		return 0, nil
	case 2:
		v, ok := r.u16()
		if !ok {
			return 0, ErrShortInput
		}
		return int32(int16(v)), nil
	case 3:
		v, ok := r.u32()
		if !ok {
			return 0, ErrShortInput
		}
		return int32(v), nil
	default:
		return 0, ErrUnrecognizedEncoding
	}
}
