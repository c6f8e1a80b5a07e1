package m68k

// decodeGroup0 decodes the $0xxx opcode page: immediate bit-manipulation
// (ori/andi/eori/subi/addi/cmpi to an effective address, including the
// to-CCR/to-SR immediate forms), static/dynamic bit instructions (btst/
// bchg/bclr/bset), movep, and the 68020+ reserved-pattern instructions
// rtm/callm/chk2/cmp2, cas/cas2, and moves.
func decodeGroup0(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	mode := (op >> 3) & 7
	reg := op & 7

	if op&0xF9C0 == 0x00C0 {
		return decodeRtmCallmChk2Cmp2(r, cfg, op, addr)
	}
	if op&0xFFC0 == 0x0AC0 || op&0xFFC0 == 0x0CC0 || op&0xFFC0 == 0x0EC0 {
		return decodeCas(r, cfg, op, addr)
	}
	if op&0xFF00 == 0x0E00 {
		return decodeMoves(r, cfg, op, addr)
	}

	// Dynamic bit ops: 0000 dnn 1 bb mode reg (bb selects btst/bchg/bclr/bset).
	if op&0x0100 != 0 && (op&0x0038) != 0x0008 {
		bitOp := (op >> 6) & 3
		dn := dataRegister((op >> 9) & 7)
		size := SizeLong
		if mode != eaModeDataDirect {
			size = SizeByte
		}
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return bitInstruction(bitOp, registerOperand(SizeLong, dn), dest), nil
	}

	// movep: 0000 ddd 1 mm 001 aaa
	if (op&0x0138) == 0x0108 {
		dn := dataRegister((op >> 9) & 7)
		an := addressRegister(reg)
		disp, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		size := SizeWord
		toMemory := op&0x0080 != 0
		if op&0x0040 != 0 {
			size = SizeLong
		}
		memOp := Operand{Kind: OpRegisterIndirectDisplacement, Size: size, Reg: an, IndexReg: NoRegister, Disp: int32(int16(disp))}
		regOp := registerOperand(size, dn)
		instr := DecodedInstruction{Mnemonic: "movep", Size: size, SizeValid: true, OperandCount: 2}
		if toMemory {
			instr.Operands = [3]Operand{regOp, memOp}
		} else {
			instr.Operands = [3]Operand{memOp, regOp}
		}
		return instr, nil
	}

	// Static bit ops and immediate group: 0000 ooo0 ssmmm rrr, ooo selects
	// the operation via bits 11-9, except 100 (0x08xx) which is the static
	// bit-op page decoded below by decodeStaticBit.
	if op&0x0F00 != 0x0800 {
		group := (op >> 9) & 7
		if mode == eaModeOther && reg >= 2 && group != 7 {
			// CCR/SR immediate destinations only apply to ori/andi/eori
			// (group 0/1/5) targeting mode 7 reg 4 handled below; other
			// mode-7 sub-forms here are reserved.
		}
		size, ok := sizeFieldStd((op >> 6) & 3)
		if !ok {
			return decodeStaticBit(r, cfg, op, addr)
		}
		imm, err := decodeImmediate(r, size)
		if err != nil {
			return DecodedInstruction{}, err
		}

		mnemonic, ccrSrVariant := groupImmediateMnemonic(group)
		if mnemonic == "" {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}

		if mode == eaModeOther && reg == 4 && ccrSrVariant {
			// to-CCR (byte) / to-SR (word) immediate form.
			target := registerOperand(SizeByte, CCR)
			if size == SizeWord {
				target = registerOperand(SizeWord, SR)
			} else if size != SizeByte {
				return DecodedInstruction{}, ErrUnrecognizedEncoding
			}
			return DecodedInstruction{
				Mnemonic: mnemonic, Size: size, SizeValid: true,
				Operands: [3]Operand{imm, target}, OperandCount: 2,
			}, nil
		}

		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: mnemonic, Size: size, SizeValid: true,
			Operands: [3]Operand{imm, dest}, OperandCount: 2,
		}, nil
	}

	return decodeStaticBit(r, cfg, op, addr)
}

// groupImmediateMnemonic maps the 3-bit group field of the $0xxx immediate
// page to a mnemonic, and reports whether that instruction has a to-CCR/
// to-SR immediate variant (ori/andi/eori do; subi/addi/cmpi don't).
func groupImmediateMnemonic(group uint16) (string, bool) {
	switch group {
	case 0:
		return "ori", true
	case 1:
		return "andi", true
	case 2:
		return "subi", false
	case 3:
		return "addi", false
	case 5:
		return "eori", true
	case 6:
		return "cmpi", false
	default:
		return "", false
	}
}

// decodeStaticBit decodes the static bit-instruction page: 0000 1000 bb
// mmm rrr opcodes whose bit number comes from an immediate extension word
// rather than a data register.
func decodeStaticBit(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	mode := (op >> 3) & 7
	reg := op & 7
	bitOp := (op >> 6) & 3

	bitNum, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	size := SizeLong
	if mode != eaModeDataDirect {
		size = SizeByte
	}
	dest, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	return bitInstruction(bitOp, immediateOperand(SizeByte, int64(bitNum&0xFF)), dest), nil
}

func bitInstruction(bitOp uint16, src, dest Operand) DecodedInstruction {
	names := [...]string{"btst", "bchg", "bclr", "bset"}
	return DecodedInstruction{
		Mnemonic: names[bitOp&3], Size: dest.Size, SizeValid: true,
		Operands: [3]Operand{src, dest}, OperandCount: 2,
	}
}

// decodeRtmCallmChk2Cmp2 decodes the 68020+ reserved-pattern sub-page
// (instruction & 0xf9c0 == 0x00c0): rtm, callm, and the extension-word-keyed
// chk2/cmp2 bounds check, chosen by progressively narrower masks exactly as
// the reference decoder nests them.
func decodeRtmCallmChk2Cmp2(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	switch {
	case op&0xFFF0 == 0x06C0:
		dn := anyRegister(op & 0xF)
		return DecodedInstruction{
			Mnemonic: "rtm", Operands: [3]Operand{registerOperand(SizeLong, dn)}, OperandCount: 1,
		}, nil

	case op&0xFFC0 == 0x06C0:
		argWord, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		arg := immediateOperand(SizeByte, int64(argWord&0xFF))
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeByte, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "callm", Operands: [3]Operand{arg, dest}, OperandCount: 2,
		}, nil

	default:
		size, ok := sizeFieldStd((op >> 9) & 3)
		if !ok {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		mode := (op >> 3) & 7
		reg := op & 7
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		extra, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		mnemonic := "cmp2"
		if extra&0x0800 != 0 {
			mnemonic = "chk2"
		}
		dn := anyRegister((extra >> 12) & 0xF)
		return DecodedInstruction{
			Mnemonic: mnemonic, Size: size, SizeValid: true,
			Operands: [3]Operand{src, registerOperand(size, dn)}, OperandCount: 2,
		}, nil
	}
}

// decodeCas decodes the 68020+ compare-and-swap sub-page (instruction &
// 0xffc0 in {0x0ac0, 0x0cc0, 0x0ec0}): single-operand cas, and cas2 when
// the narrower instruction & 0xf9ff == 0x08fc pattern also matches.
func decodeCas(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	sizeBits := (op >> 9) & 3
	if sizeBits == 0 {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	size, _ := sizeFieldStd(sizeBits - 1)

	if op&0xF9FF == 0x08FC {
		extra1, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		extra2, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		compare := pairOperand(size, dataRegister(extra1&7), dataRegister(extra2&7))
		update := pairOperand(size, dataRegister((extra1>>6)&7), dataRegister((extra2>>6)&7))
		mem := indirectPairOperand(size, anyRegister((extra1>>12)&0xF), anyRegister((extra2>>12)&0xF))
		return DecodedInstruction{
			Mnemonic: "cas2", Size: size, SizeValid: true,
			Operands: [3]Operand{compare, update, mem}, OperandCount: 3,
		}, nil
	}

	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	mode := (op >> 3) & 7
	reg := op & 7
	mem, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	compare := registerOperand(size, dataRegister(extra&7))
	update := registerOperand(size, dataRegister((extra>>6)&7))
	return DecodedInstruction{
		Mnemonic: "cas", Size: size, SizeValid: true,
		Operands: [3]Operand{compare, update, mem}, OperandCount: 3,
	}, nil
}

// decodeMoves decodes the supervisor-only moves (move address space)
// instruction: instruction & 0xff00 == 0x0e00. Extension-word bit 0x0800
// selects the direction (register to address space, or address space to
// register).
func decodeMoves(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	size, ok := sizeFieldStd((op >> 6) & 3)
	if !ok {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	mode := (op >> 3) & 7
	reg := op & 7
	ea, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	regOp := registerOperand(size, anyRegister(extra>>12))

	instr := DecodedInstruction{Mnemonic: "moves", Size: size, SizeValid: true, OperandCount: 2}
	if extra&0x0800 != 0 {
		instr.Operands = [3]Operand{regOp, ea}
	} else {
		instr.Operands = [3]Operand{ea, regOp}
	}
	return instr, nil
}
