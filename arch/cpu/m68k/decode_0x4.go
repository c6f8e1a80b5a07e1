package m68k

// decodeGroup4 decodes the $4xxx opcode page: the miscellaneous group
// covering lea, pea, clr/neg/negx/not, move from/to sr/ccr, ext/extb/swap,
// link/unlk, nbcd, tas, chk, jmp/jsr, movem, and the no-operand control
// instructions (nop/rts/rtd/rte/rtr/trapv/reset/stop/illegal) plus trap
// and the 68020+ long multiply/divide forms (muls.l/mulu.l register-pair
// product, divs/divu/divsl/divul register-pair dividend/remainder).
func decodeGroup4(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	switch {
	case op == 0x4E71:
		return noOperand("nop"), nil
	case op == 0x4E70:
		return noOperand("reset"), nil
	case op == 0x4E73:
		return noOperand("rte"), nil
	case op == 0x4E75:
		return noOperand("rts"), nil
	case op == 0x4E76:
		return noOperand("trapv"), nil
	case op == 0x4E77:
		return noOperand("rtr"), nil
	case op == 0x4AFC:
		return noOperand("illegal"), nil
	case op == 0x4E72:
		imm, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		return DecodedInstruction{Mnemonic: "stop", Operands: [3]Operand{immediateOperand(SizeWord, int64(imm))}, OperandCount: 1}, nil
	case op == 0x4E74:
		disp, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		return DecodedInstruction{Mnemonic: "rtd", Operands: [3]Operand{immediateOperand(SizeWord, int64(int16(disp)))}, OperandCount: 1}, nil
	}

	if op&0xFFF0 == 0x4E40 {
		return DecodedInstruction{
			Mnemonic: "trap", Operands: [3]Operand{immediateOperand(SizeByte, int64(op & 0xF))}, OperandCount: 1,
		}, nil
	}

	if op&0xFFF8 == 0x4E50 {
		an := addressRegister(op & 7)
		disp, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		return DecodedInstruction{
			Mnemonic: "link", Size: SizeWord, SizeValid: true,
			Operands: [3]Operand{registerOperand(SizeLong, an), immediateOperand(SizeWord, int64(int16(disp)))},
			OperandCount: 2,
		}, nil
	}
	if op&0xFFF8 == 0x4E58 {
		an := addressRegister(op & 7)
		return DecodedInstruction{Mnemonic: "unlk", Operands: [3]Operand{registerOperand(SizeLong, an)}, OperandCount: 1}, nil
	}

	if op&0xFFF8 == 0x4840 {
		dn := dataRegister(op & 7)
		return DecodedInstruction{Mnemonic: "swap", Size: SizeLong, SizeValid: true, Operands: [3]Operand{registerOperand(SizeLong, dn)}, OperandCount: 1}, nil
	}

	if op&0xFFC0 == 0x4840 {
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "pea", Operands: [3]Operand{dest}, OperandCount: 1}, nil
	}

	if op&0xFFC0 == 0x4800 {
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeByte, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "nbcd", Size: SizeByte, SizeValid: true, Operands: [3]Operand{dest}, OperandCount: 1}, nil
	}

	if op&0xFFC0 == 0x4AC0 {
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeByte, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "tas", Size: SizeByte, SizeValid: true, Operands: [3]Operand{dest}, OperandCount: 1}, nil
	}

	if op&0xFFB8 == 0x4880 {
		// ext.w (0100100010000rrr) / ext.l (0100100011000rrr).
		isLong := op&0x0040 != 0
		dn := dataRegister(op & 7)
		size := SizeWord
		if isLong {
			size = SizeLong
		}
		return DecodedInstruction{Mnemonic: "ext", Size: size, SizeValid: true, Operands: [3]Operand{registerOperand(SizeLong, dn)}, OperandCount: 1}, nil
	}
	if op&0xFFF8 == 0x49C0 {
		dn := dataRegister(op & 7)
		return DecodedInstruction{Mnemonic: "extb", Size: SizeLong, SizeValid: true, Operands: [3]Operand{registerOperand(SizeLong, dn)}, OperandCount: 1}, nil
	}

	if op&0xFB80 == 0x4880 {
		load := op&0x0400 != 0
		long := op&0x0040 != 0
		size := SizeWord
		if long {
			size = SizeLong
		}
		list, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		mode := (op >> 3) & 7
		reg := op & 7

		regs := movemRegisterList(list, mode == eaModeIndirectPredec)
		listOperand := Operand{Kind: OpRegisterMovemList, Size: size, Regs: regs}

		ea, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}

		instr := DecodedInstruction{Mnemonic: "movem", Size: size, SizeValid: true, OperandCount: 2}
		if load {
			instr.Operands = [3]Operand{ea, listOperand}
		} else {
			instr.Operands = [3]Operand{listOperand, ea}
		}
		return instr, nil
	}

	if op&0xF1C0 == 0x41C0 {
		an := addressRegister((op >> 9) & 7)
		mode := (op >> 3) & 7
		reg := op & 7
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "lea", Operands: [3]Operand{src, registerOperand(SizeLong, an)}, OperandCount: 2}, nil
	}

	if op&0xF1C0 == 0x4180 {
		dn := dataRegister((op >> 9) & 7)
		mode := (op >> 3) & 7
		reg := op & 7
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "chk", Size: SizeWord, SizeValid: true,
			Operands: [3]Operand{src, registerOperand(SizeLong, dn)}, OperandCount: 2,
		}, nil
	}

	if op&0xFFC0 == 0x40C0 {
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "move", Size: SizeWord, SizeValid: true, Operands: [3]Operand{registerOperand(SizeWord, SR), dest}, OperandCount: 2}, nil
	}
	if op&0xFFC0 == 0x44C0 {
		mode := (op >> 3) & 7
		reg := op & 7
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "move", Size: SizeWord, SizeValid: true, Operands: [3]Operand{src, registerOperand(SizeWord, CCR)}, OperandCount: 2}, nil
	}
	if op&0xFFC0 == 0x46C0 {
		mode := (op >> 3) & 7
		reg := op & 7
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "move", Size: SizeWord, SizeValid: true, Operands: [3]Operand{src, registerOperand(SizeWord, SR)}, OperandCount: 2}, nil
	}

	if op&0xFF00 == 0x4000 || op&0xFF00 == 0x4200 || op&0xFF00 == 0x4400 || op&0xFF00 == 0x4600 {
		size, ok := sizeFieldStd((op >> 6) & 3)
		if !ok {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		mode := (op >> 3) & 7
		reg := op & 7
		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		var mnemonic string
		switch op & 0xFF00 {
		case 0x4000:
			mnemonic = "negx"
		case 0x4200:
			mnemonic = "clr"
		case 0x4400:
			mnemonic = "neg"
		case 0x4600:
			mnemonic = "not"
		}
		return DecodedInstruction{Mnemonic: mnemonic, Size: size, SizeValid: true, Operands: [3]Operand{dest}, OperandCount: 1}, nil
	}

	if op&0xFFC0 == 0x4EC0 {
		mode := (op >> 3) & 7
		reg := op & 7
		target, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "jmp", Operands: [3]Operand{target}, OperandCount: 1}, nil
	}
	if op&0xFFC0 == 0x4E80 {
		mode := (op >> 3) & 7
		reg := op & 7
		target, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "jsr", Operands: [3]Operand{target}, OperandCount: 1}, nil
	}

	if op&0xFF00 == 0x4C00 {
		return decodeLongMulDiv(r, cfg, op, addr)
	}

	return DecodedInstruction{}, ErrUnrecognizedEncoding
}

// decodeLongMulDiv decodes the 68020+ $4Cxx page: 32x32->32/64 muls/mulu
// and 32/32, 64/32, and 64-bit-dividend divs/divu/divsl/divul, each keyed
// off an extension word following the effective-address operand. Bits
// 0-2 of the extension word name the "dh" register, bits 12-14 name "dl";
// bit 0x0040 of the opcode word selects divide over multiply, extension
// bit 0x0800 selects signed over unsigned, and extension bit 0x0400
// selects the register-pair destination over the plain single register.
func decodeLongMulDiv(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	mode := (op >> 3) & 7
	reg := op & 7
	src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeLong, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}

	dh := dataRegister(extra & 7)
	dl := dataRegister((extra >> 12) & 7)
	dest := registerOperand(SizeLong, dl)

	var mnemonic string
	if op&0x0040 != 0 {
		if extra&0x0800 != 0 {
			mnemonic = "divs"
		} else {
			mnemonic = "divu"
		}
		switch {
		case extra&0x0400 != 0:
			dest = pairOperand(SizeLong, dh, dl)
		case dh != dl:
			dest = pairOperand(SizeLong, dh, dl)
			mnemonic += "l"
		}
	} else {
		if extra&0x0800 != 0 {
			mnemonic = "muls"
		} else {
			mnemonic = "mulu"
		}
		if extra&0x0400 != 0 {
			dest = pairOperand(SizeLong, dh, dl)
		}
	}

	return DecodedInstruction{
		Mnemonic: mnemonic, Size: SizeLong, SizeValid: true,
		Operands: [3]Operand{src, dest}, OperandCount: 2,
	}, nil
}

func noOperand(mnemonic string) DecodedInstruction {
	return DecodedInstruction{Mnemonic: mnemonic}
}

// movemRegisterList expands a movem 16-bit register mask into an ordered
// Regs slice. The mask's bit order is reversed for the predecrement
// addressing mode relative to every other mode, matching the hardware's
// asymmetric movem encoding.
func movemRegisterList(mask uint16, predecrement bool) []Register {
	var regs []Register
	if predecrement {
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) != 0 {
				regs = append(regs, SP-Register(i))
			}
		}
	} else {
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) != 0 {
				regs = append(regs, D0+Register(i))
			}
		}
	}
	return regs
}
