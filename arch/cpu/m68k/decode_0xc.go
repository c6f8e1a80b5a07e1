package m68k

// decodeAndMul decodes the $Cxxx opcode page: and, mulu, muls, abcd, and
// exg.
func decodeAndMul(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	switch op & 0xF1F8 {
	case 0xC140:
		x := dataRegister((op >> 9) & 7)
		y := dataRegister(op & 7)
		return exgInstruction(x, y), nil
	case 0xC148:
		x := addressRegister((op >> 9) & 7)
		y := addressRegister(op & 7)
		return exgInstruction(x, y), nil
	}
	if op&0xF1F8 == 0xC188 {
		x := dataRegister((op >> 9) & 7)
		y := addressRegister(op & 7)
		return exgInstruction(x, y), nil
	}

	dn := dataRegister((op >> 9) & 7)
	opMode := (op >> 6) & 7
	mode := (op >> 3) & 7
	reg := op & 7

	if opMode == 3 {
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "mulu", Size: SizeWord, SizeValid: true, Operands: [3]Operand{src, registerOperand(SizeLong, dn)}, OperandCount: 2}, nil
	}
	if opMode == 7 {
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: "muls", Size: SizeWord, SizeValid: true, Operands: [3]Operand{src, registerOperand(SizeLong, dn)}, OperandCount: 2}, nil
	}
	if opMode == 4 {
		if mode == eaModeDataDirect {
			dy := dataRegister(reg)
			return DecodedInstruction{Mnemonic: "abcd", Size: SizeByte, SizeValid: true, Operands: [3]Operand{registerOperand(SizeByte, dy), registerOperand(SizeByte, dn)}, OperandCount: 2}, nil
		}
		if mode == eaModeIndirectPredec {
			ay := addressRegister(reg)
			an := addressRegister((op >> 9) & 7)
			src := Operand{Kind: OpRegisterIndirectPredecrement, Size: SizeByte, Reg: ay, IndexReg: NoRegister}
			dest := Operand{Kind: OpRegisterIndirectPredecrement, Size: SizeByte, Reg: an, IndexReg: NoRegister}
			return DecodedInstruction{Mnemonic: "abcd", Size: SizeByte, SizeValid: true, Operands: [3]Operand{src, dest}, OperandCount: 2}, nil
		}
	}

	size, ok := sizeFieldStd(opMode & 3)
	if !ok {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	ea, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	if opMode&4 != 0 {
		return DecodedInstruction{Mnemonic: "and", Size: size, SizeValid: true, Operands: [3]Operand{registerOperand(size, dn), ea}, OperandCount: 2}, nil
	}
	return DecodedInstruction{Mnemonic: "and", Size: size, SizeValid: true, Operands: [3]Operand{ea, registerOperand(size, dn)}, OperandCount: 2}, nil
}

func exgInstruction(x, y Register) DecodedInstruction {
	return DecodedInstruction{
		Mnemonic: "exg", Size: SizeLong, SizeValid: true,
		Operands: [3]Operand{registerOperand(SizeLong, x), registerOperand(SizeLong, y)}, OperandCount: 2,
	}
}
