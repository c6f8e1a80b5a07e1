package m68k

// decodeCmpEor decodes the $Bxxx opcode page: cmp, cmpa, cmpm, and eor.
func decodeCmpEor(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	dn := dataRegister((op >> 9) & 7)
	opMode := (op >> 6) & 7
	mode := (op >> 3) & 7
	reg := op & 7

	if opMode == 3 || opMode == 7 {
		size := SizeWord
		if opMode == 7 {
			size = SizeLong
		}
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		an := addressRegister((op >> 9) & 7)
		return DecodedInstruction{
			Mnemonic: "cmpa", Size: size, SizeValid: true,
			Operands: [3]Operand{src, registerOperand(SizeLong, an)}, OperandCount: 2,
		}, nil
	}

	if opMode&4 != 0 && mode == eaModeIndirectPostinc {
		size, ok := sizeFieldStd(opMode & 3)
		if !ok {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		src := Operand{Kind: OpRegisterIndirectPostincrement, Size: size, Reg: addressRegister(reg), IndexReg: NoRegister}
		dest := Operand{Kind: OpRegisterIndirectPostincrement, Size: size, Reg: addressRegister((op >> 9) & 7), IndexReg: NoRegister}
		return DecodedInstruction{Mnemonic: "cmpm", Size: size, SizeValid: true, Operands: [3]Operand{src, dest}, OperandCount: 2}, nil
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
		return DecodedInstruction{Mnemonic: "eor", Size: size, SizeValid: true, Operands: [3]Operand{registerOperand(size, dn), ea}, OperandCount: 2}, nil
	}
	return DecodedInstruction{Mnemonic: "cmp", Size: size, SizeValid: true, Operands: [3]Operand{ea, registerOperand(size, dn)}, OperandCount: 2}, nil
}
