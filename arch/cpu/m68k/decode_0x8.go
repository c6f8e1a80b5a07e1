package m68k

// decodeOrDiv decodes the $8xxx opcode page: or, divu, divs, and sbcd.
func decodeOrDiv(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	dn := dataRegister((op >> 9) & 7)
	opMode := (op >> 6) & 7
	mode := (op >> 3) & 7
	reg := op & 7

	switch opMode {
	case 3: // divu.w <ea>,Dn
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "divu", Size: SizeWord, SizeValid: true,
			Operands: [3]Operand{src, registerOperand(SizeLong, dn)}, OperandCount: 2,
		}, nil
	case 7: // divs.w <ea>,Dn
		src, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeWord, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "divs", Size: SizeWord, SizeValid: true,
			Operands: [3]Operand{src, registerOperand(SizeLong, dn)}, OperandCount: 2,
		}, nil
	case 4:
		if mode == eaModeDataDirect {
			dy := dataRegister(reg)
			return DecodedInstruction{
				Mnemonic: "sbcd", Size: SizeByte, SizeValid: true,
				Operands: [3]Operand{registerOperand(SizeByte, dy), registerOperand(SizeByte, dn)}, OperandCount: 2,
			}, nil
		}
		if mode == eaModeIndirectPredec {
			ay := addressRegister(reg)
			an := addressRegister((op >> 9) & 7)
			src := Operand{Kind: OpRegisterIndirectPredecrement, Size: SizeByte, Reg: ay, IndexReg: NoRegister}
			dest := Operand{Kind: OpRegisterIndirectPredecrement, Size: SizeByte, Reg: an, IndexReg: NoRegister}
			return DecodedInstruction{Mnemonic: "sbcd", Size: SizeByte, SizeValid: true, Operands: [3]Operand{src, dest}, OperandCount: 2}, nil
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
		return DecodedInstruction{Mnemonic: "or", Size: size, SizeValid: true, Operands: [3]Operand{registerOperand(size, dn), ea}, OperandCount: 2}, nil
	}
	return DecodedInstruction{Mnemonic: "or", Size: size, SizeValid: true, Operands: [3]Operand{ea, registerOperand(size, dn)}, OperandCount: 2}, nil
}
