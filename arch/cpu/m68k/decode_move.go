package m68k

// decodeMove decodes the $1xxx/$2xxx/$3xxx opcode pages: move and movea.
// Encoding: 00 ss RRR MMM mmm rrr where ss selects size, (MMM,RRR) is the
// destination mode/register and (mmm,rrr) is the source mode/register.
func decodeMove(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	size, ok := sizeField2((op >> 12) & 3)
	if !ok {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}

	srcMode := (op >> 3) & 7
	srcReg := op & 7
	src, err := decodeEffectiveAddress(r, cfg, srcMode, srcReg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}

	destMode := (op >> 6) & 7
	destReg := (op >> 9) & 7
	dest, err := decodeEffectiveAddress(r, cfg, destMode, destReg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}

	mnemonic := "move"
	if destMode == eaModeAddrDirect {
		mnemonic = "movea"
		if size == SizeByte {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
	}

	return DecodedInstruction{
		Mnemonic: mnemonic, Size: size, SizeValid: true,
		Operands: [3]Operand{src, dest}, OperandCount: 2,
	}, nil
}

// decodeMoveq decodes the $7xxx opcode page: moveq #imm,Dn.
func decodeMoveq(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	if op&0x0100 != 0 {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	dn := dataRegister((op >> 9) & 7)
	imm := int64(int8(op & 0xFF))
	return DecodedInstruction{
		Mnemonic: "moveq", Size: SizeLong, SizeValid: true,
		Operands: [3]Operand{immediateOperand(SizeLong, imm), registerOperand(SizeLong, dn)},
		OperandCount: 2,
	}, nil
}
