package m68k

// decodeGroup5 decodes the $5xxx opcode page: addq/subq, and (when the size
// field reads the reserved 11 pattern) Scc and DBcc, which reuse the page.
func decodeGroup5(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	if (op>>6)&3 == 3 {
		cond := Condition((op >> 8) & 0xF)
		mode := (op >> 3) & 7
		reg := op & 7

		if mode == eaModeAddrDirect {
			dn := dataRegister(reg) // DBcc always counts a data register
			disp, ok := r.u16()
			if !ok {
				return DecodedInstruction{}, ErrShortInput
			}
			target := uint32(int64(addr) + 2 + int64(int16(disp)))
			return DecodedInstruction{
				Mnemonic: "db" + cond.String(), Condition: cond,
				Operands:     [3]Operand{registerOperand(SizeWord, dn), absoluteOperand(SizeLong, target, 2)},
				OperandCount: 2,
			}, nil
		}

		dest, err := decodeEffectiveAddress(r, cfg, mode, reg, SizeByte, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "s" + cond.String(), Condition: cond, Size: SizeByte, SizeValid: true,
			Operands: [3]Operand{dest}, OperandCount: 1,
		}, nil
	}

	size, ok := sizeFieldStd((op >> 6) & 3)
	if !ok {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	data := (op >> 9) & 7
	if data == 0 {
		data = 8
	}
	mnemonic := "addq"
	if op&0x0100 != 0 {
		mnemonic = "subq"
	}
	mode := (op >> 3) & 7
	reg := op & 7
	dest, err := decodeEffectiveAddress(r, cfg, mode, reg, size, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	return DecodedInstruction{
		Mnemonic: mnemonic, Size: size, SizeValid: true,
		Operands: [3]Operand{immediateOperand(SizeByte, int64(data)), dest}, OperandCount: 2,
	}, nil
}
