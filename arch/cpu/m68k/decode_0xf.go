package m68k

import "math"

// decodeGroupF decodes the $Fxxx opcode page. Only coprocessor ID 1
// (instruction&0xfe00==0xf200, the MC68881/68882/68040 FPU's reserved ID)
// and the MC68040/68060 cache/MMU control instructions (cinv/cpush/pflush)
// are modeled; other coprocessor IDs address coprocessors this package has
// no model of and are reported as an unrecognized encoding, matching the
// reference decoder's own scope (it never implements the general
// coprocessor interface either). $FFxx bit patterns above the modeled
// ranges decode as the F-line illegal trap, same as an unassigned opcode
// on real hardware.
func decodeGroupF(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	switch {
	case op&0xFE00 == 0xF200:
		return decodeFPGeneral(r, cfg, op, addr)
	case op&0xFF20 == 0xF400:
		return DecodedInstruction{Mnemonic: "cinv"}, nil
	case op&0xFF20 == 0xF420:
		return DecodedInstruction{Mnemonic: "cpush"}, nil
	case op&0xFFE0 == 0xF500:
		return DecodedInstruction{Mnemonic: "pflush"}, nil
	case op&0xFF80 == 0xFF80:
		return DecodedInstruction{Mnemonic: "illegal"}, nil
	}
	return DecodedInstruction{}, ErrUnrecognizedEncoding
}

// decodeFPGeneral decodes the FPU sub-page (coprocessor ID 1), dispatching
// on the 3-bit fp_operation_code carried in bits 8-6 of the opcode word:
// general arithmetic/fmove/fmovem (0), FScc/FDBcc/FTRAPcc (1), FBcc (2-3),
// and fsave/frestore (4-5).
func decodeFPGeneral(r *reader, cfg VariantConfig, op uint16, addr uint32) (DecodedInstruction, error) {
	mode := (op >> 3) & 7
	reg := op & 7
	fpOp := (op >> 6) & 7

	switch {
	case fpOp == 0:
		return decodeFPArith(r, cfg, op, mode, reg, addr)

	case fpOp == 1:
		return decodeFPSccDbccTrapcc(r, cfg, op, mode, addr)

	case fpOp&2 == 2:
		return decodeFBcc(r, op, addr)

	case fpOp&4 == 4:
		mnemonic := "fsave"
		if fpOp == 5 {
			mnemonic = "frestore"
		}
		// The state-frame size varies by variant and its layout is opaque
		// to this package; FPSizeExtended only gives the effective-address
		// decoder an operand size, since fsave/frestore lift to a single
		// unimplemented node.
		src, err := decodeFPEffectiveAddress(r, cfg, mode, reg, FPSizeExtended, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{Mnemonic: mnemonic, Operands: [3]Operand{src}, OperandCount: 1}, nil
	}

	return DecodedInstruction{}, ErrUnrecognizedEncoding
}

// decodeFPArith decodes fp_operation_code 0: the dyadic/monadic FP
// arithmetic forms, fmove to <ea>, and the two fmovem forms (FP
// system-control registers, FP data registers), keyed by the extension
// word's top 3 bits (sub_fp_operation_code in the reference decoder).
func decodeFPArith(r *reader, cfg VariantConfig, op uint16, mode, reg uint16, addr uint32) (DecodedInstruction, error) {
	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	sub := extra >> 13

	switch {
	case sub&5 == 0:
		destReg := FP0 + Register((extra>>7)&7)
		srcSpec := (extra >> 10) & 7
		opmode := extra & 0x7f
		rm := (extra >> 14) & 1

		var source Operand
		fpSize := FPSizeRegister
		fpSizeValid := false
		if rm == 0 {
			source = fpRegisterOperand(FP0 + Register(srcSpec))
		} else {
			if srcSpec == 7 {
				// fmovecr (load FP constant ROM): no architecture-neutral
				// encoding for the constant ROM index, left undecoded the
				// same way the reference decoder leaves it (a bare TODO,
				// never reached by its own dispatch).
				return DecodedInstruction{}, ErrUnrecognizedEncoding
			}
			fpSize = FPSize(srcSpec)
			fpSizeValid = true
			var err error
			source, err = decodeFPEffectiveAddress(r, cfg, mode, reg, fpSize, addr)
			if err != nil {
				return DecodedInstruction{}, err
			}
		}
		dest := fpRegisterOperand(destReg)

		if opmode>>3 == 6 {
			// fsincos: dual-result instruction with no single-register IR
			// target; left undecoded like the reference decoder's TODO.
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		instrSig := opmode & 0x3b
		var mnemonic string
		switch {
		case opmode == 4 || opmode&0x63 == 0x41:
			mnemonic = "fsqrt"
		case instrSig == 0x00:
			mnemonic = "fmove"
		case instrSig == 0x18:
			mnemonic = "fabs"
		case instrSig == 0x1a:
			mnemonic = "fneg"
		case instrSig == 0x20:
			mnemonic = "fdiv"
		case instrSig == 0x22:
			mnemonic = "fadd"
		case instrSig == 0x23:
			mnemonic = "fmul"
		case instrSig == 0x28:
			mnemonic = "fsub"
		case instrSig == 0x38:
			mnemonic = "fcmp"
		case instrSig == 0x3a:
			mnemonic = "ftst"
		default:
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		if opmode>>6 != 0 {
			if (opmode>>2)&1 == 1 {
				mnemonic = "fd" + mnemonic[1:]
			} else {
				mnemonic = "fs" + mnemonic[1:]
			}
		}

		if mnemonic == "ftst" {
			return DecodedInstruction{
				Mnemonic: mnemonic, FPSize: fpSize, FPSizeValid: fpSizeValid,
				Operands: [3]Operand{source}, OperandCount: 1,
			}, nil
		}
		return DecodedInstruction{
			Mnemonic: mnemonic, FPSize: fpSize, FPSizeValid: fpSizeValid,
			Operands: [3]Operand{source, dest}, OperandCount: 2,
		}, nil

	case sub == 3:
		srcReg := FP0 + Register((extra>>7)&7)
		source := fpRegisterOperand(srcReg)
		fpSize := FPSize((extra >> 10) & 7)
		dest, err := decodeFPEffectiveAddress(r, cfg, mode, reg, fpSize, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		return DecodedInstruction{
			Mnemonic: "fmove", FPSize: fpSize, FPSizeValid: true,
			Operands: [3]Operand{source, dest}, OperandCount: 2,
		}, nil

	case sub&6 == 4:
		ea, err := decodeFPEffectiveAddress(r, cfg, mode, reg, FPSizeSCRegister, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		fpscr := (extra >> 10) & 7

		var mnemonic string
		var dest Operand
		switch fpscr {
		case uint16(FPIARBit):
			mnemonic = "fmove"
			dest = registerOperand(SizeLong, FPIAR)
		case uint16(FPSRBit):
			mnemonic = "fmove"
			dest = registerOperand(SizeLong, FPSR)
		case uint16(FPCRBit):
			mnemonic = "fmove"
			dest = registerOperand(SizeLong, FPCR)
		default:
			mnemonic = "fmovem"
			var regs []Register
			if fpscr&uint16(FPCRBit) != 0 {
				regs = append(regs, FPCR)
			}
			if fpscr&uint16(FPSRBit) != 0 {
				regs = append(regs, FPSR)
			}
			if fpscr&uint16(FPIARBit) != 0 {
				regs = append(regs, FPIAR)
			}
			dest = fpControlListOperand(regs)
		}

		source := ea
		if (extra>>13)&1 != 0 {
			source, dest = dest, source
		}
		return DecodedInstruction{
			Mnemonic: mnemonic, FPSize: FPSizeSCRegister, FPSizeValid: true,
			Operands: [3]Operand{source, dest}, OperandCount: 2,
		}, nil

	case sub&6 == 6:
		ea, err := decodeFPEffectiveAddress(r, cfg, mode, reg, FPSizeExtended, addr)
		if err != nil {
			return DecodedInstruction{}, err
		}
		modeField := (extra >> 11) & 3

		var dest Operand
		if modeField == 0 || modeField == 2 {
			regList := extra & 0xFF
			var regs []Register
			for i := 0; i < 8; i++ {
				bit := uint16(1) << uint(i)
				if modeField != 0 {
					bit = uint16(1) << uint(7-i)
				}
				if regList&bit != 0 {
					regs = append(regs, FP0+Register(i))
				}
			}
			dest = fpRegisterListOperand(regs)
		} else {
			dest = registerOperand(SizeByte, dataRegister((extra>>4)&7))
		}

		source := ea
		if (extra>>13)&1 != 0 {
			source, dest = dest, source
		}
		return DecodedInstruction{
			Mnemonic: "fmovem", FPSize: FPSizeExtended, FPSizeValid: true,
			Operands: [3]Operand{source, dest}, OperandCount: 2,
		}, nil
	}

	return DecodedInstruction{}, ErrUnrecognizedEncoding
}

// decodeFPSccDbccTrapcc decodes fp_operation_code 1: FDBcc (mode field 1,
// not modeled, same as the reference decoder's TODO), FTRAPcc (mode 7,
// register field > 1), and FScc (every other mode/register combination).
func decodeFPSccDbccTrapcc(r *reader, cfg VariantConfig, op uint16, mode uint16, addr uint32) (DecodedInstruction, error) {
	extra, ok := r.u16()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	trapModeField := op & 7

	if mode == 1 {
		// FDBcc: left undecoded, same as the reference decoder's TODO.
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}

	if mode == 7 && trapModeField > 1 {
		condition := extra & 0x3f
		if int(condition) >= len(fpConditionNames) {
			return DecodedInstruction{}, ErrUnrecognizedEncoding
		}
		mnemonic := "ftrap" + FPCondition(condition).String()
		instr := DecodedInstruction{Mnemonic: mnemonic, FPCondition: FPCondition(condition), HasFPCondition: true}
		if trapModeField&2 == 2 {
			fpSize := FPSizeLong
			if trapModeField == 2 {
				fpSize = FPSizeWord
			}
			dest, err := decodeFPEffectiveAddress(r, cfg, mode, 4, fpSize, addr)
			if err != nil {
				return DecodedInstruction{}, err
			}
			instr.Operands = [3]Operand{dest}
			instr.OperandCount = 1
		}
		return instr, nil
	}

	condition := extra & 0x3f
	if int(condition) >= len(fpConditionNames) {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	mnemonic := "fs" + FPCondition(condition).String()
	dest, err := decodeFPEffectiveAddress(r, cfg, mode, op&7, FPSizeByte, addr)
	if err != nil {
		return DecodedInstruction{}, err
	}
	return DecodedInstruction{
		Mnemonic: mnemonic, FPCondition: FPCondition(condition), HasFPCondition: true,
		FPSize: FPSizeByte, FPSizeValid: true,
		Operands: [3]Operand{dest}, OperandCount: 1,
	}, nil
}

// decodeFBcc decodes fp_operation_code 2-3: a 16- or 32-bit PC-relative FP
// conditional branch, resolved to an absolute target the same way bra/bcc/
// dbcc are.
func decodeFBcc(r *reader, op uint16, addr uint32) (DecodedInstruction, error) {
	condition := op & 0x3f
	if int(condition) >= len(fpConditionNames) {
		return DecodedInstruction{}, ErrUnrecognizedEncoding
	}
	mnemonic := "fb" + FPCondition(condition).String()

	// The displacement width is selected by fp_operation_code's low bit
	// (bit 6 of the opcode word, 2=word/3=long), not the condition field's
	// own low bit (bit 0) which happens to share the byte.
	if (op>>6)&1 == 0 {
		disp, ok := r.u16()
		if !ok {
			return DecodedInstruction{}, ErrShortInput
		}
		target := uint32(int64(addr) + 2 + int64(int16(disp)))
		return DecodedInstruction{
			Mnemonic: mnemonic, FPCondition: FPCondition(condition), HasFPCondition: true,
			Operands: [3]Operand{absoluteOperand(SizeLong, target, 2)}, OperandCount: 1,
		}, nil
	}

	disp, ok := r.u32()
	if !ok {
		return DecodedInstruction{}, ErrShortInput
	}
	target := uint32(int64(addr) + 2 + int64(int32(disp)))
	return DecodedInstruction{
		Mnemonic: mnemonic, FPCondition: FPCondition(condition), HasFPCondition: true,
		Operands: [3]Operand{absoluteOperand(SizeLong, target, 4)}, OperandCount: 1,
	}, nil
}

// fpAddressingSize picks the integer Size nearest to an FPSize's byte width,
// used only to drive decodeEffectiveAddress's register-stride arithmetic for
// the addressing modes shared between integer and FP instructions (the
// precise FP width is recorded separately as the instruction's FPSize).
func fpAddressingSize(size FPSize) Size {
	switch size {
	case FPSizeByte:
		return SizeByte
	case FPSizeWord:
		return SizeWord
	default:
		return SizeLong
	}
}

// decodeFPEffectiveAddress decodes an effective address in FP context: every
// mode but the immediate form defers to decodeEffectiveAddress (an FP
// instruction's register/memory addressing works exactly like an integer
// instruction's), while the immediate form reads the FP-format-specific
// encoded width and builds an OpFPImmediate operand.
func decodeFPEffectiveAddress(r *reader, cfg VariantConfig, mode, reg uint16, fpsize FPSize, addr uint32) (Operand, error) {
	if mode == eaModeOther && reg == eaOtherImmediate {
		return decodeFPImmediate(r, fpsize)
	}
	return decodeEffectiveAddress(r, cfg, mode, reg, fpAddressingSize(fpsize), addr)
}

// decodeFPImmediate reads an FP immediate of the encoded width fpsize names.
// FPRaw keeps the untouched encoded bytes so nothing is lost even where
// FPValue's float64 can't represent the source format exactly (extended
// precision) or isn't numeric at all (packed BCD, which decodes to FPText
// instead).
func decodeFPImmediate(r *reader, fpsize FPSize) (Operand, error) {
	n := FPActualSize[fpsize]
	raw, ok := r.bytes(n)
	if !ok {
		return Operand{}, ErrShortInput
	}
	op := Operand{Kind: OpFPImmediate, Size: SizeLong, FPRaw: raw, IndexReg: NoRegister}

	switch fpsize {
	case FPSizeSingle:
		bits := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
		op.FPValue = float64(math.Float32frombits(bits))
	case FPSizeDouble:
		var bits uint64
		for _, b := range raw {
			bits = bits<<8 | uint64(b)
		}
		op.FPValue = math.Float64frombits(bits)
	case FPSizeExtended:
		op.FPValue = decodeExtended80(raw)
	case FPSizePacked, FPSizePackedDynamic:
		op.FPText = decodePackedBCD(raw)
	case FPSizeWord:
		op.Size = SizeWord
		op.FPValue = float64(int16(uint16(raw[0])<<8 | uint16(raw[1])))
	case FPSizeLong:
		op.Size = SizeLong
		v := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
		op.FPValue = float64(int32(v))
	case FPSizeByte:
		op.Size = SizeByte
		op.FPValue = float64(int8(raw[0]))
	}
	return op, nil
}

// decodeExtended80 approximates the 80-bit extended-precision value stored
// in a 96-bit (12-byte) memory slot: 1 sign bit + 15-bit biased exponent, 16
// reserved bits, then a 64-bit explicit mantissa (no implicit leading bit,
// unlike IEEE formats). float64 can't represent the full range or precision
// losslessly; FPRaw carries the exact bytes for callers that need them.
func decodeExtended80(raw []byte) float64 {
	signExp := uint16(raw[0])<<8 | uint16(raw[1])
	exponent := int(signExp & 0x7FFF)
	var mantissa uint64
	for _, b := range raw[4:12] {
		mantissa = mantissa<<8 | uint64(b)
	}
	if exponent == 0 && mantissa == 0 {
		return 0
	}
	value := float64(mantissa) / float64(1<<63) * math.Pow(2, float64(exponent-16383))
	if signExp&0x8000 != 0 {
		value = -value
	}
	return value
}

// decodePackedBCD renders the packed-decimal FP immediate format (a sign,
// 3-BCD-digit exponent with its own sign, and a 17-BCD-digit mantissa) as
// decimal text, since the format's precision doesn't round-trip through a
// float64.
func decodePackedBCD(raw []byte) string {
	word0 := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	mantissaNeg := word0>>31 != 0
	exponentNeg := (word0>>30)&1 != 0
	exponent := (word0 >> 16) & 0xFFF

	out := make([]byte, 0, 24)
	if mantissaNeg {
		out = append(out, '-')
	}
	out = append(out, bcdDigit(word0&0xF))
	out = append(out, '.')
	for _, b := range raw[4:12] {
		out = append(out, bcdDigit(uint32(b>>4)), bcdDigit(uint32(b&0xF)))
	}
	out = append(out, 'e')
	if exponentNeg {
		out = append(out, '-')
	}
	out = append(out, bcdDigit((exponent>>8)&0xF), bcdDigit((exponent>>4)&0xF), bcdDigit(exponent&0xF))
	return string(out)
}

func bcdDigit(nibble uint32) byte {
	if nibble > 9 {
		return '?'
	}
	return byte('0' + nibble)
}
