package m68k

import (
	"fmt"
	"strings"
)

// Format renders instr as assembler text. addr is the instruction's address,
// used to format PC-relative operands as resolved absolute addresses rather
// than raw displacements.
func Format(instr DecodedInstruction, addr uint32) string {
	var b strings.Builder
	b.WriteString(instr.Mnemonic)
	if instr.SizeValid {
		b.WriteString(SizeSuffix[instr.Size])
	} else if instr.FPSizeValid {
		b.WriteString(FPSizeSuffix[instr.FPSize])
	}

	for i := 0; i < instr.OperandCount; i++ {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(formatOperand(instr.Operands[i], addr))
	}
	return b.String()
}

func formatOperand(op Operand, addr uint32) string {
	switch op.Kind {
	case OpRegisterDirect, OpFPRegisterDirect:
		return op.Reg.String()

	case OpRegisterDirectPair:
		return op.Reg.String() + ":" + op.Reg2.String()

	case OpRegisterMovemList, OpFPRegisterMovemList:
		return formatRegisterList(op.Regs)

	case OpFPSCRegisterMovemList:
		return formatFPControlList(op.Regs)

	case OpRegisterIndirect:
		return "(" + op.Reg.String() + ")"

	case OpRegisterIndirectPair:
		return "(" + op.Reg.String() + "):(" + op.Reg2.String() + ")"

	case OpRegisterIndirectPostincrement:
		return "(" + op.Reg.String() + ")+"

	case OpRegisterIndirectPredecrement:
		return "-(" + op.Reg.String() + ")"

	case OpRegisterIndirectDisplacement:
		if op.PCRelative {
			return fmt.Sprintf("$%x(pc)", uint32(int64(addr)+2+int64(op.Disp)))
		}
		return fmt.Sprintf("%d(%s)", op.Disp, op.Reg.String())

	case OpRegisterIndirectIndex:
		base := op.Reg.String()
		if op.Reg == NoRegister {
			base = ""
		}
		return fmt.Sprintf("%d(%s,%s)", op.Disp, base, formatIndex(op))

	case OpMemoryIndirectPreindex:
		return fmt.Sprintf("([%d(%s,%s)],%d)", op.Disp, regOrEmpty(op.Reg), formatIndex(op), op.OuterDisp)

	case OpMemoryIndirectPostindex:
		return fmt.Sprintf("([%d(%s)],%s,%d)", op.Disp, regOrEmpty(op.Reg), formatIndex(op), op.OuterDisp)

	case OpAbsolute:
		if op.AddressSize == 2 {
			return fmt.Sprintf("$%x.w", op.Address)
		}
		return fmt.Sprintf("$%x.l", op.Address)

	case OpImmediate:
		return fmt.Sprintf("#%d", op.Value)

	case OpFPImmediate:
		if op.FPText != "" {
			return "#" + op.FPText
		}
		return fmt.Sprintf("#%g", op.FPValue)

	case OpBitField:
		offset := fmt.Sprintf("%d", op.BFOffset)
		if op.BFOffsetIsReg {
			offset = op.BFOffsetReg.String()
		}
		width := fmt.Sprintf("%d", op.BFWidth)
		if op.BFWidthIsReg {
			width = op.BFWidthReg.String()
		}
		return fmt.Sprintf("%s{%s:%s}", formatOperand(*op.BFBase, addr), offset, width)

	default:
		return "?"
	}
}

func regOrEmpty(r Register) string {
	if r == NoRegister {
		return ""
	}
	return r.String()
}

func formatIndex(op Operand) string {
	if op.IndexReg == NoRegister {
		return ""
	}
	suffix := ".w"
	if op.IndexLong {
		suffix = ".l"
	}
	scale := ""
	if op.Scale > 1 {
		scale = fmt.Sprintf("*%d", op.Scale)
	}
	return op.IndexReg.String() + suffix + scale
}

// formatRegisterList renders a movem register list, collapsing contiguous
// runs into "first-last" the way the reference decoder's register list
// formatter does (e.g. "d0-d3/a0/a2-a4" instead of listing every member).
func formatRegisterList(regs []Register) string {
	if len(regs) == 0 {
		return ""
	}
	var parts []string
	start := regs[0]
	prev := regs[0]
	flush := func(end Register) {
		if start == end {
			parts = append(parts, start.String())
		} else {
			parts = append(parts, start.String()+"-"+end.String())
		}
	}
	for _, reg := range regs[1:] {
		if reg == prev+1 {
			prev = reg
			continue
		}
		flush(prev)
		start = reg
		prev = reg
	}
	flush(prev)
	return strings.Join(parts, "/")
}

// formatFPControlList renders an fmovem FP control-register list in the
// fixed fpcr/fpsr/fpiar hardware order regardless of the order registers
// were appended during decode.
func formatFPControlList(regs []Register) string {
	present := map[Register]bool{}
	for _, r := range regs {
		present[r] = true
	}
	var parts []string
	for _, r := range []Register{FPCR, FPSR, FPIAR} {
		if present[r] {
			parts = append(parts, r.String())
		}
	}
	return strings.Join(parts, "/")
}
