package m68k

// DecodedInstruction is the result of decoding one instruction: its
// mnemonic, operand size, up to three operands, and total encoded length.
type DecodedInstruction struct {
	// Mnemonic is the instruction name without size suffix; conditional
	// forms include their condition, e.g. "move", "add", "beq".
	Mnemonic string
	// Condition is the branch/set/trap condition for Bcc/DBcc/Scc/TRAPcc;
	// zero value ConditionTrue for instructions without a condition field.
	// FP conditional forms use FPCondition instead.
	Condition Condition
	// FPCondition is the FP predicate for FBcc/FScc/FTRAPcc/FDBcc.
	FPCondition FPCondition
	// HasFPCondition reports whether FPCondition is meaningful.
	HasFPCondition bool

	// Size is the operand size, meaningful when SizeValid is true.
	Size Size
	// SizeValid reports whether Size applies to this instruction (some
	// instructions, e.g. reset, nop, rts, have no operand size).
	SizeValid bool
	// FPSize is the FP operand format, meaningful when FPSizeValid is true.
	FPSize FPSize
	// FPSizeValid reports whether FPSize applies.
	FPSizeValid bool

	// Operands holds up to three operands in source-first order. Unused
	// slots have Kind's zero value and must be ignored past OperandCount.
	Operands [3]Operand
	// OperandCount is the number of valid entries in Operands.
	OperandCount int

	// Length is the total encoded instruction length in bytes, including
	// the opcode word and every extension word consumed.
	Length int
}
