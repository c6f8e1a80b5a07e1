package m68k

// Condition identifies one of the 16 hardware condition-code tests used by
// Bcc, DBcc, Scc, and TRAPcc.
type Condition uint8

// Condition code values, in their hardware bit-field order.
const (
	ConditionTrue Condition = iota
	ConditionFalse
	ConditionHigh
	ConditionLessOrSame
	ConditionCarryClear
	ConditionCarrySet
	ConditionNotEqual
	ConditionEqual
	ConditionOverflowClear
	ConditionOverflowSet
	ConditionPlus
	ConditionMinus
	ConditionGreaterOrEqual
	ConditionLessThan
	ConditionGreaterThan
	ConditionLessOrEqual
)

// conditionNames holds the two-letter mnemonic suffix for each Condition.
var conditionNames = [...]string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
}

// String returns the mnemonic suffix (e.g. "eq", "ge") for the condition.
func (c Condition) String() string {
	if int(c) >= len(conditionNames) {
		return "?"
	}
	return conditionNames[c]
}

// FlagCondition identifies the IL builder's condition-flag test enumeration
// that a Condition lowers to. Names mirror the unsigned/signed compare and
// single-flag tests a host IR builder is expected to support (see the IL
// interface's FlagCondition method).
type FlagCondition int

// Flag-condition tests available to the lifter.
const (
	FlagConditionUGT FlagCondition = iota
	FlagConditionULE
	FlagConditionUGE
	FlagConditionULT
	FlagConditionNE
	FlagConditionE
	FlagConditionNO // overflow clear
	FlagConditionO  // overflow set
	FlagConditionPositive
	FlagConditionNegative
	FlagConditionSGE
	FlagConditionSLT
	FlagConditionSGT
	FlagConditionSLE
)

// conditionToFlagCondition maps every condition except Always/Never (which
// the caller must special-case as constant true/false, matching the
// reference decoder's handling of 't'/'f') to the flag-condition test that
// implements it.
var conditionToFlagCondition = map[Condition]FlagCondition{
	ConditionHigh:           FlagConditionUGT,
	ConditionLessOrSame:     FlagConditionULE,
	ConditionCarryClear:     FlagConditionUGE,
	ConditionCarrySet:       FlagConditionULT,
	ConditionNotEqual:       FlagConditionNE,
	ConditionEqual:          FlagConditionE,
	ConditionOverflowClear:  FlagConditionNO,
	ConditionOverflowSet:    FlagConditionO,
	ConditionPlus:           FlagConditionPositive,
	ConditionMinus:          FlagConditionNegative,
	ConditionGreaterOrEqual: FlagConditionSGE,
	ConditionLessThan:       FlagConditionSLT,
	ConditionGreaterThan:    FlagConditionSGT,
	ConditionLessOrEqual:    FlagConditionSLE,
}

// ToFlagCondition returns the flag-condition test for c and true, or false if
// c is ConditionTrue/ConditionFalse (which the caller must model as a
// constant instead of a flag test).
func (c Condition) ToFlagCondition() (FlagCondition, bool) {
	fc, ok := conditionToFlagCondition[c]
	return fc, ok
}

// FPCondition identifies one of the 32 FP condition-predicate tests used by
// FBcc, FScc, and FTRAPcc, indexed by the 6-bit predicate field (only the
// low 5 bits are used; bit 4 selects the signaling variant, which this
// table folds into distinct names as the hardware manual does).
type FPCondition uint8

var fpConditionNames = [...]string{
	"f", "eq", "ogt", "oge", "olt", "ole", "ogl", "or",
	"un", "ueq", "ugt", "uge", "ult", "ule", "ne", "t",
	"sf", "seq", "gt", "ge", "lt", "le", "gl", "gle",
	"ngle", "ngl", "nle", "nlt", "nge", "ngt", "sne", "st",
}

// String returns the FP condition mnemonic suffix for p.
func (p FPCondition) String() string {
	if int(p) >= len(fpConditionNames) {
		return "?"
	}
	return fpConditionNames[p]
}
