package m68k

import "encoding/binary"

// PatchNop overwrites the bytes of a previously decoded instruction with
// nop instructions (0x4E71), returning a new slice the same length as
// instr.Length. It never mutates the input.
func PatchNop(instr DecodedInstruction) []byte {
	out := make([]byte, instr.Length)
	for i := 0; i+1 < len(out); i += 2 {
		binary.BigEndian.PutUint16(out[i:], 0x4E71)
	}
	if len(out)%2 == 1 {
		out[len(out)-1] = 0
	}
	return out
}

// PatchInvertBranch returns a patched copy of a conditional branch
// instruction's encoding with its condition complemented (e.g. beq becomes
// bne), preserving displacement size and value. It returns ok=false for
// any instruction that is not a two-byte-condition-field conditional
// branch (bra/bsr, whose condition field is not a true hardware test, are
// rejected).
func PatchInvertBranch(data []byte, instr DecodedInstruction) ([]byte, bool) {
	if instr.Length < 2 || instr.Condition == ConditionTrue || instr.Condition == ConditionFalse {
		return nil, false
	}
	if len(instr.Mnemonic) != 3 || instr.Mnemonic[0] != 'b' {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	op := binary.BigEndian.Uint16(out[0:2])
	inverted := invertCondition(instr.Condition)
	op = (op &^ 0x0F00) | (uint16(inverted) << 8)
	binary.BigEndian.PutUint16(out[0:2], op)
	return out, true
}

// invertCondition returns the logical complement of a hardware condition
// (eq<->ne, lt<->ge, and so on), following the fixed pairing the 16
// condition-code values are defined in.
func invertCondition(c Condition) Condition {
	pairs := map[Condition]Condition{
		ConditionHigh: ConditionLessOrSame, ConditionLessOrSame: ConditionHigh,
		ConditionCarryClear: ConditionCarrySet, ConditionCarrySet: ConditionCarryClear,
		ConditionNotEqual: ConditionEqual, ConditionEqual: ConditionNotEqual,
		ConditionOverflowClear: ConditionOverflowSet, ConditionOverflowSet: ConditionOverflowClear,
		ConditionPlus: ConditionMinus, ConditionMinus: ConditionPlus,
		ConditionGreaterOrEqual: ConditionLessThan, ConditionLessThan: ConditionGreaterOrEqual,
		ConditionGreaterThan: ConditionLessOrEqual, ConditionLessOrEqual: ConditionGreaterThan,
	}
	if inv, ok := pairs[c]; ok {
		return inv
	}
	return c
}

// PatchAlwaysBranch returns a patched copy of a conditional branch
// instruction's encoding with its condition forced to always-taken (bra),
// preserving displacement size and value.
func PatchAlwaysBranch(data []byte, instr DecodedInstruction) ([]byte, bool) {
	if instr.Length < 2 {
		return nil, false
	}
	if len(instr.Mnemonic) != 3 || instr.Mnemonic[0] != 'b' {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	op := binary.BigEndian.Uint16(out[0:2])
	op &^= 0x0F00 // ConditionTrue == 0
	binary.BigEndian.PutUint16(out[0:2], op)
	return out, true
}

// PatchSkipAndReturnValue patches a function's entry point so it
// unconditionally returns value, by overwriting the first instructions
// with "moveq #value,d0" followed by rts padded with nop. value must fit
// in a signed 8-bit immediate (moveq's range); callers needing a wider
// constant should patch with PatchNop and a longer move/rts sequence
// instead. minLength is the number of bytes available to patch into
// (typically the original instruction's length); it must be at least 4.
func PatchSkipAndReturnValue(value int8, minLength int) ([]byte, bool) {
	if minLength < 4 {
		return nil, false
	}
	out := make([]byte, minLength)
	binary.BigEndian.PutUint16(out[0:2], 0x7000|uint16(uint8(value)))
	binary.BigEndian.PutUint16(out[2:4], 0x4E75) // rts
	for i := 4; i+1 < len(out); i += 2 {
		binary.BigEndian.PutUint16(out[i:], 0x4E71)
	}
	return out, true
}
