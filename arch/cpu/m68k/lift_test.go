package m68k

import (
	"fmt"
	"testing"

	"github.com/retroenv/m68kgolib/assert"
)

// recordingIL is a minimal IL implementation that returns distinct opaque
// handles and records every call it receives, letting tests assert on the
// shape of the emitted sequence without needing a real host IR builder.
type recordingIL struct {
	calls  []string
	labels int
}

func (r *recordingIL) record(format string, args ...any) Expr {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return len(r.calls)
}

func (r *recordingIL) Const(size int, value int64) Expr        { return r.record("const.%d %d", size, value) }
func (r *recordingIL) ConstPointer(size int, value uint32) Expr { return r.record("constptr.%d %#x", size, value) }
func (r *recordingIL) Reg(size int, reg Register) Expr          { return r.record("reg.%d %s", size, reg) }
func (r *recordingIL) SetReg(size int, reg Register, value Expr, flags FlagWriteType) Expr {
	return r.record("setreg.%d %s = %v (%d)", size, reg, value, flags)
}
func (r *recordingIL) SetRegSplit(size int, hi, lo Register, value Expr) Expr {
	return r.record("setregsplit.%d %s:%s = %v", size, hi, lo, value)
}
func (r *recordingIL) Load(size int, addr Expr) Expr { return r.record("load.%d [%v]", size, addr) }
func (r *recordingIL) Store(size int, addr Expr, value Expr, flags FlagWriteType) Expr {
	return r.record("store.%d [%v] = %v (%d)", size, addr, value, flags)
}
func (r *recordingIL) Push(size int, value Expr) Expr { return r.record("push.%d %v", size, value) }
func (r *recordingIL) Pop(size int) Expr              { return r.record("pop.%d", size) }

func (r *recordingIL) Flag(name string) Expr           { return r.record("flag %s", name) }
func (r *recordingIL) SetFlag(name string, value Expr) Expr { return r.record("setflag %s = %v", name, value) }
func (r *recordingIL) FlagBit(size int, name string, bit uint) Expr {
	return r.record("flagbit.%d %s[%d]", size, name, bit)
}
func (r *recordingIL) FlagCondition(cond FlagCondition) Expr { return r.record("flagcond %d", cond) }

func (r *recordingIL) Add(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("add.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) Sub(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("sub.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) Mult(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("mult.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) DivSigned(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("divs.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) DivUnsigned(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("divu.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) ModSigned(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("mods.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) ModUnsigned(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("modu.%d %v,%v (%d)", size, a, b, flags)
}

func (r *recordingIL) And(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("and.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) Or(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("or.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) Xor(size int, a, b Expr, flags FlagWriteType) Expr {
	return r.record("xor.%d %v,%v (%d)", size, a, b, flags)
}
func (r *recordingIL) Not(size int, a Expr, flags FlagWriteType) Expr {
	return r.record("not.%d %v (%d)", size, a, flags)
}

func (r *recordingIL) ShiftLeft(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("shl.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) ArithShiftRight(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("asr.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) LogicalShiftRight(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("lsr.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) RotateLeft(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("rol.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) RotateRight(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("ror.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) RotateLeftCarry(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("roxl.%d %v,%v (%d)", size, a, shift, flags)
}
func (r *recordingIL) RotateRightCarry(size int, a, shift Expr, flags FlagWriteType) Expr {
	return r.record("roxr.%d %v,%v (%d)", size, a, shift, flags)
}

func (r *recordingIL) SignExtend(size int, a Expr) Expr { return r.record("sext.%d %v", size, a) }
func (r *recordingIL) ZeroExtend(size int, a Expr) Expr { return r.record("zext.%d %v", size, a) }

func (r *recordingIL) CompareEqual(size int, a, b Expr) Expr {
	return r.record("eq.%d %v,%v", size, a, b)
}
func (r *recordingIL) TestBit(size int, a, bit Expr) Expr {
	return r.record("testbit.%d %v,%v", size, a, bit)
}

func (r *recordingIL) IfExpr(cond Expr, t, f Label) Expr {
	return r.record("if %v then %v else %v", cond, t, f)
}
func (r *recordingIL) Goto(label Label) Expr   { return r.record("goto %v", label) }
func (r *recordingIL) Jump(target Expr) Expr   { return r.record("jump %v", target) }
func (r *recordingIL) Call(target Expr) Expr   { return r.record("call %v", target) }
func (r *recordingIL) Ret(target Expr) Expr    { return r.record("ret %v", target) }
func (r *recordingIL) SystemCall() Expr        { return r.record("syscall") }
func (r *recordingIL) Nop() Expr               { return r.record("nop") }
func (r *recordingIL) Unimplemented() Expr     { return r.record("unimpl") }

func (r *recordingIL) GetLabelForAddress(addr uint32) (Label, bool) { return nil, false }
func (r *recordingIL) NewLabel() Label {
	r.labels++
	return fmt.Sprintf("L%d", r.labels)
}
func (r *recordingIL) MarkLabel(label Label) { r.calls = append(r.calls, fmt.Sprintf("label %v:", label)) }

func TestLift_Moveq(t *testing.T) {
	t.Parallel()

	cfg := NewM68000Variant()
	instr, err := Decode(cfg, []byte{0x72, 0x05}, 0x1000)
	assert.NoError(t, err)

	il := &recordingIL{}
	n, err := Lift(cfg, instr, 0x1000, il)
	assert.NoError(t, err)
	assert.Equal(t, instr.Length, n)
	assert.True(t, len(il.calls) > 0, "expected at least one IL call")
}

func TestLift_BraEmitsJumpOrGoto(t *testing.T) {
	t.Parallel()

	cfg := NewM68000Variant()
	instr, err := Decode(cfg, []byte{0x60, 0x04}, 0x1000)
	assert.NoError(t, err)

	il := &recordingIL{}
	_, err = Lift(cfg, instr, 0x1000, il)
	assert.NoError(t, err)

	found := false
	for _, c := range il.calls {
		if len(c) >= 4 && c[:4] == "jump" {
			found = true
		}
	}
	assert.True(t, found, "expected a jump call, got %v", il.calls)
}

func TestLift_BccEmitsConditionalBranch(t *testing.T) {
	t.Parallel()

	cfg := NewM68000Variant()
	instr, err := Decode(cfg, []byte{0x67, 0x04}, 0x2000)
	assert.NoError(t, err)

	il := &recordingIL{}
	_, err = Lift(cfg, instr, 0x2000, il)
	assert.NoError(t, err)
	assert.True(t, len(il.calls) >= 3, "expected if/label/jump sequence, got %v", il.calls)
}

func TestLift_UnliftableReturnsError(t *testing.T) {
	t.Parallel()

	cfg := NewM68000Variant()
	instr := DecodedInstruction{Mnemonic: "does-not-exist"}
	il := &recordingIL{}
	_, err := Lift(cfg, instr, 0, il)
	assert.Equal(t, ErrNotLiftable, err)
}

func TestLift_MovemRespectsVariantStoreOrder(t *testing.T) {
	t.Parallel()

	data := []byte{0x48, 0xE7, 0xFF, 0xFE} // movem.l d0-d7/a0-a6,-(sp)

	cfg000 := NewM68000Variant()
	instr000, err := Decode(cfg000, data, 0)
	assert.NoError(t, err)
	il000 := &recordingIL{}
	_, err = Lift(cfg000, instr000, 0, il000)
	assert.NoError(t, err)

	cfg020 := NewM68020Variant()
	instr020, err := Decode(cfg020, data, 0)
	assert.NoError(t, err)
	il020 := &recordingIL{}
	_, err = Lift(cfg020, instr020, 0, il020)
	assert.NoError(t, err)

	assert.True(t, len(il000.calls) > 0, "68000 movem should emit IL")
	assert.True(t, len(il020.calls) > 0, "68020 movem should emit IL")
}
