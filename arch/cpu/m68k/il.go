package m68k

// Expr is an opaque handle to one IR expression produced by an [IL]
// implementation. The lifter never inspects an Expr's contents; it only
// threads handles returned by one IL call into later IL calls, the same way
// a host IR builder's own expression index is threaded through itself.
type Expr any

// Label is an opaque handle to a branch target created by [IL.NewLabel] or
// returned by [IL.GetLabelForAddress].
type Label any

// FlagWriteType tells an IL implementation which condition-code flags an
// emitted expression updates, so the host can attach the right flag-write
// set to the node it builds.
type FlagWriteType int

// Flag-write sets used throughout the lifter.
const (
	// FlagWriteNone means the expression carries no flag update.
	FlagWriteNone FlagWriteType = iota
	// FlagWriteAll updates X, N, Z, V, C (arithmetic family: add/sub/addx/...).
	FlagWriteAll
	// FlagWriteNZVC updates N, Z, V, C only, leaving X unchanged (logical
	// family and all compare/test operations).
	FlagWriteNZVC
)

// IL is the architecture-neutral IR builder contract the lifter emits into.
// A host disassembler framework supplies the concrete implementation; this
// package never imports one. Every method mirrors one operation of the
// host's IR builder: algebraic expression constructors, register/memory
// access, flag access, and control flow. Methods that model an instruction's flag write accept a
// FlagWriteType; implementations that don't care about write-set tracking
// may ignore it.
type IL interface {
	Const(size int, value int64) Expr
	ConstPointer(size int, value uint32) Expr
	Reg(size int, reg Register) Expr
	SetReg(size int, reg Register, value Expr, flags FlagWriteType) Expr
	SetRegSplit(size int, hi, lo Register, value Expr) Expr
	Load(size int, addr Expr) Expr
	Store(size int, addr Expr, value Expr, flags FlagWriteType) Expr
	Push(size int, value Expr) Expr
	Pop(size int) Expr

	Flag(name string) Expr
	SetFlag(name string, value Expr) Expr
	FlagBit(size int, name string, bit uint) Expr
	FlagCondition(cond FlagCondition) Expr

	Add(size int, a, b Expr, flags FlagWriteType) Expr
	Sub(size int, a, b Expr, flags FlagWriteType) Expr
	Mult(size int, a, b Expr, flags FlagWriteType) Expr
	DivSigned(size int, a, b Expr, flags FlagWriteType) Expr
	DivUnsigned(size int, a, b Expr, flags FlagWriteType) Expr
	ModSigned(size int, a, b Expr, flags FlagWriteType) Expr
	ModUnsigned(size int, a, b Expr, flags FlagWriteType) Expr

	And(size int, a, b Expr, flags FlagWriteType) Expr
	Or(size int, a, b Expr, flags FlagWriteType) Expr
	Xor(size int, a, b Expr, flags FlagWriteType) Expr
	Not(size int, a Expr, flags FlagWriteType) Expr

	ShiftLeft(size int, a, shift Expr, flags FlagWriteType) Expr
	ArithShiftRight(size int, a, shift Expr, flags FlagWriteType) Expr
	LogicalShiftRight(size int, a, shift Expr, flags FlagWriteType) Expr
	RotateLeft(size int, a, shift Expr, flags FlagWriteType) Expr
	RotateRight(size int, a, shift Expr, flags FlagWriteType) Expr
	RotateLeftCarry(size int, a, shift Expr, flags FlagWriteType) Expr
	RotateRightCarry(size int, a, shift Expr, flags FlagWriteType) Expr

	SignExtend(size int, a Expr) Expr
	ZeroExtend(size int, a Expr) Expr

	CompareEqual(size int, a, b Expr) Expr
	TestBit(size int, a, bit Expr) Expr

	IfExpr(cond Expr, t, f Label) Expr
	Goto(label Label) Expr
	Jump(target Expr) Expr
	Call(target Expr) Expr
	Ret(target Expr) Expr
	SystemCall() Expr
	Nop() Expr
	Unimplemented() Expr

	// GetLabelForAddress returns an existing label for addr if the host
	// already knows about a branch target there, and false otherwise. The
	// lifter uses this to avoid emitting a redundant local label/goto pair
	// when a branch target already has a label (e.g. a fallthrough address
	// that another instruction already jumps to).
	GetLabelForAddress(addr uint32) (Label, bool)
	NewLabel() Label
	MarkLabel(label Label)
}
