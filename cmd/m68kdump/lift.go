package main

import (
	"fmt"
	"os"

	"github.com/retroenv/m68kgolib/arch/cpu/m68k"
	"github.com/retroenv/m68kgolib/cli"
	"github.com/retroenv/m68kgolib/log"
)

// printingIL is a minimal m68k.IL implementation that prints every emitted
// node to stdout. It proves the IL contract is satisfiable by a host that
// does nothing beyond bookkeeping opaque handles; it does not execute or
// simplify anything.
type printingIL struct {
	next   int
	labels int
}

func (p *printingIL) emit(format string, args ...any) m68k.Expr {
	p.next++
	fmt.Printf("    %%%d = %s\n", p.next, fmt.Sprintf(format, args...))
	return p.next
}

func (p *printingIL) Const(size int, value int64) m68k.Expr { return p.emit("const.%d %d", size, value) }
func (p *printingIL) ConstPointer(size int, value uint32) m68k.Expr {
	return p.emit("constptr.%d %#x", size, value)
}
func (p *printingIL) Reg(size int, reg m68k.Register) m68k.Expr { return p.emit("reg.%d %s", size, reg) }
func (p *printingIL) SetReg(size int, reg m68k.Register, value m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("%s = %%%v", reg, value)
}
func (p *printingIL) SetRegSplit(size int, hi, lo m68k.Register, value m68k.Expr) m68k.Expr {
	return p.emit("%s:%s = %%%v", hi, lo, value)
}
func (p *printingIL) Load(size int, addr m68k.Expr) m68k.Expr { return p.emit("load.%d [%%%v]", size, addr) }
func (p *printingIL) Store(size int, addr, value m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("store.%d [%%%v] = %%%v", size, addr, value)
}
func (p *printingIL) Push(size int, value m68k.Expr) m68k.Expr { return p.emit("push.%d %%%v", size, value) }
func (p *printingIL) Pop(size int) m68k.Expr                   { return p.emit("pop.%d", size) }

func (p *printingIL) Flag(name string) m68k.Expr { return p.emit("flag %s", name) }
func (p *printingIL) SetFlag(name string, value m68k.Expr) m68k.Expr {
	return p.emit("flag %s = %%%v", name, value)
}
func (p *printingIL) FlagBit(size int, name string, bit uint) m68k.Expr {
	return p.emit("flagbit.%d %s[%d]", size, name, bit)
}
func (p *printingIL) FlagCondition(cond m68k.FlagCondition) m68k.Expr {
	return p.emit("flagcond %d", cond)
}

func (p *printingIL) Add(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("add.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) Sub(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("sub.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) Mult(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("mult.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) DivSigned(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("divs.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) DivUnsigned(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("divu.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) ModSigned(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("mods.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) ModUnsigned(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("modu.%d %%%v, %%%v", size, a, b)
}

func (p *printingIL) And(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("and.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) Or(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("or.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) Xor(size int, a, b m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("xor.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) Not(size int, a m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("not.%d %%%v", size, a)
}

func (p *printingIL) ShiftLeft(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("shl.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) ArithShiftRight(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("asr.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) LogicalShiftRight(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("lsr.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) RotateLeft(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("rol.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) RotateRight(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("ror.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) RotateLeftCarry(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("roxl.%d %%%v, %%%v", size, a, shift)
}
func (p *printingIL) RotateRightCarry(size int, a, shift m68k.Expr, flags m68k.FlagWriteType) m68k.Expr {
	return p.emit("roxr.%d %%%v, %%%v", size, a, shift)
}

func (p *printingIL) SignExtend(size int, a m68k.Expr) m68k.Expr { return p.emit("sext.%d %%%v", size, a) }
func (p *printingIL) ZeroExtend(size int, a m68k.Expr) m68k.Expr { return p.emit("zext.%d %%%v", size, a) }

func (p *printingIL) CompareEqual(size int, a, b m68k.Expr) m68k.Expr {
	return p.emit("eq.%d %%%v, %%%v", size, a, b)
}
func (p *printingIL) TestBit(size int, a, bit m68k.Expr) m68k.Expr {
	return p.emit("testbit.%d %%%v, %%%v", size, a, bit)
}

func (p *printingIL) IfExpr(cond m68k.Expr, t, f m68k.Label) m68k.Expr {
	return p.emit("if %%%v then %v else %v", cond, t, f)
}
func (p *printingIL) Goto(label m68k.Label) m68k.Expr { return p.emit("goto %v", label) }
func (p *printingIL) Jump(target m68k.Expr) m68k.Expr { return p.emit("jump %%%v", target) }
func (p *printingIL) Call(target m68k.Expr) m68k.Expr { return p.emit("call %%%v", target) }
func (p *printingIL) Ret(target m68k.Expr) m68k.Expr   { return p.emit("ret %%%v", target) }
func (p *printingIL) SystemCall() m68k.Expr            { return p.emit("syscall") }
func (p *printingIL) Nop() m68k.Expr                   { return p.emit("nop") }
func (p *printingIL) Unimplemented() m68k.Expr         { return p.emit("unimplemented") }

func (p *printingIL) GetLabelForAddress(addr uint32) (m68k.Label, bool) { return nil, false }
func (p *printingIL) NewLabel() m68k.Label {
	p.labels++
	return fmt.Sprintf("L%d", p.labels)
}
func (p *printingIL) MarkLabel(label m68k.Label) {
	fmt.Printf("  %v:\n", label)
}

func runLift(logger *log.Logger) cli.SubcommandHandler {
	return func(args []string) int {
		var opts decodeOptions
		var pos decodePositional

		fs := cli.NewFlagSet("m68kdump lift")
		fs.AddSection("options", &opts)
		fs.AddPositional(&pos)
		if _, err := fs.Parse(args); err != nil {
			logger.Error("parsing arguments", log.Err(err))
			fs.ShowUsage()
			return 1
		}

		fileCfg, err := loadFileConfig(opts.Config)
		if err != nil {
			logger.Error("loading config file", log.String("file", opts.Config), log.Err(err))
			return 1
		}
		variant := opts.Variant
		if variant == "68000" && fileCfg.Variant != "" {
			variant = fileCfg.Variant
		}

		cfg, ok := variantByName(variant)
		if !ok {
			logger.Error("unknown processor variant", log.String("variant", variant))
			return 1
		}

		data, err := os.ReadFile(pos.File)
		if err != nil {
			logger.Error("reading file", log.String("file", pos.File), log.Err(err))
			return 1
		}

		addr := uint32(opts.Addr)
		il := &printingIL{}
		for len(data) > 0 {
			instr, err := m68k.Decode(cfg, data, addr)
			if err != nil {
				logger.Error("decoding instruction", log.String("file", pos.File),
					log.Uint32("addr", addr), log.Err(err))
				return 1
			}
			fmt.Printf("%08x  %s\n", addr, m68k.Format(instr, addr))
			if _, err := m68k.Lift(cfg, instr, addr, il); err != nil {
				logger.Error("lifting instruction", log.String("file", pos.File),
					log.Uint32("addr", addr), log.Err(err))
			}
			data = data[instr.Length:]
			addr += uint32(instr.Length)
		}
		return 0
	}
}
