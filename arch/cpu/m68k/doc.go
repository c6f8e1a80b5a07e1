// Package m68k provides a Motorola 68000-family instruction decoder and
// architecture-neutral IR lifter.
//
// The 68000 family is a 16/32-bit CISC architecture used in home computers,
// workstations, and game consoles from the 1980s and 1990s. This package
// decodes one variable-length instruction at a time from a byte slice and
// reports:
//
//   - the mnemonic, operand size, and up to three typed operands
//   - the total instruction length in bytes
//   - on request, a sequence of architecture-neutral IR expressions
//     modeling the instruction's effect on registers, memory, and flags
//   - control-flow metadata (branch kind, statically known target)
//
// # Basic usage
//
//	cfg := m68k.NewM68020Variant()
//	instr, err := m68k.Decode(cfg, data, addr)
//	tokens := m68k.Format(instr, addr)
//	branch := m68k.AnalyzeBranch(instr, addr, instr.Length)
//	length, err := m68k.Lift(cfg, instr, addr, il) // il implements m68k.IL
//
// # Addressing modes
//
// All 14 68020+ addressing modes are supported: data/address register
// direct, register indirect, postincrement, predecrement, register
// indirect with displacement, register indirect with index (brief and
// full extension words), memory indirect pre/post-indexed, absolute short
// and long, immediate, PC-relative forms, and FP-specific variants.
//
// # Processor variants
//
// A [VariantConfig] selects per-processor behavior: address bus width
// (24-bit on 68000/008/010, 32-bit on 68020+), whether memory-indirect
// addressing is available, movem store ordering, and the control-register
// name table consulted by movec. Use one of the New*Variant constructors.
//
// # Scope
//
// This package is purely computational: it owns no mutable state beyond
// local values used while decoding or lifting a single instruction, and it
// performs no I/O. It is designed to be driven by a host disassembler
// framework that supplies register/IR infrastructure (symbolization,
// binary views, plugin registration) through the [IL] interface; those
// concerns are out of scope here.
package m68k
