package m68k

// VariantConfig selects per-processor-model decoding and lifting behavior.
// It carries no mutable state; callers share one VariantConfig value across
// any number of concurrent Decode/Lift calls.
type VariantConfig struct {
	// Name is the human-readable model name, e.g. "68020".
	Name string

	// AddressBits is the physical address bus width: 24 on 68000/008/010/
	// EC000, 32 on 68020 and later.
	AddressBits int

	// MemoryIndirect reports whether the memory-indirect pre/post-indexed
	// addressing modes (68020+) are available.
	MemoryIndirect bool

	// LongDisplacement reports whether a 32-bit base/outer displacement is
	// available in the full extension word (68020+); 68000/010 encodings
	// that select a long displacement size are reserved/invalid.
	LongDisplacement bool

	// MovemStoreDecremented reports whether a predecrement movem stores
	// registers to memory computed by decrementing the address register
	// before each store (68020+) rather than after determining the final
	// address up front and storing from a fixed base (68000/010). This
	// only changes when the address register's new value becomes visible,
	// never which registers are stored or where they land in memory.
	MovemStoreDecremented bool

	// FPU reports whether FP instructions decode at all on this variant.
	FPU bool

	// controlRegisters maps a movec 12-bit index to its name for this
	// variant; models differ in which control registers they implement.
	controlRegisters map[ControlRegister]string
}

// AddressMask returns the bitmask that truncates a computed address to this
// variant's physical address bus width.
func (v VariantConfig) AddressMask() uint32 {
	if v.AddressBits >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << uint(v.AddressBits)) - 1
}

// ControlRegisterName returns the name movec uses for idx on this variant,
// and false if idx is not implemented.
func (v VariantConfig) ControlRegisterName(idx ControlRegister) (string, bool) {
	name, ok := v.controlRegisters[idx]
	return name, ok
}

var baseControlRegisters = map[ControlRegister]string{
	0x000: "sfc",
	0x001: "dfc",
	0x800: "usp",
	0x801: "vbr",
}

var mmu040ControlRegisters = map[ControlRegister]string{
	0x000: "sfc",
	0x001: "dfc",
	0x002: "cacr",
	0x800: "usp",
	0x801: "vbr",
	0x802: "caar",
	0x803: "msp",
	0x804: "isp",
}

func cloneControlRegisters(base map[ControlRegister]string, extra ...map[ControlRegister]string) map[ControlRegister]string {
	out := make(map[ControlRegister]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, m := range extra {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// NewM68000Variant returns the configuration for the original MC68000: 24-bit
// address bus, no memory-indirect or long-displacement addressing, forward
// movem store order.
func NewM68000Variant() VariantConfig {
	return VariantConfig{
		Name:             "68000",
		AddressBits:      24,
		controlRegisters: cloneControlRegisters(baseControlRegisters),
	}
}

// NewM68008Variant returns the configuration for the MC68008, identical to
// the 68000 in decoding (its narrower physical data bus does not affect
// this package).
func NewM68008Variant() VariantConfig {
	cfg := NewM68000Variant()
	cfg.Name = "68008"
	return cfg
}

// NewM68010Variant returns the configuration for the MC68010: same address
// space and addressing modes as the 68000, with loop-mode support that does
// not affect decoding.
func NewM68010Variant() VariantConfig {
	cfg := NewM68000Variant()
	cfg.Name = "68010"
	return cfg
}

// NewM68020Variant returns the configuration for the MC68020: 32-bit address
// bus, memory-indirect and long-displacement addressing, and decremented
// movem store order.
func NewM68020Variant() VariantConfig {
	return VariantConfig{
		Name:                   "68020",
		AddressBits:            32,
		MemoryIndirect:         true,
		LongDisplacement:       true,
		MovemStoreDecremented: true,
		controlRegisters:       cloneControlRegisters(baseControlRegisters),
	}
}

// NewM68030Variant returns the configuration for the MC68030, identical to
// the 68020 in decoding (its on-chip MMU does not affect this package).
func NewM68030Variant() VariantConfig {
	cfg := NewM68020Variant()
	cfg.Name = "68030"
	return cfg
}

// NewM68040Variant returns the configuration for the MC68040, which adds an
// on-chip FPU and the cacr/caar/msp/isp control registers.
func NewM68040Variant() VariantConfig {
	cfg := NewM68020Variant()
	cfg.Name = "68040"
	cfg.FPU = true
	cfg.controlRegisters = cloneControlRegisters(mmu040ControlRegisters)
	return cfg
}

// NewM68LC040Variant returns the configuration for the MC68LC040, a 68040
// without an FPU.
func NewM68LC040Variant() VariantConfig {
	cfg := NewM68040Variant()
	cfg.Name = "68LC040"
	cfg.FPU = false
	return cfg
}

// NewM68EC040Variant returns the configuration for the MC68EC040, a 68040
// without an FPU or MMU.
func NewM68EC040Variant() VariantConfig {
	cfg := NewM68LC040Variant()
	cfg.Name = "68EC040"
	return cfg
}

// NewM68330Variant returns the configuration for the MC68330 (CPU32 core):
// 68010-level addressing with decremented movem store order.
func NewM68330Variant() VariantConfig {
	cfg := NewM68010Variant()
	cfg.Name = "68330"
	cfg.MovemStoreDecremented = true
	return cfg
}

// NewM68340Variant returns the configuration for the MC68340, identical to
// the 68330 in decoding.
func NewM68340Variant() VariantConfig {
	cfg := NewM68330Variant()
	cfg.Name = "68340"
	return cfg
}
