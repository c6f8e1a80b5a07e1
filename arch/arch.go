// Package arch provides architecture constants and types.
package arch

import (
	"github.com/retroenv/m68kgolib/set"
)

// Architecture represents a target processor variant in the 68000 family.
type Architecture string

// Supported processor variants.
const (
	// M68000 represents the original MC68000: 24-bit address bus, no
	// memory-indirect or long-displacement addressing.
	M68000 Architecture = "68000"

	// M68008 represents the MC68008, decode-identical to the 68000.
	M68008 Architecture = "68008"

	// M68010 represents the MC68010, decode-identical to the 68000 aside
	// from loop mode, which does not affect this package.
	M68010 Architecture = "68010"

	// M68020 represents the MC68020: 32-bit address bus, memory-indirect
	// and long-displacement addressing, decremented movem store order.
	M68020 Architecture = "68020"

	// M68030 represents the MC68030, decode-identical to the 68020.
	M68030 Architecture = "68030"

	// M68040 represents the MC68040, which adds an on-chip FPU.
	M68040 Architecture = "68040"

	// M68LC040 represents the MC68LC040, a 68040 without an FPU.
	M68LC040 Architecture = "68lc040"

	// M68EC040 represents the MC68EC040, a 68040 without an FPU or MMU.
	M68EC040 Architecture = "68ec040"

	// M68330 represents the MC68330 CPU32 core, 68010-level addressing
	// with decremented movem store order.
	M68330 Architecture = "68330"

	// M68340 represents the MC68340, decode-identical to the 68330.
	M68340 Architecture = "68340"
)

// allSupportedArchitectures defines the single source of truth for supported architectures.
// Adding a new architecture requires updating only this slice.
var allSupportedArchitectures = []Architecture{
	M68000,
	M68008,
	M68010,
	M68020,
	M68030,
	M68040,
	M68LC040,
	M68EC040,
	M68330,
	M68340,
}

// supportedArchitecturesSet provides O(1) lookup performance for IsValid().
var supportedArchitecturesSet = set.NewFromSlice(allSupportedArchitectures)

// String returns the string representation of the architecture.
func (a Architecture) String() string {
	return string(a)
}

// IsValid returns true if the architecture is supported.
func (a Architecture) IsValid() bool {
	return supportedArchitecturesSet.Contains(a)
}

// FromString creates an Architecture from a string.
// Returns the architecture and true if valid, or empty Architecture and false if invalid.
func FromString(s string) (Architecture, bool) {
	arch := Architecture(s)
	if arch.IsValid() {
		return arch, true
	}
	return "", false
}

// SupportedArchitectures returns a slice of all supported architectures.
func SupportedArchitectures() []Architecture {
	// Return a copy to prevent external mutation
	result := make([]Architecture, len(allSupportedArchitectures))
	copy(result, allSupportedArchitectures)
	return result
}
