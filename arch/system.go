package arch

import (
	"strings"

	"github.com/retroenv/m68kgolib/set"
)

// System represents a complete target system built around a 68000-family
// processor. This is separate from Architecture and handles system-specific
// concerns like executable format, memory map, and runtime conventions.
type System string

// Supported systems.
const (
	// Amiga represents the Commodore Amiga line (68000 through 68060
	// depending on model).
	Amiga System = "amiga"

	// AtariST represents the Atari ST/STE/TT/Falcon line.
	AtariST System = "atari-st"

	// MegaDrive represents the Sega Mega Drive/Genesis, whose main CPU is
	// a 68000.
	MegaDrive System = "mega-drive"

	// MacClassic represents classic (68k-based) Macintosh systems,
	// Macintosh 128K through the early Quadra/Centris line.
	MacClassic System = "mac-classic"

	// SinclairQL represents the Sinclair QL, built around the 68008.
	SinclairQL System = "sinclair-ql"

	// Generic represents a generic system without specific hardware quirks.
	// Can be used for any supported processor variant when no
	// system-specific behavior is needed.
	Generic System = "generic"
)

// allSupportedSystems defines the single source of truth for supported systems.
// Adding a new system requires updating only this slice.
var allSupportedSystems = []System{
	Amiga,
	AtariST,
	MegaDrive,
	MacClassic,
	SinclairQL,
	Generic,
}

// supportedSystemsSet provides O(1) lookup performance for system validation.
var supportedSystemsSet = set.NewFromSlice(allSupportedSystems)

// String returns the string representation of the system.
func (s System) String() string {
	return string(s)
}

// IsValid returns true if the system is supported.
func (s System) IsValid() bool {
	return supportedSystemsSet.Contains(s)
}

// SystemFromString creates a System from a string.
// Returns the system and true if valid, or empty System and false if invalid.
// The comparison is case-insensitive.
func SystemFromString(s string) (System, bool) {
	sys := System(strings.ToLower(s))
	if sys.IsValid() {
		return sys, true
	}
	return "", false
}

// SupportedSystems returns a slice of all supported systems.
func SupportedSystems() []System {
	// Return a copy to prevent external mutation
	result := make([]System, len(allSupportedSystems))
	copy(result, allSupportedSystems)
	return result
}
