package m68k

import "errors"

// Errors returned by Decode and Lift.
var (
	// ErrShortInput is returned when fewer bytes are available than the
	// instruction's encoding requires.
	ErrShortInput = errors.New("m68k: not enough bytes to decode instruction")
	// ErrUnrecognizedEncoding is returned when no instruction matches the
	// given bit pattern.
	ErrUnrecognizedEncoding = errors.New("m68k: unrecognized instruction encoding")
	// ErrUnsupportedAddressing is returned when an instruction encodes an
	// effective address mode it does not accept (e.g. an immediate source
	// used as a destination).
	ErrUnsupportedAddressing = errors.New("m68k: addressing mode not valid for this instruction")
	// ErrUnsupportedOnVariant is returned when an instruction or addressing
	// mode requires capabilities the selected VariantConfig does not have
	// (e.g. memory-indirect addressing on a plain 68000).
	ErrUnsupportedOnVariant = errors.New("m68k: instruction not supported on this processor variant")
	// ErrNotLiftable is returned by Lift when called with a decoded
	// instruction whose mnemonic has no IR lifting defined, or whose form
	// it cannot model (64-bit register-pair divides, branches without a
	// statically known target).
	ErrNotLiftable = errors.New("m68k: instruction has no IR lifting defined")
)
