package m68k

// Size identifies an integer operand width.
type Size int

// Integer operand sizes.
const (
	SizeByte Size = iota
	SizeWord
	SizeLong
)

// ActualSize maps a Size to its width in bytes.
var ActualSize = [...]int{1, 2, 4}

// SizeSuffix maps a Size to the assembler mnemonic suffix.
var SizeSuffix = [...]string{".b", ".w", ".l"}

// FPSize identifies an FP operand's data format, matching the seven
// hardware-defined encodings plus two plugin-convenience pseudo-sizes used
// for FP data/control registers.
type FPSize int

// FP data formats. Encodings 0-7 are hardware-defined; FPSizeRegister and
// FPSizeSCRegister have no encoding of their own and exist only to size
// FP data-register and FP control-register operands.
const (
	FPSizeLong FPSize = iota
	FPSizeSingle
	FPSizeExtended
	FPSizePacked
	FPSizeWord
	FPSizeDouble
	FPSizeByte
	FPSizePackedDynamic
	FPSizeRegister
	FPSizeSCRegister
)

// FPActualSize maps an FPSize to its width in bytes. FP extended-precision
// registers occupy 12 bytes in memory (80-bit value, padded); an FP data
// register itself (FPSizeRegister) is sized as the unpadded 10 bytes.
var FPActualSize = [...]int{4, 4, 12, 12, 2, 8, 1, 12, 10, 4}

// FPSizeSuffix maps an FPSize to the assembler mnemonic suffix.
var FPSizeSuffix = [...]string{".l", ".s", ".x", ".p", ".w", ".d", ".b", ".p", ".x", ".l"}
