package main

import (
	"os"
	"strconv"

	"github.com/retroenv/m68kgolib/arch/cpu/m68k"
	"github.com/retroenv/m68kgolib/cli"
	"github.com/retroenv/m68kgolib/log"
)

type patchOptions struct {
	Variant string `flag:"variant" usage:"processor variant" default:"68000"`
	Value   int    `flag:"value" usage:"return value used by the return mode" default:"0"`
}

type patchPositional struct {
	File   string `arg:"positional" usage:"flat binary file to patch" required:"true"`
	Offset string `arg:"positional" usage:"byte offset of the instruction to patch" required:"true"`
}

// runPatch handles "m68kdump patch <mode> <file> <offset>" for mode in
// {nop, invert, always, return}. It writes the patched bytes to
// "<file>.patched" rather than overwriting the input.
func runPatch(logger *log.Logger) cli.SubcommandHandler {
	return func(args []string) int {
		if len(args) == 0 {
			logger.Error("patch requires a mode", log.String("modes", "nop, invert, always, return"))
			return 1
		}
		mode := args[0]
		args = args[1:]

		var opts patchOptions
		var pos patchPositional
		fs := cli.NewFlagSet("m68kdump patch " + mode)
		fs.AddSection("options", &opts)
		fs.AddPositional(&pos)
		if _, err := fs.Parse(args); err != nil {
			logger.Error("parsing arguments", log.Err(err))
			fs.ShowUsage()
			return 1
		}

		cfg, ok := variantByName(opts.Variant)
		if !ok {
			logger.Error("unknown processor variant", log.String("variant", opts.Variant))
			return 1
		}

		offset, err := strconv.ParseInt(pos.Offset, 0, 64)
		if err != nil {
			logger.Error("parsing offset", log.String("offset", pos.Offset), log.Err(err))
			return 1
		}

		data, err := os.ReadFile(pos.File)
		if err != nil {
			logger.Error("reading file", log.String("file", pos.File), log.Err(err))
			return 1
		}
		if offset < 0 || offset >= int64(len(data)) {
			logger.Error("offset out of range", log.Int64("offset", offset))
			return 1
		}

		instr, err := m68k.Decode(cfg, data[offset:], uint32(offset))
		if err != nil {
			logger.Error("decoding instruction to patch", log.Int64("offset", offset), log.Err(err))
			return 1
		}

		patched, ok := buildPatch(mode, data[offset:offset+int64(instr.Length)], instr, opts.Value)
		if !ok {
			logger.Error("instruction cannot be patched with this mode",
				log.String("mode", mode), log.String("mnemonic", instr.Mnemonic))
			return 1
		}

		out := make([]byte, len(data))
		copy(out, data)
		copy(out[offset:int(offset)+len(patched)], patched)

		outPath := pos.File + ".patched"
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			logger.Error("writing patched file", log.String("file", outPath), log.Err(err))
			return 1
		}
		logger.Info("wrote patched binary", log.String("file", outPath), log.String("mode", mode))
		return 0
	}
}

func buildPatch(mode string, data []byte, instr m68k.DecodedInstruction, value int) ([]byte, bool) {
	switch mode {
	case "nop":
		return m68k.PatchNop(instr), true
	case "invert":
		return m68k.PatchInvertBranch(data, instr)
	case "always":
		return m68k.PatchAlwaysBranch(data, instr)
	case "return":
		return m68k.PatchSkipAndReturnValue(int8(value), instr.Length)
	default:
		return nil, false
	}
}
