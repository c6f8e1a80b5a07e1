package main

import (
	"fmt"
	"os"

	"github.com/retroenv/m68kgolib/arch/cpu/m68k"
	"github.com/retroenv/m68kgolib/cli"
	"github.com/retroenv/m68kgolib/log"
)

type decodeOptions struct {
	Variant string `flag:"variant" usage:"processor variant (68000, 68020, 68040, ...)" default:"68000"`
	Addr    uint64 `flag:"addr" usage:"base load address of the file" default:"0"`
	Config  string `flag:"config" usage:"optional INI file supplying the default variant"`
}

type decodePositional struct {
	File string `arg:"positional" usage:"flat binary file to decode" required:"true"`
}

func runDecode(logger *log.Logger) cli.SubcommandHandler {
	return func(args []string) int {
		var opts decodeOptions
		var pos decodePositional

		fs := cli.NewFlagSet("m68kdump decode")
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
		for len(data) > 0 {
			instr, err := m68k.Decode(cfg, data, addr)
			if err != nil {
				logger.Error("decoding instruction", log.String("file", pos.File),
					log.Uint32("addr", addr), log.Err(err))
				return 1
			}
			fmt.Printf("%08x  %s\n", addr, m68k.Format(instr, addr))
			data = data[instr.Length:]
			addr += uint32(instr.Length)
		}
		return 0
	}
}
