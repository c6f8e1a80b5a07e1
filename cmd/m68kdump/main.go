// Command m68kdump decodes, lifts, and patches flat M68000-family binaries.
// It exists to exercise the arch/cpu/m68k package end to end; it has no
// symbol resolution, no binary-format loaders, and no interactive commands.
package main

import (
	"os"

	"github.com/retroenv/m68kgolib/arch/cpu/m68k"
	"github.com/retroenv/m68kgolib/buildinfo"
	"github.com/retroenv/m68kgolib/cli"
	"github.com/retroenv/m68kgolib/config"
	"github.com/retroenv/m68kgolib/log"
)

// Build metadata, set via -ldflags at release time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	logger := log.New()

	cmd := cli.NewCommand("m68kdump", "decode, lift, and patch M68000-family binaries")
	cmd.SetVersion(buildinfo.Version(version, commit, date))
	cmd.AddSubcommand("decode", "decode a flat binary and print assembler text", runDecode(logger))
	cmd.AddSubcommand("lift", "decode and lift a flat binary through the IL contract", runLift(logger))
	cmd.AddSubcommand("patch", "apply a binary-patching primitive to a flat binary", runPatch(logger))

	os.Exit(cmd.Execute(os.Args[1:]))
}

// fileConfig is loaded from an optional INI file via --config. Its Variant
// is used when --variant is left at its default of 68000; Format is loaded
// but not applied by any subcommand.
type fileConfig struct {
	Variant string `config:"m68k.variant,default=68000"`
	Format  string `config:"m68k.format,default=text"`
}

func loadFileConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Variant: "68000", Format: "text"}
	if path == "" {
		return cfg, nil
	}
	if err := config.Load(path, &cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func variantByName(name string) (m68k.VariantConfig, bool) {
	switch name {
	case "68000":
		return m68k.NewM68000Variant(), true
	case "68008":
		return m68k.NewM68008Variant(), true
	case "68010":
		return m68k.NewM68010Variant(), true
	case "68020":
		return m68k.NewM68020Variant(), true
	case "68030":
		return m68k.NewM68030Variant(), true
	case "68040":
		return m68k.NewM68040Variant(), true
	case "68lc040":
		return m68k.NewM68LC040Variant(), true
	case "68ec040":
		return m68k.NewM68EC040Variant(), true
	case "68330":
		return m68k.NewM68330Variant(), true
	case "68340":
		return m68k.NewM68340Variant(), true
	default:
		return m68k.VariantConfig{}, false
	}
}
