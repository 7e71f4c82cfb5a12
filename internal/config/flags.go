package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/empdirectory/internal/flagx"
)

var (
	valuedFlags = []string{"-d", "-n", "-k", "-s", "-m", "-l", "-f", "-c", "-config"}
	boolFlags   = []string{"-p"}
)

// parseFlags overlays cfg with command-line flags and stores the remaining
// positional arguments in cfg.Command. The JSON config path is accepted but
// ignored here; parseJson handles it.
func parseFlags(cfg *Config, args []string) error {
	own, rest, unknown := flagx.Split(args, valuedFlags, boolFlags)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown flag %s", unknown[0])
	}

	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseName, "n", cfg.DatabaseName, "database name")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "encryption key")
	fs.BoolVar(&cfg.PromptKey, "p", cfg.PromptKey, "prompt for the encryption key")
	fs.StringVar(&cfg.SeedFile, "s", cfg.SeedFile, "seed dataset file")
	fs.IntVar(&cfg.SeedLimit, "m", cfg.SeedLimit, "maximum records to seed")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	var ignored string
	fs.StringVar(&ignored, "c", "", "config file")
	fs.StringVar(&ignored, "config", "", "config file")

	if err := fs.Parse(own); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.Command = rest
	return nil
}
