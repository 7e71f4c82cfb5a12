package config

import (
	"fmt"

	"github.com/dmitrijs2005/empdirectory/internal/seed"
)

// PlaceholderEncryptionKey is the built-in key used when none is configured.
// It is not a secret.
const PlaceholderEncryptionKey = "8e31f8f6-60bd-482a-9c70-69855dd02c38"

// Config holds runtime settings for the directory.
type Config struct {
	DataDir       string
	DatabaseName  string
	EncryptionKey string
	PromptKey     bool
	SeedFile      string
	SeedLimit     int
	LogLevel      string
	LogFormat     string

	// Command is the one-shot shell command, empty for interactive mode.
	Command []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.DatabaseName = "employees"
	c.EncryptionKey = PlaceholderEncryptionKey
	c.SeedLimit = seed.DefaultLimit
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// UsesPlaceholderKey reports whether the built-in key is in effect.
func (c *Config) UsesPlaceholderKey() bool {
	return !c.PromptKey && c.EncryptionKey == PlaceholderEncryptionKey
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.DatabaseName == "" {
		return fmt.Errorf("database name must not be empty")
	}
	if c.SeedLimit <= 0 || c.SeedLimit > seed.DefaultLimit {
		return fmt.Errorf("seed limit must be between 1 and %d, got %d", seed.DefaultLimit, c.SeedLimit)
	}
	if !c.PromptKey && c.EncryptionKey == "" {
		return fmt.Errorf("encryption key must not be empty")
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named in args
// (if any), then flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
