package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/empdirectory/internal/flagx"
)

// JsonConfig is the on-disk JSON shape. Zero values leave the current setting
// untouched.
type JsonConfig struct {
	DataDir       string `json:"data_dir"`
	DatabaseName  string `json:"database_name"`
	EncryptionKey string `json:"encryption_key"`
	SeedFile      string `json:"seed_file"`
	SeedLimit     int    `json:"seed_limit"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DatabaseName, jc.DatabaseName)
	setString(&cfg.EncryptionKey, jc.EncryptionKey)
	setString(&cfg.SeedFile, jc.SeedFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.SeedLimit != 0 {
		cfg.SeedLimit = jc.SeedLimit
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
