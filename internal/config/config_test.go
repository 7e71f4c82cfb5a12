package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		DataDir:       "data",
		DatabaseName:  "employees",
		EncryptionKey: PlaceholderEncryptionKey,
		SeedLimit:     200,
		LogLevel:      "info",
		LogFormat:     "text",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, c.UsesPlaceholderKey())
}

func TestLoadConfig_NoArgs(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "employees", cfg.DatabaseName)
	assert.Equal(t, 200, cfg.SeedLimit)
	assert.Empty(t, cfg.Command)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	cfg, err := LoadConfig([]string{
		"-d", "/tmp/dir", "-n", "staff", "-k", "s3cret", "-m", "50",
		"-s", "people.yaml", "-l", "debug", "-f", "json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dir", cfg.DataDir)
	assert.Equal(t, "staff", cfg.DatabaseName)
	assert.Equal(t, "s3cret", cfg.EncryptionKey)
	assert.Equal(t, 50, cfg.SeedLimit)
	assert.Equal(t, "people.yaml", cfg.SeedFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UsesPlaceholderKey())
}

func TestLoadConfig_PositionalsBecomeCommand(t *testing.T) {
	cfg, err := LoadConfig([]string{"-n", "staff", "filter", "Boston", "Any", "Al"})
	require.NoError(t, err)

	assert.Equal(t, "staff", cfg.DatabaseName)
	assert.Equal(t, []string{"filter", "Boston", "Any", "Al"}, cfg.Command)
}

func TestLoadConfig_DashPrefixedKey(t *testing.T) {
	cfg, err := LoadConfig([]string{"-k=-secret", "list"})
	require.NoError(t, err)

	assert.Equal(t, "-secret", cfg.EncryptionKey)
	assert.Equal(t, []string{"list"}, cfg.Command)
}

func TestLoadConfig_PromptFlag(t *testing.T) {
	cfg, err := LoadConfig([]string{"-p"})
	require.NoError(t, err)

	assert.True(t, cfg.PromptKey)
	assert.False(t, cfg.UsesPlaceholderKey())
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"data_dir":       "/var/lib/dir",
		"database_name":  "fromjson",
		"encryption_key": "jsonkey",
		"seed_limit":     10,
		"log_format":     "json",
	})

	t.Run("json overlays defaults", func(t *testing.T) {
		cfg, err := LoadConfig([]string{"-c", path})
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/dir", cfg.DataDir)
		assert.Equal(t, "fromjson", cfg.DatabaseName)
		assert.Equal(t, "jsonkey", cfg.EncryptionKey)
		assert.Equal(t, 10, cfg.SeedLimit)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.Command)
	})

	t.Run("flags win over json", func(t *testing.T) {
		cfg, err := LoadConfig([]string{"-config=" + path, "-n", "fromflag", "list"})
		require.NoError(t, err)

		assert.Equal(t, "fromflag", cfg.DatabaseName)
		assert.Equal(t, "jsonkey", cfg.EncryptionKey)
		assert.Equal(t, []string{"list"}, cfg.Command)
	})
}

func TestLoadConfig_SeedLimitCapFromJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"seed_limit": 201})

	cfg, err := LoadConfig([]string{"-c", path})
	require.Error(t, err)
	assert.Nil(t, cfg)

	cfg, err = LoadConfig([]string{"-m", "200"})
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.SeedLimit)
}

func TestLoadConfig_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing json file", []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{"malformed json", []string{"-c", bad}},
		{"non-numeric limit", []string{"-m", "many"}},
		{"zero limit", []string{"-m", "0"}},
		{"limit above seed cap", []string{"-m", "500"}},
		{"empty name", []string{"-n="}},
		{"empty key", []string{"-k="}},
		{"unknown flag", []string{"-x", "NY", "list"}},
		{"dash value without equals", []string{"-k", "-secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
