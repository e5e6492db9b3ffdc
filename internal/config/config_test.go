package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "builtin:cgoa", cfg.Questions)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Questions = "https://example.com/cgoa/data/questions.json"
	original.LogLevel = "debug"
	original.HTTPTimeout = 30 * time.Second
	original.DBPath = "/tmp/kubeprep.db"

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.Questions, loaded.Questions)
	assert.Equal(t, original.LogLevel, loaded.LogLevel)
	assert.Equal(t, original.HTTPTimeout, loaded.HTTPTimeout)
	assert.Equal(t, original.DBPath, loaded.DBPath)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Questions, cfg.Questions)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: docs/cgoa/data/questions.json\nlog_level: warn\n"), 0o644))

	t.Setenv("KUBEPREP_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docs/cgoa/data/questions.json", cfg.Questions)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"uppercase level", func(c *Config) { c.LogLevel = "WARN" }, false},
		{"empty questions", func(c *Config) { c.Questions = "  " }, true},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "kubeprep", "config.yaml"), p)
}
