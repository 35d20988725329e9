package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/connstat/ui"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ui.DefaultDateLayout, cfg.TimestampFormat)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "connstat"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "connstat", "config.yaml"),
		[]byte("source: /tmp/tcpstat\ncolor: never\n"), 0o600))
	t.Setenv("CONNSTAT_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tcpstat", cfg.Source)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timestamp_format": "15:04:05"}`), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "15:04:05", cfg.TimestampFormat)

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	t.Setenv("CONNSTAT_COLOR", "rainbow")
	_, err := Load(viper.New(), "")
	assert.ErrorContains(t, err, "color")

	t.Setenv("CONNSTAT_COLOR", "auto")
	t.Setenv("CONNSTAT_LOG_LEVEL", "chatty")
	_, err = Load(viper.New(), "")
	assert.ErrorContains(t, err, "log_level")
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "connstat"), Dir())
}
