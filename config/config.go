package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ftahirops/connstat/collector"
	"github.com/ftahirops/connstat/ui"
)

// EnvPrefix prefixes environment overrides, e.g. CONNSTAT_SOURCE.
const EnvPrefix = "connstat"

// Keys shared between the config file, the environment and bound flags.
const (
	KeySource          = "source"
	KeyLogLevel        = "log_level"
	KeyColor           = "color"
	KeyTimestampFormat = "timestamp_format"
)

// Config holds user-configurable defaults. Per-invocation choices such as
// count, interval, filters and output fields are flags only.
type Config struct {
	Source          string `mapstructure:"source"`
	LogLevel        string `mapstructure:"log_level"`
	Color           string `mapstructure:"color"`
	TimestampFormat string `mapstructure:"timestamp_format"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Source:          collector.DefaultPath,
		LogLevel:        "warn",
		Color:           "auto",
		TimestampFormat: ui.DefaultDateLayout,
	}
}

// Dir returns ~/.config/connstat (or under XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "connstat")
}

// SetDefaults registers defaults and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeySource, d.Source)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyTimestampFormat, d.TimestampFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file into v and decodes the merged settings. path
// names an explicit file; when empty, config.{yaml,json,toml} is looked up
// in Dir() and a missing file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	dir := Dir()
	switch {
	case path != "":
		v.SetConfigFile(path)
	case dir != "":
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	if path != "" || dir != "" {
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
			log.WithField("file", v.ConfigFileUsed()).Debug("loaded config")
		case path == "" && errors.As(err, &notFound):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color: %q is not auto, always or never", c.Color)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Source == "" {
		return errors.New("source: must not be empty")
	}
	if c.TimestampFormat == "" {
		return errors.New("timestamp_format: must not be empty")
	}
	return nil
}
