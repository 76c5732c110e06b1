package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFile is read from the working directory when present.
const ConfigFile = "farmswap.yaml"

// Config holds the application configuration.
type Config struct {
	// SaveDir is the save directory to operate on when no argument is given.
	SaveDir string `yaml:"save_dir"`
	// PrettyXML indents the output save for human readers instead of
	// preserving the original byte layout.
	PrettyXML bool `yaml:"pretty_xml"`
	// NoBackup skips the .orig backup before overwriting the save.
	NoBackup bool `yaml:"no_backup"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// LoadConfig loads the configuration: farmswap.yaml first (if present),
// then environment variables on top. A .env file is honored.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{LogLevel: "info"}

	if data, err := os.ReadFile(ConfigFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
		}
	}

	if v := os.Getenv("FARMSWAP_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := os.Getenv("FARMSWAP_PRETTY_XML"); v != "" {
		cfg.PrettyXML = isTrue(v)
	}
	if v := os.Getenv("FARMSWAP_NO_BACKUP"); v != "" {
		cfg.NoBackup = isTrue(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels. Unknown
// values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
