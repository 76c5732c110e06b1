package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("FARMSWAP_SAVE_DIR", "")
	t.Setenv("FARMSWAP_PRETTY_XML", "")
	t.Setenv("FARMSWAP_NO_BACKUP", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.PrettyXML)
	assert.False(t, cfg.NoBackup)
}

func TestLoadConfigFromYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("FARMSWAP_SAVE_DIR", "")
	t.Setenv("FARMSWAP_PRETTY_XML", "")
	yaml := "save_dir: /saves/Riverbend_123456789\npretty_xml: true\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(ConfigFile, []byte(yaml), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/saves/Riverbend_123456789", cfg.SaveDir)
	assert.True(t, cfg.PrettyXML)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(ConfigFile, []byte("log_level: debug\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FARMSWAP_NO_BACKUP", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.NoBackup)
}

func TestLoadConfigBadYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(ConfigFile, []byte("{not yaml"), 0o644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}
