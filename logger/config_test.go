package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coronaengine/corona-log/backend"
	"github.com/coronaengine/corona-log/formatter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.EnableConsole)
	assert.False(t, cfg.EnableFile)
	assert.EqualValues(t, 5*1024*1024, cfg.MaxFileSizeBytes)
	assert.Equal(t, 3, cfg.MaxFiles)
	assert.False(t, cfg.Async)
	assert.Equal(t, formatter.DefaultPattern, cfg.Pattern)
	assert.Equal(t, DebugLevel, cfg.Level)
	assert.Equal(t, "Corona", cfg.Name)
	assert.Equal(t, WarnLevel, cfg.FlushOn)
	assert.Equal(t, 8192, cfg.QueueSize)
	assert.Equal(t, backend.Block, cfg.Overflow)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CORONA_LOG_FILE", "true")
	t.Setenv("CORONA_LOG_FILE_PATH", "/var/log/engine.log")
	t.Setenv("CORONA_LOG_MAX_FILE_SIZE", "1048576")
	t.Setenv("CORONA_LOG_MAX_FILES", "7")
	t.Setenv("CORONA_LOG_ASYNC", "true")
	t.Setenv("CORONA_LOG_LEVEL", "warn")
	t.Setenv("CORONA_LOG_OVERFLOW", "drop_newest")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.EnableConsole, "unset variables keep their defaults")
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "/var/log/engine.log", cfg.FilePath)
	assert.EqualValues(t, 1048576, cfg.MaxFileSizeBytes)
	assert.Equal(t, 7, cfg.MaxFiles)
	assert.True(t, cfg.Async)
	assert.Equal(t, WarnLevel, cfg.Level)
	assert.Equal(t, backend.DropNewest, cfg.Overflow)
}

func TestConfigFromEnv_InvalidLevel(t *testing.T) {
	t.Setenv("CORONA_LOG_LEVEL", "loud")

	cfg, err := ConfigFromEnv()
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig().Level, cfg.Level)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
console: false
file: true
file_path: logs/game.log
max_file_size: 100
max_files: 2
level: info
pattern: "[%l] %v"
flush_on: off
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.EnableConsole)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "logs/game.log", cfg.FilePath)
	assert.EqualValues(t, 100, cfg.MaxFileSizeBytes)
	assert.Equal(t, 2, cfg.MaxFiles)
	assert.Equal(t, InfoLevel, cfg.Level)
	assert.Equal(t, "[%l] %v", cfg.Pattern)
	assert.Equal(t, OffLevel, cfg.FlushOn)
	assert.Equal(t, "Corona", cfg.Name, "missing keys keep their defaults")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: info\n"), 0644))
	t.Setenv("CORONA_LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ErrorLevel, cfg.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: [info\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative size", func(c *Config) { c.MaxFileSizeBytes = -1 }},
		{"negative files", func(c *Config) { c.MaxFiles = -1 }},
		{"negative queue", func(c *Config) { c.QueueSize = -1 }},
		{"file without path", func(c *Config) { c.EnableFile = true; c.FilePath = "" }},
		{"bad level", func(c *Config) { c.Level = Level(42) }},
		{"bad flush level", func(c *Config) { c.FlushOn = Level(-9) }},
		{"bad stream", func(c *Config) { c.ConsoleStream = "stdlog" }},
		{"bad color", func(c *Config) { c.Color = "rainbow" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("bad pattern", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Pattern = "%Q %v"
		assert.ErrorIs(t, cfg.Validate(), formatter.ErrInvalidPattern)
	})
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = false

	opts := cfg.options()
	require.NotNil(t, opts.Console, "a config without sinks falls back to the console")
	assert.Nil(t, opts.File)

	cfg.EnableFile = true
	opts = cfg.options()
	assert.Nil(t, opts.Console)
	require.NotNil(t, opts.File)
	assert.Equal(t, cfg.FilePath, opts.File.Filename)
	assert.Equal(t, cfg.MaxFileSizeBytes, opts.File.MaxSize)
	assert.Equal(t, cfg.MaxFiles, opts.File.MaxBackups)
}
