package logger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/coronaengine/corona-log/backend"
	"github.com/coronaengine/corona-log/formatter"
	"github.com/coronaengine/corona-log/sink"
)

// ErrInvalidConfig is returned by Validate for values that cannot be used
var ErrInvalidConfig = errors.New("invalid log config")

// EnvPrefix is prepended to every environment variable read by ConfigFromEnv
const EnvPrefix = "CORONA_LOG_"

// Config holds configuration for a Logger. It is passed by value and
// never retained after Init returns.
type Config struct {
	// EnableConsole writes to stdout (or ConsoleStream)
	EnableConsole bool `env:"CONSOLE" yaml:"console"`
	// EnableFile writes to a size-rotated file at FilePath
	EnableFile bool `env:"FILE" yaml:"file"`
	// FilePath is the active log file (default: logs/Corona.log)
	FilePath string `env:"FILE_PATH" yaml:"file_path"`
	// MaxFileSizeBytes triggers rotation (default: 5 MiB, 0 = never rotate)
	MaxFileSizeBytes int64 `env:"MAX_FILE_SIZE" yaml:"max_file_size"`
	// MaxFiles is the number of rotated files kept (default: 3)
	MaxFiles int `env:"MAX_FILES" yaml:"max_files"`
	// Async moves writes onto a background worker
	Async bool `env:"ASYNC" yaml:"async"`
	// Pattern is the spdlog-style line layout
	Pattern string `env:"PATTERN" yaml:"pattern"`
	// Level is the initial threshold (default: debug)
	Level Level `env:"LEVEL" yaml:"level"`

	// Name is rendered by %n (default: Corona)
	Name string `env:"NAME" yaml:"name"`
	// FlushOn syncs the sinks after entries at or above it (default: warning)
	FlushOn Level `env:"FLUSH_ON" yaml:"flush_on"`
	// QueueSize is the async queue capacity (default: 8192)
	QueueSize int `env:"QUEUE_SIZE" yaml:"queue_size"`
	// Overflow is applied when the async queue is full (default: block)
	Overflow backend.OverflowPolicy `env:"OVERFLOW" yaml:"overflow"`
	// ConsoleStream is stdout or stderr
	ConsoleStream string `env:"CONSOLE_STREAM" yaml:"console_stream"`
	// Color is auto, always or never
	Color string `env:"COLOR" yaml:"color"`

	// ConsoleWriter replaces ConsoleStream when set
	ConsoleWriter io.Writer `env:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used by Init's zero-argument
// callers and by lazy creation.
func DefaultConfig() Config {
	return Config{
		EnableConsole:    true,
		EnableFile:       false,
		FilePath:         "logs/Corona.log",
		MaxFileSizeBytes: 5 * 1024 * 1024,
		MaxFiles:         3,
		Async:            false,
		Pattern:          formatter.DefaultPattern,
		Level:            DebugLevel,
		Name:             backend.DefaultName,
		FlushOn:          WarnLevel,
		QueueSize:        backend.DefaultQueueSize,
		Overflow:         backend.Block,
		ConsoleStream:    string(sink.Stdout),
		Color:            string(sink.ColorAuto),
	}
}

// ConfigFromEnv returns DefaultConfig overlaid with CORONA_LOG_* variables
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadConfig reads a YAML file on top of DefaultConfig, then applies the
// environment. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read log config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse log config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse log environment: %w", err)
	}
	return nil
}

// Validate reports every problem with c at once
func (c Config) Validate() error {
	var errs []error
	if c.EnableFile && c.FilePath == "" {
		errs = append(errs, fmt.Errorf("%w: file logging enabled without a file path", ErrInvalidConfig))
	}
	if c.MaxFileSizeBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: max file size %d is negative", ErrInvalidConfig, c.MaxFileSizeBytes))
	}
	if c.MaxFiles < 0 {
		errs = append(errs, fmt.Errorf("%w: max files %d is negative", ErrInvalidConfig, c.MaxFiles))
	}
	if c.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("%w: queue size %d is negative", ErrInvalidConfig, c.QueueSize))
	}
	if !c.Level.Valid() {
		errs = append(errs, fmt.Errorf("%w: level %v", ErrInvalidConfig, c.Level))
	}
	if !c.FlushOn.Valid() {
		errs = append(errs, fmt.Errorf("%w: flush level %v", ErrInvalidConfig, c.FlushOn))
	}
	switch sink.Stream(c.ConsoleStream) {
	case "", sink.Stdout, sink.Stderr:
	default:
		errs = append(errs, fmt.Errorf("%w: console stream %q", ErrInvalidConfig, c.ConsoleStream))
	}
	switch sink.ColorMode(c.Color) {
	case "", sink.ColorAuto, sink.ColorAlways, sink.ColorNever:
	default:
		errs = append(errs, fmt.Errorf("%w: color %q", ErrInvalidConfig, c.Color))
	}
	if _, err := formatter.Compile(c.Pattern); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

// options maps a validated Config onto backend options. A config with
// both sinks disabled still gets the console so that logging is never a
// silent no-op.
func (c Config) options() backend.Options {
	opts := backend.Options{
		Name:      c.Name,
		Pattern:   c.Pattern,
		Level:     c.Level,
		FlushOn:   c.FlushOn,
		Async:     c.Async,
		QueueSize: c.QueueSize,
		Overflow:  c.Overflow,
	}
	if c.EnableConsole || !c.EnableFile {
		opts.Console = &sink.ConsoleConfig{
			Stream: sink.Stream(c.ConsoleStream),
			Writer: c.ConsoleWriter,
			Color:  sink.ColorMode(c.Color),
		}
	}
	if c.EnableFile {
		opts.File = &sink.FileConfig{
			Filename:   c.FilePath,
			MaxSize:    c.MaxFileSizeBytes,
			MaxBackups: c.MaxFiles,
		}
	}
	return opts
}
