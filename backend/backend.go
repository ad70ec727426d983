package backend

import (
	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/core"
	"github.com/coronaengine/corona-log/sink"
)

// Backend is the capability set the facade delegates to
type Backend interface {
	// Write emits msg at level. loc is attached when Defined.
	Write(level core.Level, msg string, loc core.Location)

	// SetLevel changes the threshold
	SetLevel(level core.Level)

	// Level returns the current threshold
	Level() core.Level

	// Enabled reports whether a message at level would be written
	Enabled(level core.Level) bool

	// NeedsLocation reports whether the pattern renders the call site
	NeedsLocation() bool

	// Flush blocks until every write issued before it has reached the sinks
	Flush() error

	// Close flushes and releases all sinks
	Close() error

	// Stats returns a snapshot of the backend's counters
	Stats() Snapshot
}

// Options configures a Zap backend
type Options struct {
	// Name is rendered by %n (default: Corona)
	Name string
	// Pattern is the spdlog-style layout (default: formatter.DefaultPattern)
	Pattern string
	// Level is the initial threshold
	Level core.Level
	// FlushOn syncs the sinks after entries at or above this level.
	// The zero value flushes every entry; OffLevel disables it.
	FlushOn core.Level
	// Console enables the console sink when non-nil
	Console *sink.ConsoleConfig
	// File enables the rotating file sink when non-nil
	File *sink.FileConfig
	// Async moves writes onto a background goroutine
	Async bool
	// QueueSize is the async queue capacity (default: 8192)
	QueueSize int
	// Overflow is applied when the async queue is full (default: Block)
	Overflow OverflowPolicy
	// ErrorOutput receives runtime write errors (default: stderr)
	ErrorOutput zapcore.WriteSyncer
}

const (
	// DefaultName is the logger name used when Options.Name is empty
	DefaultName = "Corona"
	// DefaultQueueSize is the async queue capacity used when unset
	DefaultQueueSize = 8192
)
