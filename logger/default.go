package logger

import (
	"log/slog"

	"github.com/coronaengine/corona-log/backend"
)

// std is the process-wide logger behind the package-level functions.
// It starts without a backend; the first logging call creates one from
// DefaultConfig unless Init ran first.
var std = &Logger{}

// Default returns the process-wide logger
func Default() *Logger {
	return std
}

// Init installs a backend built from cfg on the default logger, closing
// the previous one. On error the previous backend keeps running.
func Init(cfg Config) error {
	return std.Init(cfg)
}

// Shutdown flushes and closes the default logger's backend. Safe to
// call when nothing was initialised, and from exit paths.
func Shutdown() error {
	return std.Shutdown()
}

// SetLevel sets the default logger's runtime threshold
func SetLevel(level Level) {
	std.SetLevel(level)
}

// GetLevel returns the default logger's runtime threshold
func GetLevel() Level {
	return std.GetLevel()
}

// Enabled reports whether the default logger would write at level
func Enabled(level Level) bool {
	return std.Enabled(level)
}

// Flush drains the default logger's queue and syncs its sinks
func Flush() error {
	return std.Flush()
}

// Stats returns the default logger's counters
func Stats() backend.Snapshot {
	return std.Stats()
}

// Slog returns a *slog.Logger writing through the default logger
func Slog() *slog.Logger {
	return std.Slog()
}

// Package-level convenience functions using the default logger

// Log writes a pre-formatted message using the default logger
func Log(level Level, msg string) {
	if !level.Enabled(CompiledLevel) {
		return
	}
	std.logf(level, callerSkip, Location{}, msg, nil)
}

// LogAt writes a pre-formatted message with an explicit call site
func LogAt(level Level, loc Location, msg string) {
	if !level.Enabled(CompiledLevel) {
		return
	}
	std.logf(level, callerSkip, loc, msg, nil)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...any) {
	if TraceLevel < CompiledLevel {
		return
	}
	std.logf(TraceLevel, callerSkip, Location{}, format, nonNil(args))
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...any) {
	if DebugLevel < CompiledLevel {
		return
	}
	std.logf(DebugLevel, callerSkip, Location{}, format, nonNil(args))
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...any) {
	if InfoLevel < CompiledLevel {
		return
	}
	std.logf(InfoLevel, callerSkip, Location{}, format, nonNil(args))
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...any) {
	if WarnLevel < CompiledLevel {
		return
	}
	std.logf(WarnLevel, callerSkip, Location{}, format, nonNil(args))
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...any) {
	if ErrorLevel < CompiledLevel {
		return
	}
	std.logf(ErrorLevel, callerSkip, Location{}, format, nonNil(args))
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...any) {
	if CriticalLevel < CompiledLevel {
		return
	}
	std.logf(CriticalLevel, callerSkip, Location{}, format, nonNil(args))
}

// TracefAt logs a formatted trace message with an explicit call site
func TracefAt(loc Location, format string, args ...any) {
	if TraceLevel < CompiledLevel {
		return
	}
	std.logf(TraceLevel, callerSkip, loc, format, nonNil(args))
}

// DebugfAt logs a formatted debug message with an explicit call site
func DebugfAt(loc Location, format string, args ...any) {
	if DebugLevel < CompiledLevel {
		return
	}
	std.logf(DebugLevel, callerSkip, loc, format, nonNil(args))
}

// InfofAt logs a formatted info message with an explicit call site
func InfofAt(loc Location, format string, args ...any) {
	if InfoLevel < CompiledLevel {
		return
	}
	std.logf(InfoLevel, callerSkip, loc, format, nonNil(args))
}

// WarnfAt logs a formatted warning message with an explicit call site
func WarnfAt(loc Location, format string, args ...any) {
	if WarnLevel < CompiledLevel {
		return
	}
	std.logf(WarnLevel, callerSkip, loc, format, nonNil(args))
}

// ErrorfAt logs a formatted error message with an explicit call site
func ErrorfAt(loc Location, format string, args ...any) {
	if ErrorLevel < CompiledLevel {
		return
	}
	std.logf(ErrorLevel, callerSkip, loc, format, nonNil(args))
}

// CriticalfAt logs a formatted critical message with an explicit call site
func CriticalfAt(loc Location, format string, args ...any) {
	if CriticalLevel < CompiledLevel {
		return
	}
	std.logf(CriticalLevel, callerSkip, loc, format, nonNil(args))
}
