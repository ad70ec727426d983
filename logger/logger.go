package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/backend"
	"github.com/coronaengine/corona-log/core"
)

// callerSkip is the number of frames between logf and the user's call
const callerSkip = 2

// errorOutput receives problems the logger cannot return to a caller,
// such as a failing lazy default backend or a failed close on re-Init.
var errorOutput zapcore.WriteSyncer = zapcore.Lock(os.Stderr)

// Logger is a process-wide logging handle over a swappable backend.
//
// Logging calls hold the read side of mu while they touch the backend,
// so Init and Shutdown, which take the write side, never close a backend
// that is still in use. Arguments are formatted with mu released, which
// lets a String or Error method log through the same Logger.
type Logger struct {
	mu sync.RWMutex
	be backend.Backend

	// fallback replaces DefaultConfig for lazy creation. Only tests set
	// it, to keep lazily created backends off the real stdout.
	fallback *Config
}

// New creates a Logger initialised with cfg
func New(cfg Config) (*Logger, error) {
	l := &Logger{}
	if err := l.Init(cfg); err != nil {
		return nil, err
	}
	return l, nil
}

// Init builds a backend from cfg and installs it, replacing and closing
// any previous backend. On error the previous backend stays in place.
func (l *Logger) Init(cfg Config) error {
	be, err := open(cfg)
	if err != nil {
		return err
	}

	l.mu.Lock()
	old := l.be
	l.be = be
	l.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			report("close previous backend", err)
		}
	}
	return nil
}

func open(cfg Config) (backend.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	be, err := backend.New(cfg.options())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return be, nil
}

// Shutdown flushes and closes the backend. It is a no-op when no
// backend exists. A later logging call lazily creates a new one.
func (l *Logger) Shutdown() error {
	l.mu.Lock()
	be := l.be
	l.be = nil
	l.mu.Unlock()

	if be == nil {
		return nil
	}
	return be.Close()
}

// acquire returns the current backend with the read lock held, creating
// a default backend first if there is none. The caller must call
// l.mu.RUnlock when acquire returns a non-nil backend.
func (l *Logger) acquire() backend.Backend {
	l.mu.RLock()
	if l.be != nil {
		return l.be
	}
	l.mu.RUnlock()

	l.mu.Lock()
	if l.be == nil {
		be, err := open(l.fallbackConfig())
		if err != nil {
			l.mu.Unlock()
			report("create default backend", err)
			return nil
		}
		l.be = be
	}
	// Downgrade: a Shutdown may slip in here, so check again
	l.mu.Unlock()
	l.mu.RLock()
	if l.be == nil {
		l.mu.RUnlock()
		return nil
	}
	return l.be
}

func (l *Logger) fallbackConfig() Config {
	if l.fallback != nil {
		return *l.fallback
	}
	return DefaultConfig()
}

// SetLevel changes the runtime threshold, creating a default backend
// first if none exists.
func (l *Logger) SetLevel(level Level) {
	be := l.acquire()
	if be == nil {
		return
	}
	defer l.mu.RUnlock()
	be.SetLevel(level)
}

// GetLevel returns the runtime threshold. Without a backend it returns
// the default level and creates nothing.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.be == nil {
		return l.fallbackConfig().Level
	}
	return l.be.Level()
}

// Enabled reports whether a message at level would be written
func (l *Logger) Enabled(level Level) bool {
	return level.Enabled(CompiledLevel) && level.Enabled(l.GetLevel())
}

// Flush blocks until every message logged before it has reached the sinks
func (l *Logger) Flush() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.be == nil {
		return nil
	}
	return l.be.Flush()
}

// Stats returns the backend's counters, or a zero Snapshot without one
func (l *Logger) Stats() backend.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.be == nil {
		return backend.Snapshot{}
	}
	return l.be.Stats()
}

// Slog returns a *slog.Logger that writes through l
func (l *Logger) Slog() *slog.Logger {
	return slog.New(NewSlogHandler(l))
}

// logf is the single write path. The level check happens before the
// message is formatted. A negative skip never captures the call site.
func (l *Logger) logf(level Level, skip int, loc Location, format string, args []any) {
	enabled, needsLoc := l.check(level)
	if !enabled {
		return
	}
	if !loc.Defined && skip >= 0 && needsLoc {
		loc = core.Caller(skip)
	}
	msg := format
	if args != nil {
		msg = fmt.Sprintf(format, args...)
	}
	l.write(level, msg, loc)
}

func (l *Logger) check(level Level) (enabled, needsLoc bool) {
	be := l.acquire()
	if be == nil {
		return false, false
	}
	defer l.mu.RUnlock()
	return be.Enabled(level), be.NeedsLocation()
}

// write hands a formatted message to whichever backend is installed
// now, which may differ from the one check saw.
func (l *Logger) write(level Level, msg string, loc Location) {
	be := l.acquire()
	if be == nil {
		return
	}
	defer l.mu.RUnlock()
	if be.Enabled(level) {
		be.Write(level, msg, loc)
	}
}

// Log writes a pre-formatted message at level. msg is never interpreted
// as a format string.
func (l *Logger) Log(level Level, msg string) {
	if !level.Enabled(CompiledLevel) {
		return
	}
	l.logf(level, callerSkip, Location{}, msg, nil)
}

// LogAt is Log with an explicit call site
func (l *Logger) LogAt(level Level, loc Location, msg string) {
	if !level.Enabled(CompiledLevel) {
		return
	}
	l.logf(level, callerSkip, loc, msg, nil)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...any) {
	if TraceLevel < CompiledLevel {
		return
	}
	l.logf(TraceLevel, callerSkip, Location{}, format, nonNil(args))
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if DebugLevel < CompiledLevel {
		return
	}
	l.logf(DebugLevel, callerSkip, Location{}, format, nonNil(args))
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if InfoLevel < CompiledLevel {
		return
	}
	l.logf(InfoLevel, callerSkip, Location{}, format, nonNil(args))
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if WarnLevel < CompiledLevel {
		return
	}
	l.logf(WarnLevel, callerSkip, Location{}, format, nonNil(args))
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if ErrorLevel < CompiledLevel {
		return
	}
	l.logf(ErrorLevel, callerSkip, Location{}, format, nonNil(args))
}

// Criticalf logs a critical message with formatting. It never exits or
// panics.
func (l *Logger) Criticalf(format string, args ...any) {
	if CriticalLevel < CompiledLevel {
		return
	}
	l.logf(CriticalLevel, callerSkip, Location{}, format, nonNil(args))
}

// TracefAt is Tracef with an explicit call site
func (l *Logger) TracefAt(loc Location, format string, args ...any) {
	if TraceLevel < CompiledLevel {
		return
	}
	l.logf(TraceLevel, callerSkip, loc, format, nonNil(args))
}

// DebugfAt is Debugf with an explicit call site
func (l *Logger) DebugfAt(loc Location, format string, args ...any) {
	if DebugLevel < CompiledLevel {
		return
	}
	l.logf(DebugLevel, callerSkip, loc, format, nonNil(args))
}

// InfofAt is Infof with an explicit call site
func (l *Logger) InfofAt(loc Location, format string, args ...any) {
	if InfoLevel < CompiledLevel {
		return
	}
	l.logf(InfoLevel, callerSkip, loc, format, nonNil(args))
}

// WarnfAt is Warnf with an explicit call site
func (l *Logger) WarnfAt(loc Location, format string, args ...any) {
	if WarnLevel < CompiledLevel {
		return
	}
	l.logf(WarnLevel, callerSkip, loc, format, nonNil(args))
}

// ErrorfAt is Errorf with an explicit call site
func (l *Logger) ErrorfAt(loc Location, format string, args ...any) {
	if ErrorLevel < CompiledLevel {
		return
	}
	l.logf(ErrorLevel, callerSkip, loc, format, nonNil(args))
}

// CriticalfAt is Criticalf with an explicit call site
func (l *Logger) CriticalfAt(loc Location, format string, args ...any) {
	if CriticalLevel < CompiledLevel {
		return
	}
	l.logf(CriticalLevel, callerSkip, loc, format, nonNil(args))
}

// nonNil marks a printf-style call so that logf always formats, even
// with no arguments ("100%%" renders as "100%").
func nonNil(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}

func report(what string, err error) {
	fmt.Fprintf(errorOutput, "%v corona-log: %s: %v\n", time.Now().UTC(), what, err)
	_ = errorOutput.Sync()
}
