package formatter

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/core"
)

// Record is the data a Pattern renders for one log call
type Record struct {
	Time     time.Time
	Level    core.Level
	Logger   string
	Message  string
	Location core.Location
}

// zap has no trace level, so it is mapped one step below debug.
const zapTraceLevel = zapcore.DebugLevel - 1

// ToZap converts a core.Level to the zapcore.Level used by the backend.
// CriticalLevel maps to DPanicLevel, which only panics in development
// loggers; OffLevel maps to zapcore.InvalidLevel, above every level zap
// can emit.
func ToZap(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel:
		return zapTraceLevel
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.CriticalLevel:
		return zapcore.DPanicLevel
	default:
		return zapcore.InvalidLevel
	}
}

// FromZap converts a zapcore.Level back to a core.Level
func FromZap(l zapcore.Level) core.Level {
	switch {
	case l <= zapTraceLevel:
		return core.TraceLevel
	case l == zapcore.DebugLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.ErrorLevel:
		return core.ErrorLevel
	case l < zapcore.InvalidLevel:
		return core.CriticalLevel
	default:
		return core.OffLevel
	}
}

// linePool is a pool of scratch byte slices used to render one line
var linePool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

func getLine() *[]byte {
	b := linePool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func putLine(b *[]byte) {
	if cap(*b) > 64*1024 { // Don't keep very large buffers
		return
	}
	linePool.Put(b)
}
