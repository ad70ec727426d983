package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// SlogHandler implements slog.Handler on top of a Logger so that code
// written against log/slog ends up in the same sinks and pattern.
// Attributes are appended to the message as key=value pairs.
type SlogHandler struct {
	l      *Logger
	prefix string // rendered WithAttrs attributes
	group  string
}

var _ slog.Handler = (*SlogHandler)(nil)

// NewSlogHandler creates a new slog.Handler adapter writing through l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{l: l}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Enabled(slogLevelToCore(level))
}

// Handle renders the record's attributes into the message and logs it
// at the record's call site.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	level := slogLevelToCore(r.Level)
	if !level.Enabled(CompiledLevel) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.group, a)
		return true
	})

	var loc Location
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		loc = Location{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
			Defined:  frame.File != "",
		}
	}

	h.l.logf(level, -1, loc, sb.String(), nil)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(&sb, h.group, a)
	}
	return &SlogHandler{l: h.l, prefix: sb.String(), group: h.group}
}

// WithGroup returns a new SlogHandler with the given group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &SlogHandler{l: h.l, prefix: h.prefix, group: group}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) Level {
	switch {
	case level >= slog.LevelError:
		return ErrorLevel
	case level >= slog.LevelWarn:
		return WarnLevel
	case level >= slog.LevelInfo:
		return InfoLevel
	default:
		return DebugLevel
	}
}

// appendAttr writes " key=value", flattening groups into dotted keys
func appendAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(sb, key, ga)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	s := a.Value.String()
	if s == "" || strings.ContainsAny(s, " =\"\n") {
		s = strconv.Quote(s)
	}
	sb.WriteString(s)
}
