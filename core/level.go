package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel is returned when a level name cannot be parsed.
var ErrInvalidLevel = errors.New("invalid log level")

// Level represents the severity level of a log entry
type Level int8

const (
	// TraceLevel for very fine-grained diagnostic output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information (default threshold)
	DebugLevel
	// InfoLevel for general informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures the application may not survive
	CriticalLevel
	// OffLevel disables all output when used as a threshold
	OffLevel
)

var levelNames = [...]string{
	TraceLevel:    "trace",
	DebugLevel:    "debug",
	InfoLevel:     "info",
	WarnLevel:     "warning",
	ErrorLevel:    "error",
	CriticalLevel: "critical",
	OffLevel:      "off",
}

var levelShortNames = [...]string{
	TraceLevel:    "T",
	DebugLevel:    "D",
	InfoLevel:     "I",
	WarnLevel:     "W",
	ErrorLevel:    "E",
	CriticalLevel: "C",
	OffLevel:      "O",
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= TraceLevel && l <= OffLevel
}

// String returns the lower-case name of the level
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int8(l))
	}
	return levelNames[l]
}

// ShortString returns the single-letter name of the level
func (l Level) ShortString() string {
	if !l.Valid() {
		return "?"
	}
	return levelShortNames[l]
}

// Enabled reports whether a message at level l passes the threshold.
// Nothing passes an OffLevel threshold and OffLevel itself is never a
// message level.
func (l Level) Enabled(threshold Level) bool {
	return l < OffLevel && l >= threshold
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int8(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and accepts the common aliases used by spdlog, zap
// and logrus.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "t":
		return TraceLevel, nil
	case "debug", "d":
		return DebugLevel, nil
	case "info", "i":
		return InfoLevel, nil
	case "warn", "warning", "w":
		return WarnLevel, nil
	case "error", "err", "e":
		return ErrorLevel, nil
	case "critical", "fatal", "c":
		return CriticalLevel, nil
	case "off", "none", "o":
		return OffLevel, nil
	default:
		return OffLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
