package logger

import "github.com/coronaengine/corona-log/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
	OffLevel      = core.OffLevel
)

// Location Re-export for callers of the *At functions
type Location = core.Location

// Here returns a Location for an explicit file and line
func Here(file string, line int) Location {
	return core.Here(file, line)
}

// ParseLevel converts a string such as "warn" or "Critical" to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
