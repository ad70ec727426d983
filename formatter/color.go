package formatter

import "github.com/coronaengine/corona-log/core"

const colorReset = "\033[m"

// ANSI sequences per level, matching the usual terminal palette
var levelColors = [...]string{
	core.TraceLevel:    "\033[37m",
	core.DebugLevel:    "\033[36m",
	core.InfoLevel:     "\033[32m",
	core.WarnLevel:     "\033[33m\033[1m",
	core.ErrorLevel:    "\033[31m\033[1m",
	core.CriticalLevel: "\033[1m\033[41m",
	core.OffLevel:      "",
}

func levelColor(l core.Level) string {
	if !l.Valid() {
		return ""
	}
	return levelColors[l]
}
