//go:build corona_log_critical

package logger

const CompiledLevel = CriticalLevel
