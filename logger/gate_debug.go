//go:build corona_log_debug

package logger

const CompiledLevel = DebugLevel
