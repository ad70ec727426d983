//go:build corona_log_error

package logger

const CompiledLevel = ErrorLevel
