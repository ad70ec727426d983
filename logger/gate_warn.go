//go:build corona_log_warn

package logger

const CompiledLevel = WarnLevel
