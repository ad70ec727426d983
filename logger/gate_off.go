//go:build corona_log_off

package logger

const CompiledLevel = OffLevel
