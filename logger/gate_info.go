//go:build corona_log_info

package logger

const CompiledLevel = InfoLevel
