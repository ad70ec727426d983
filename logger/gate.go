//go:build !corona_log_debug && !corona_log_info && !corona_log_warn && !corona_log_error && !corona_log_critical && !corona_log_off

package logger

// CompiledLevel is the lowest level compiled into the binary. Calls
// below it are removed by the compiler. Build with one of the tags
// corona_log_debug, corona_log_info, corona_log_warn, corona_log_error,
// corona_log_critical or corona_log_off to raise it.
const CompiledLevel = TraceLevel
