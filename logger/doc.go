// Package logger is the public API of corona-log. Most users only need
// to import this package.
//
// A process-wide default Logger sits behind the package-level
// functions. It has no backend until Init is called or the first
// message is logged, in which case a backend is built from
// DefaultConfig:
//
//	if err := logger.Init(cfg); err != nil {
//	    return err
//	}
//	defer logger.Shutdown()
//
//	logger.Infof("loaded %d assets", n)
//
// Init may be called again at any time. The new backend is built first
// and swapped in only if construction succeeded; the old one is then
// flushed and closed. Logging from other goroutines during the swap is
// safe and never reaches a closed backend.
//
// Levels can be removed at compile time with a build tag, for example
// -tags corona_log_info drops every Tracef and Debugf call. See
// CompiledLevel.
//
// Configuration comes from DefaultConfig, the CORONA_LOG_* environment
// (ConfigFromEnv) or a YAML file (LoadConfig). Code written against
// log/slog can share the same sinks through Slog or NewSlogHandler.
package logger
