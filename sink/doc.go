// Package sink provides the output destinations a backend writes
// rendered log lines to.
//
// Every sink is a zapcore.WriteSyncer with a Close method, so it plugs
// directly into a zap core:
//
//   - Console writes to stdout or stderr and decides whether colour
//     escape codes should be rendered (auto-detected with go-isatty,
//     disabled by NO_COLOR).
//   - RotatingFile writes to a file and rotates it by size, keeping a
//     bounded number of numbered backups.
//
// Rotation scheme: the active file is always the configured path, for
// example logs/app.log. When a write would push it past MaxSize, the
// existing backups shift up by one (app.1.log becomes app.2.log, and so
// on), the backup numbered MaxBackups is deleted, the active file
// becomes app.1.log and a fresh active file is opened. app.1.log is
// therefore always the newest backup and the oldest content is evicted
// first. With MaxBackups set to 0 the active file is truncated instead.
//
// Sinks never panic on I/O failure. Errors are returned to the zap core,
// which reports them on its error output, and counted in Stats.
package sink
