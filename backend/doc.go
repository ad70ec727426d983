// Package backend is the logging engine behind the facade.
//
// Backend is the capability set the facade relies on: write a message
// at a level with an optional call site, get and set the threshold,
// flush and close. Zap is the implementation, assembled from:
//
//   - one zap core per sink, each rendering with the formatter.Encoder
//     for the configured pattern, tee'd together;
//   - a zap.AtomicLevel shared by all cores, so level changes are
//     lock-free and visible to every caller immediately;
//   - a flush-on core that syncs the sinks after any entry at or above
//     FlushOn (warn by default), so important lines reach disk even if
//     the process dies later;
//   - optionally an async core that moves writes onto a bounded queue
//     drained by a single background goroutine.
//
// When the async queue is full the OverflowPolicy decides: Block (the
// default) waits for space, DropNewest discards the incoming entry and
// DropOldest discards the oldest queued entry. Flush on an async backend
// enqueues a barrier and waits for the worker to reach it, so every
// entry issued before Flush is written and synced when Flush returns.
//
// Runtime write errors (disk full, revoked permissions) never reach log
// call sites. They are reported on the error output (stderr by default)
// and counted in Stats; the affected line is lost.
package backend
