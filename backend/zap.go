package backend

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/core"
	"github.com/coronaengine/corona-log/formatter"
	"github.com/coronaengine/corona-log/sink"
)

// Zap is the zap-based Backend
type Zap struct {
	logger     *zap.Logger
	level      zap.AtomicLevel
	pattern    *formatter.Pattern
	sinks      []sink.Sink
	dispatcher *dispatcher
	stats      *Stats
	closed     atomic.Bool
}

var _ Backend = (*Zap)(nil)

// New builds a backend from opts. Pattern and sink errors are returned
// before anything is started; sinks opened before a failure are closed.
func New(opts Options) (*Zap, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Pattern == "" {
		opts.Pattern = formatter.DefaultPattern
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.ErrorOutput == nil {
		opts.ErrorOutput = zapcore.Lock(os.Stderr)
	}

	pattern, err := formatter.Compile(opts.Pattern)
	if err != nil {
		return nil, err
	}

	sinks, err := openSinks(opts)
	if err != nil {
		return nil, err
	}

	z := &Zap{
		level:   zap.NewAtomicLevelAt(formatter.ToZap(opts.Level)),
		pattern: pattern,
		sinks:   sinks,
		stats:   NewStats(),
	}

	cores := make([]zapcore.Core, 0, len(sinks))
	for _, s := range sinks {
		cores = append(cores, zapcore.NewCore(formatter.NewEncoder(pattern, s.Color()), s, z.level))
	}

	var c zapcore.Core = zapcore.NewTee(cores...)
	if opts.FlushOn < core.OffLevel {
		c = &flushOnCore{Core: c, at: formatter.ToZap(opts.FlushOn)}
	}
	if opts.Async {
		z.dispatcher = newDispatcher(c, opts.QueueSize, opts.Overflow, z.stats, opts.ErrorOutput)
		c = newAsyncCore(c, z.dispatcher)
	} else {
		c = &countingCore{Core: c, stats: z.stats}
	}

	z.logger = zap.New(c, zap.ErrorOutput(opts.ErrorOutput)).Named(opts.Name)
	return z, nil
}

func openSinks(opts Options) ([]sink.Sink, error) {
	var sinks []sink.Sink

	if opts.Console != nil {
		c, err := sink.NewConsole(*opts.Console)
		if err != nil {
			return nil, fmt.Errorf("console sink: %w", err)
		}
		sinks = append(sinks, c)
	}

	if opts.File != nil {
		f, err := sink.NewRotatingFile(*opts.File)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("file sink: %w", err), closeSinks(sinks))
		}
		sinks = append(sinks, f)
	}

	return sinks, nil
}

func closeSinks(sinks []sink.Sink) error {
	var err error
	for _, s := range sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}

// Write emits msg at level. OffLevel and invalid levels are ignored.
func (z *Zap) Write(level core.Level, msg string, loc core.Location) {
	if level < core.TraceLevel || level >= core.OffLevel || z.closed.Load() {
		return
	}
	ce := z.logger.Check(formatter.ToZap(level), msg)
	if ce == nil {
		return
	}
	if loc.Defined {
		ce.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     loc.File,
			Line:     loc.Line,
			Function: loc.Function,
		}
	}
	ce.Write()
}

// SetLevel changes the threshold for every sink at once
func (z *Zap) SetLevel(level core.Level) {
	z.level.SetLevel(formatter.ToZap(level))
}

// Level returns the current threshold
func (z *Zap) Level() core.Level {
	return formatter.FromZap(z.level.Level())
}

// Enabled reports whether a message at level would be written
func (z *Zap) Enabled(level core.Level) bool {
	return level.Enabled(z.Level())
}

// NeedsLocation reports whether the pattern renders the call site
func (z *Zap) NeedsLocation() bool {
	return z.pattern.NeedsLocation()
}

// Flush blocks until every write issued before it has been written and
// synced. On an async backend this waits for the queue to drain.
func (z *Zap) Flush() error {
	if z.closed.Load() {
		return nil
	}
	return z.logger.Sync()
}

// Close drains the async queue, flushes and closes every sink. It is
// safe to call more than once; only the first call does any work.
func (z *Zap) Close() error {
	if !z.closed.CompareAndSwap(false, true) {
		return nil
	}

	if z.dispatcher != nil {
		z.dispatcher.close()
	}

	var err error
	for _, s := range z.sinks {
		err = multierr.Append(err, s.Sync())
	}
	return multierr.Append(err, closeSinks(z.sinks))
}

// Stats returns a snapshot of the backend's counters
func (z *Zap) Stats() Snapshot {
	snap := z.stats.Snapshot()
	for _, s := range z.sinks {
		snap.Sinks = snap.Sinks.Add(s.Stats())
	}
	return snap
}

// countingCore counts entries written on the synchronous path
type countingCore struct {
	zapcore.Core
	stats *Stats
}

func (c *countingCore) With(fields []zapcore.Field) zapcore.Core {
	return &countingCore{Core: c.Core.With(fields), stats: c.stats}
}

func (c *countingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *countingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if err := c.Core.Write(ent, fields); err != nil {
		c.stats.IncrementErrors()
		return err
	}
	c.stats.IncrementProcessed()
	return nil
}
