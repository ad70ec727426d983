package backend

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/formatter"
)

// queued is one unit of work for the async worker. A non-nil done
// channel marks a flush barrier.
type queued struct {
	core   zapcore.Core
	ent    zapcore.Entry
	fields []zapcore.Field
	done   chan error
}

// dispatcher owns the bounded queue and the single worker goroutine
type dispatcher struct {
	queue    chan queued
	root     zapcore.Core
	policy   OverflowPolicy
	stats    *Stats
	errorOut zapcore.WriteSyncer

	// mu orders senders against close: senders hold the read lock while
	// enqueueing, close takes the write lock to flip closed.
	mu     sync.RWMutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup

	// parked holds flush barriers evicted by DropOldest. The worker
	// handles them when woken; wake has capacity one.
	parkMu sync.Mutex
	parked []queued
	wake   chan struct{}
}

func newDispatcher(root zapcore.Core, size int, policy OverflowPolicy, stats *Stats, errorOut zapcore.WriteSyncer) *dispatcher {
	d := &dispatcher{
		queue:    make(chan queued, size),
		root:     root,
		policy:   policy,
		stats:    stats,
		errorOut: errorOut,
		stop:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
	d.wg.Add(1)
	go d.process()
	return d
}

// enqueue sends an entry to the queue, applying the overflow policy.
// It reports false when the dispatcher is closed and the caller should
// write synchronously instead.
func (d *dispatcher) enqueue(q queued) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.queue <- q:
		return true
	default:
	}

	level := formatter.FromZap(q.ent.Level)
	switch d.policy {
	case DropNewest:
		d.stats.IncrementDropped(level)

	case DropOldest:
		select {
		case old := <-d.queue:
			if old.done != nil {
				// Barriers are never dropped
				d.park(old)
			} else {
				d.stats.IncrementDropped(formatter.FromZap(old.ent.Level))
			}
		default:
		}
		select {
		case d.queue <- q:
		default:
			d.stats.IncrementDropped(level)
		}

	default:
		d.stats.IncrementBlocked()
		d.queue <- q
	}
	return true
}

// park hands an evicted barrier to the worker without touching the
// queue. Everything queued ahead of it was already taken by the worker.
func (d *dispatcher) park(q queued) {
	d.parkMu.Lock()
	d.parked = append(d.parked, q)
	d.parkMu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) handleParked() {
	d.parkMu.Lock()
	parked := d.parked
	d.parked = nil
	d.parkMu.Unlock()

	for _, q := range parked {
		d.handle(q)
	}
}

// flush enqueues a barrier and waits until the worker has written every
// entry queued before it and synced the sinks.
func (d *dispatcher) flush() error {
	done := make(chan error, 1)

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return d.root.Sync()
	}
	d.queue <- queued{done: done}
	d.mu.RUnlock()

	return <-done
}

// process handles async log processing
func (d *dispatcher) process() {
	defer d.wg.Done()

	for {
		select {
		case q := <-d.queue:
			d.handle(q)
		case <-d.wake:
			d.handleParked()
		case <-d.stop:
			// No sender can enqueue once closed is set; drain what is left
			for {
				select {
				case q := <-d.queue:
					d.handle(q)
				default:
					d.handleParked()
					return
				}
			}
		}
	}
}

func (d *dispatcher) handle(q queued) {
	if q.done != nil {
		q.done <- d.root.Sync()
		return
	}

	if err := q.core.Write(q.ent, q.fields); err != nil {
		d.stats.IncrementErrors()
		fmt.Fprintf(d.errorOut, "%v write error: %v\n", time.Now().UTC(), err)
		_ = d.errorOut.Sync()
		return
	}
	d.stats.IncrementProcessed()
}

// close stops accepting entries, drains the queue and waits for the
// worker to exit.
func (d *dispatcher) close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.stop)
	d.wg.Wait()
}

// asyncCore is a zapcore.Core that hands entries to a dispatcher
type asyncCore struct {
	zapcore.LevelEnabler
	inner zapcore.Core
	d     *dispatcher
}

func newAsyncCore(inner zapcore.Core, d *dispatcher) *asyncCore {
	return &asyncCore{LevelEnabler: inner, inner: inner, d: d}
}

func (c *asyncCore) With(fields []zapcore.Field) zapcore.Core {
	return newAsyncCore(c.inner.With(fields), c.d)
}

func (c *asyncCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *asyncCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	// The caller may reuse its field slice once Write returns
	var owned []zapcore.Field
	if len(fields) > 0 {
		owned = make([]zapcore.Field, len(fields))
		copy(owned, fields)
	}

	if !c.d.enqueue(queued{core: c.inner, ent: ent, fields: owned}) {
		return c.inner.Write(ent, owned)
	}
	return nil
}

func (c *asyncCore) Sync() error {
	return c.d.flush()
}
