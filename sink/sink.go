package sink

import (
	"errors"
	"io"

	"go.uber.org/zap/zapcore"
)

// ErrClosed is returned by writes to a closed sink.
var ErrClosed = errors.New("sink closed")

// Sink is an output destination for rendered log lines
type Sink interface {
	zapcore.WriteSyncer
	io.Closer

	// Color reports whether lines written to this sink should carry
	// ANSI colour codes.
	Color() bool

	// Stats returns a snapshot of the sink's counters.
	Stats() Snapshot
}
