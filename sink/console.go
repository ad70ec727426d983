package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ColorMode selects when the console renders colour codes
type ColorMode string

const (
	// ColorAuto colours output only when the stream is a terminal
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colour codes
	ColorAlways ColorMode = "always"
	// ColorNever disables colour codes
	ColorNever ColorMode = "never"
)

// Stream names a standard output stream
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	// Stream to write to (default: stdout)
	Stream Stream
	// Writer overrides Stream, mainly for tests
	Writer io.Writer
	// Color selects colour behaviour (default: auto)
	Color ColorMode
}

// Console writes log lines to a standard stream. Writes are serialized
// so lines from concurrent callers never interleave.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	closed bool
	stats  *Stats
}

// NewConsole creates a console sink
func NewConsole(cfg ConsoleConfig) (*Console, error) {
	w := cfg.Writer
	if w == nil {
		switch cfg.Stream {
		case "", Stdout:
			w = os.Stdout
		case Stderr:
			w = os.Stderr
		default:
			return nil, fmt.Errorf("unknown console stream %q", cfg.Stream)
		}
	}

	color, err := resolveColor(cfg.Color, w)
	if err != nil {
		return nil, err
	}

	return &Console{w: w, color: color, stats: NewStats()}, nil
}

func resolveColor(mode ColorMode, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case "", ColorAuto:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

// Write writes one rendered line
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	n, err := c.w.Write(p)
	c.stats.recordWrite(n, err)
	return n, err
}

// Sync flushes the writer when it buffers. Standard streams are
// unbuffered and are not fsynced, since terminals and pipes reject it.
func (c *Console) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if c.w == os.Stdout || c.w == os.Stderr {
		return nil
	}
	if s, ok := c.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	if f, ok := c.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close stops the sink. The underlying stream is left open.
func (c *Console) Close() error {
	if err := c.Sync(); err != nil {
		return err
	}
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

// Color reports whether colour codes should be rendered
func (c *Console) Color() bool {
	return c.color
}

// Stats returns a snapshot of the current statistics
func (c *Console) Stats() Snapshot {
	return c.stats.Snapshot()
}
