package backend

import (
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/coronaengine/corona-log/core"
	"github.com/coronaengine/corona-log/sink"
)

// OverflowPolicy defines how to handle a full async queue
type OverflowPolicy int

const (
	// Block blocks the caller until space is available
	Block OverflowPolicy = iota
	// DropNewest drops the incoming log entry when the queue is full
	DropNewest
	// DropOldest drops the oldest queued log entry when the queue is full
	DropOldest
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "block"
	case DropNewest:
		return "drop_newest"
	case DropOldest:
		return "drop_oldest"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p OverflowPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *OverflowPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseOverflowPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseOverflowPolicy converts a policy name to an OverflowPolicy
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "block":
		return Block, nil
	case "drop_newest", "dropnewest", "overrun_newest":
		return DropNewest, nil
	case "drop_oldest", "dropoldest", "overrun_oldest":
		return DropOldest, nil
	default:
		return Block, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// Stats tracks async dispatch statistics
type Stats struct {
	// dropped is indexed by core.Level
	dropped   [core.OffLevel]*xsync.Counter
	blocked   *xsync.Counter
	processed *xsync.Counter
	errors    *xsync.Counter
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	s := &Stats{
		blocked:   xsync.NewCounter(),
		processed: xsync.NewCounter(),
		errors:    xsync.NewCounter(),
	}
	for i := range s.dropped {
		s.dropped[i] = xsync.NewCounter()
	}
	return s
}

// IncrementDropped increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if level >= core.TraceLevel && level < core.OffLevel {
		s.dropped[level].Inc()
	}
}

// IncrementBlocked increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Inc()
}

// IncrementProcessed increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Inc()
}

// IncrementErrors increments the write error counter
func (s *Stats) IncrementErrors() {
	s.errors.Inc()
}

// Snapshot is a point-in-time copy of backend statistics
type Snapshot struct {
	Dropped   map[core.Level]int64
	Blocked   int64
	Processed int64
	Errors    int64
	Sinks     sink.Snapshot
}

// TotalDropped returns the total dropped across all levels
func (s Snapshot) TotalDropped() int64 {
	var total int64
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// Snapshot returns a snapshot of current statistics
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Dropped:   make(map[core.Level]int64, len(s.dropped)),
		Blocked:   s.blocked.Value(),
		Processed: s.processed.Value(),
		Errors:    s.errors.Value(),
	}
	for i, c := range s.dropped {
		snap.Dropped[core.Level(i)] = c.Value()
	}
	return snap
}
