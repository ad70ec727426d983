package sink

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Stats tracks sink statistics
type Stats struct {
	writes    *xsync.Counter
	bytes     *xsync.Counter
	errors    *xsync.Counter
	rotations *xsync.Counter
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{
		writes:    xsync.NewCounter(),
		bytes:     xsync.NewCounter(),
		errors:    xsync.NewCounter(),
		rotations: xsync.NewCounter(),
	}
}

func (s *Stats) recordWrite(n int, err error) {
	if err != nil {
		s.errors.Inc()
		return
	}
	s.writes.Inc()
	s.bytes.Add(int64(n))
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Writes    int64
	Bytes     int64
	Errors    int64
	Rotations int64
}

// Snapshot returns the current counters
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Writes:    s.writes.Value(),
		Bytes:     s.bytes.Value(),
		Errors:    s.errors.Value(),
		Rotations: s.rotations.Value(),
	}
}

// Add returns the sum of two snapshots
func (s Snapshot) Add(o Snapshot) Snapshot {
	return Snapshot{
		Writes:    s.Writes + o.Writes,
		Bytes:     s.Bytes + o.Bytes,
		Errors:    s.Errors + o.Errors,
		Rotations: s.Rotations + o.Rotations,
	}
}
