package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// FileConfig holds configuration for the rotating file sink
type FileConfig struct {
	// Filename is the path to the active log file
	Filename string
	// MaxSize is the size in bytes that triggers rotation (0 = never rotate)
	MaxSize int64
	// MaxBackups is the number of rotated files to keep (0 = truncate on rotation)
	MaxBackups int
	// BufferSize is the write buffer size (default: 4096, negative disables buffering)
	BufferSize int
}

// RotatingFile writes log lines to a file and rotates it by size
type RotatingFile struct {
	mu          sync.Mutex
	filename    string
	file        *os.File
	bufWriter   *bufio.Writer
	maxSize     int64
	maxBackups  int
	currentSize int64
	closed      bool
	stats       *Stats
}

// NewRotatingFile opens (or creates) the active log file, creating its
// directory when needed. Open failures are returned so that callers can
// tell file logging did not start.
func NewRotatingFile(cfg FileConfig) (*RotatingFile, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.MaxSize < 0 {
		return nil, fmt.Errorf("max size must not be negative, got %d", cfg.MaxSize)
	}
	if cfg.MaxBackups < 0 {
		return nil, fmt.Errorf("max backups must not be negative, got %d", cfg.MaxBackups)
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 4096
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, size, err := openAppend(cfg.Filename)
	if err != nil {
		return nil, err
	}

	f := &RotatingFile{
		filename:    cfg.Filename,
		file:        file,
		maxSize:     cfg.MaxSize,
		maxBackups:  cfg.MaxBackups,
		currentSize: size,
		stats:       NewStats(),
	}
	if cfg.BufferSize > 0 {
		f.bufWriter = bufio.NewWriterSize(file, cfg.BufferSize)
	}
	return f, nil
}

func openAppend(name string) (*os.File, int64, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		return nil, 0, multierr.Append(fmt.Errorf("stat log file: %w", err), file.Close())
	}
	return file, info.Size(), nil
}

// Filename returns the path of the active file
func (f *RotatingFile) Filename() string {
	return f.filename
}

// Write appends one rendered line, rotating first if the line would
// push the active file past MaxSize.
func (f *RotatingFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}

	if f.maxSize > 0 && f.currentSize > 0 && f.currentSize+int64(len(p)) > f.maxSize {
		if err := f.rotate(); err != nil {
			f.stats.errors.Inc()
			return 0, err
		}
	}

	var n int
	var err error
	if f.bufWriter != nil {
		n, err = f.bufWriter.Write(p)
	} else {
		n, err = f.file.Write(p)
	}
	f.currentSize += int64(n)
	f.stats.recordWrite(n, err)
	return n, err
}

// BackupName returns the path of the backup with the given index.
// Index 0 is the active file.
func BackupName(filename string, index int) string {
	if index == 0 {
		return filename
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	if base == "" || strings.HasSuffix(base, string(filepath.Separator)) {
		// dotfile such as ".log": keep the name, number after it
		base, ext = filename, ""
	}
	return base + "." + strconv.Itoa(index) + ext
}

// rotate performs the actual file rotation
func (f *RotatingFile) rotate() error {
	if err := f.flushLocked(); err != nil {
		return err
	}
	if err := f.file.Close(); err != nil {
		return err
	}

	var rotateErr error
	if f.maxBackups == 0 {
		rotateErr = os.Truncate(f.filename, 0)
	} else {
		rotateErr = f.shiftBackups()
	}

	// Reopen the active file even if shifting failed, so logging continues
	file, size, err := openAppend(f.filename)
	if err != nil {
		f.closed = true
		return multierr.Append(rotateErr, err)
	}
	f.file = file
	f.currentSize = size
	if f.bufWriter != nil {
		f.bufWriter.Reset(file)
	}
	if rotateErr != nil {
		return fmt.Errorf("rotate %s: %w", f.filename, rotateErr)
	}
	f.stats.rotations.Inc()
	return nil
}

// shiftBackups renames name.(i-1) to name.i from the oldest slot down,
// deleting the oldest backup first.
func (f *RotatingFile) shiftBackups() error {
	oldest := BackupName(f.filename, f.maxBackups)
	if err := os.Remove(oldest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for i := f.maxBackups; i > 0; i-- {
		src := BackupName(f.filename, i-1)
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.Rename(src, BackupName(f.filename, i)); err != nil {
			return err
		}
	}
	return nil
}

func (f *RotatingFile) flushLocked() error {
	if f.bufWriter == nil {
		return nil
	}
	return f.bufWriter.Flush()
}

// Sync flushes buffered data and commits the file to stable storage
func (f *RotatingFile) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	if err := f.flushLocked(); err != nil {
		return err
	}
	return f.file.Sync()
}

// Close flushes, syncs and closes the underlying file. Further writes
// return ErrClosed.
func (f *RotatingFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.flushLocked()
	if err == nil {
		err = f.file.Sync()
	}
	return multierr.Append(err, f.file.Close())
}

// Color reports false: files never carry colour codes
func (f *RotatingFile) Color() bool {
	return false
}

// Stats returns a snapshot of the current statistics
func (f *RotatingFile) Stats() Snapshot {
	return f.stats.Snapshot()
}
