package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coronaengine/corona-log/formatter"
	"github.com/coronaengine/corona-log/sink"
)

// syncBuffer is a bytes.Buffer safe for concurrent use
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func testConfig(w io.Writer) Config {
	cfg := DefaultConfig()
	cfg.ConsoleWriter = w
	cfg.Color = string(sink.ColorNever)
	cfg.Pattern = "%l %v"
	return cfg
}

func newTestLogger(t *testing.T, cfg Config) *Logger {
	t.Helper()
	l, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Shutdown() })
	return l
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func TestLogger_LevelGate(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.Level = InfoLevel
	l := newTestLogger(t, cfg)

	l.Debugf("x=%d", 1)
	l.Infof("y=%d", 5)

	assert.Equal(t, []string{"info y=5"}, out.Lines())
	assert.False(t, l.Enabled(DebugLevel))
	assert.True(t, l.Enabled(InfoLevel))
}

func TestLogger_EveryLevel(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.Level = TraceLevel
	l := newTestLogger(t, cfg)

	l.Tracef("t")
	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w")
	l.Errorf("e")
	l.Criticalf("c")
	l.Log(OffLevel, "never")
	l.Log(Level(99), "never")

	assert.Equal(t, []string{
		"trace t", "debug d", "info i", "warning w", "error e", "critical c",
	}, out.Lines())
}

func TestLogger_MessagesAreVerbatim(t *testing.T) {
	var out syncBuffer
	l := newTestLogger(t, testConfig(&out))

	l.Infof("100%%")
	l.Log(InfoLevel, "100% {} %v %n")
	l.Infof("%s", "%l %v")

	assert.Equal(t, []string{"info 100%", "info 100% {} %v %n", "info %l %v"}, out.Lines())
}

func TestLogger_SetLevel(t *testing.T) {
	var out syncBuffer
	l := newTestLogger(t, testConfig(&out))
	assert.Equal(t, DebugLevel, l.GetLevel())

	l.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, l.GetLevel())
	l.Warnf("hidden")
	l.Errorf("shown")

	l.SetLevel(OffLevel)
	l.Criticalf("hidden")

	assert.Equal(t, []string{"error shown"}, out.Lines())
}

func TestLogger_CallerLocation(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.Pattern = "%s:%# %v"
	l := newTestLogger(t, cfg)

	_, _, line, _ := runtime.Caller(0)
	l.Infof("here")

	assert.Equal(t, fmt.Sprintf("logger_test.go:%d here\n", line+1), out.String())
}

func TestLogger_ExplicitLocation(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.Pattern = "%s:%# %v"
	l := newTestLogger(t, cfg)

	l.WarnfAt(Here("/src/engine/render.cpp", 42), "slow frame %dms", 48)
	l.LogAt(ErrorLevel, Here("asset.go", 7), "missing")

	assert.Equal(t, []string{"render.cpp:42 slow frame 48ms", "asset.go:7 missing"}, out.Lines())
}

func TestLogger_NoSinksFallsBackToConsole(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.EnableConsole = false
	cfg.EnableFile = false
	l := newTestLogger(t, cfg)

	l.Infof("still visible")
	assert.Equal(t, "info still visible\n", out.String())
}

func TestLogger_ReinitSwitchesFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	cfg := testConfig(io.Discard)
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = first
	l := newTestLogger(t, cfg)
	l.Infof("one")

	cfg.FilePath = second
	require.NoError(t, l.Init(cfg))
	l.Infof("two")
	require.NoError(t, l.Flush())

	assert.Equal(t, "info one\n", readFile(t, first), "the old backend was flushed and no longer written")
	assert.Equal(t, "info two\n", readFile(t, second))
}

func TestLogger_InitFailureKeepsPreviousBackend(t *testing.T) {
	var out syncBuffer
	l := newTestLogger(t, testConfig(&out))

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	bad := testConfig(io.Discard)
	bad.EnableFile = true
	bad.FilePath = filepath.Join(blocker, "t.log")
	err := l.Init(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file sink")

	l.Infof("after failure")
	assert.Equal(t, "info after failure\n", out.String())
}

func TestLogger_InvalidPattern(t *testing.T) {
	cfg := testConfig(io.Discard)
	cfg.Pattern = "[%Q] %v"

	l, err := New(cfg)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, formatter.ErrInvalidPattern)
}

func TestLogger_ShutdownThenLog(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "t.log")
	cfg := testConfig(io.Discard)
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = filename
	l := newTestLogger(t, cfg)

	var lazy syncBuffer
	fallback := testConfig(&lazy)
	l.fallback = &fallback

	l.Infof("before")
	require.NoError(t, l.Shutdown())
	require.NoError(t, l.Shutdown(), "second shutdown is a no-op")
	assert.NoError(t, l.Flush())

	assert.NotPanics(t, func() { l.Infof("after") })

	assert.Equal(t, "info before\n", readFile(t, filename), "closed file is never written again")
	assert.Equal(t, "info after\n", lazy.String(), "logging after shutdown creates a default backend")
}

func TestLogger_GetLevelHasNoSideEffects(t *testing.T) {
	l := &Logger{}
	assert.Equal(t, DebugLevel, l.GetLevel())
	assert.Nil(t, l.be)
	assert.NoError(t, l.Flush())
	assert.Zero(t, l.Stats().Processed)
	assert.Nil(t, l.be)
	assert.NoError(t, l.Shutdown())
}

func TestLogger_SetLevelCreatesBackend(t *testing.T) {
	var out syncBuffer
	fallback := testConfig(&out)
	l := &Logger{fallback: &fallback}
	t.Cleanup(func() { _ = l.Shutdown() })

	l.SetLevel(ErrorLevel)
	require.NotNil(t, l.be)
	assert.Equal(t, ErrorLevel, l.GetLevel())

	l.Warnf("hidden")
	l.Errorf("shown")
	assert.Equal(t, "error shown\n", out.String())
}

func TestLogger_Rotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "t.log")
	cfg := testConfig(io.Discard)
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = filename
	cfg.MaxFileSizeBytes = 100
	cfg.MaxFiles = 2
	cfg.Pattern = "%v"
	l := newTestLogger(t, cfg)

	// 11 bytes per line, 440 bytes in total
	for i := 0; i < 40; i++ {
		l.Infof("message %02d", i)
	}
	require.NoError(t, l.Shutdown())

	active := readFile(t, filename)
	newest := readFile(t, sink.BackupName(filename, 1))
	oldest := readFile(t, sink.BackupName(filename, 2))
	_, err := os.Stat(sink.BackupName(filename, 3))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Contains(t, active, "message 39")
	assert.Contains(t, newest, "message 35")
	assert.Contains(t, oldest, "message 18")
	for _, content := range []string{active, newest, oldest} {
		assert.LessOrEqual(t, len(content), 100)
		assert.NotContains(t, content, "message 00", "oldest content is evicted first")
	}
}

func TestLogger_AsyncFlush(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "async.log")
	cfg := testConfig(io.Discard)
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = filename
	cfg.Async = true
	cfg.QueueSize = 32
	l := newTestLogger(t, cfg)

	for i := 0; i < 1000; i++ {
		l.Infof("line %d", i)
	}
	require.NoError(t, l.Flush())

	assert.Equal(t, 1000, strings.Count(readFile(t, filename), "\n"))
	assert.EqualValues(t, 1000, l.Stats().Processed)
}

func TestLogger_ConcurrentLoggingDuringReinit(t *testing.T) {
	var a, b syncBuffer
	cfgA := testConfig(&a)
	cfgA.Async = true
	cfgB := testConfig(&b)
	l := newTestLogger(t, cfgA)

	const goroutines, perGoroutine = 8, 200
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				l.Infof("g%d %d", g, i)
			}
		}(g)
	}

	for i := 0; i < 20; i++ {
		cfg := cfgA
		if i%2 == 0 {
			cfg = cfgB
		}
		require.NoError(t, l.Init(cfg))
	}
	wg.Wait()
	require.NoError(t, l.Shutdown())

	assert.Equal(t, goroutines*perGoroutine, len(a.Lines())+len(b.Lines()),
		"no message is lost or written twice across backend swaps")
}

// selfLogging swaps the backend and logs through l while it is being
// formatted
type selfLogging struct {
	l   *Logger
	cfg Config
}

func (s selfLogging) String() string {
	if err := s.l.Init(s.cfg); err != nil {
		return err.Error()
	}
	s.l.Infof("inner")
	return "value"
}

func TestLogger_ArgumentMayLogAndReinit(t *testing.T) {
	var a, b syncBuffer
	l := newTestLogger(t, testConfig(&a))

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Infof("outer %v", selfLogging{l: l, cfg: testConfig(&b)})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("logging call never returned")
	}

	assert.Empty(t, a.Lines())
	assert.Equal(t, []string{"info inner", "info outer value"}, b.Lines(),
		"the outer message goes to the backend installed while it was formatted")
}

func TestLogger_Slog(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(&out)
	cfg.Pattern = "%l %s %v"
	l := newTestLogger(t, cfg)

	log := l.Slog().With("scene", "menu").WithGroup("net")
	log.Info("connected", "peer", "10.0.0.2", "rtt", 12)
	log.Debug("ping")
	log.Error("lost", "reason", "timed out")

	assert.Equal(t, []string{
		"info logger_test.go connected scene=menu net.peer=10.0.0.2 net.rtt=12",
		"debug logger_test.go ping scene=menu",
		`error logger_test.go lost scene=menu net.reason="timed out"`,
	}, out.Lines())
}

func TestSlogHandler_Enabled(t *testing.T) {
	cfg := testConfig(io.Discard)
	cfg.Level = WarnLevel
	l := newTestLogger(t, cfg)
	h := NewSlogHandler(l)

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError+4))
}
