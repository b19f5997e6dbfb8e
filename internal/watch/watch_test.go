package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"
	"resumeradar/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *errors.Logger {
	return errors.NewLoggerTo(io.Discard, slog.LevelError)
}

func readString(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func TestRunnerDropsSupersededRun(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	analyze := func(ctx context.Context, text string) (analysis.Report, error) {
		// the first run blocks until the second has been emitted
		if calls.Add(1) == 1 {
			<-release
		}
		return analysis.Report{Status: analysis.StatusAnalyzed, Persona: analysis.PersonaID(text)}, nil
	}

	var mu sync.Mutex
	var emitted []session.Generation
	emit := func(gen session.Generation, r analysis.Report) error {
		mu.Lock()
		defer mu.Unlock()
		emitted = append(emitted, gen)
		return nil
	}

	var stale atomic.Int32
	r := NewRunner(func(string) (string, error) { return "faang", nil }, analyze, emit, discardLogger(),
		WithStaleHook(func(context.Context, session.Generation) { stale.Add(1) }))

	ctx := context.Background()
	first := r.Trigger(ctx, "resume.txt")
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	second := r.Trigger(ctx, "resume.txt")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(emitted) == 1
	}, 2*time.Second, 5*time.Millisecond)

	close(release)
	r.Wait()

	assert.Equal(t, []session.Generation{second}, emitted)
	assert.Equal(t, int32(1), stale.Load())
	assert.Greater(t, second, first)

	_, gen, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, second, gen)
}

func TestRunnerSkipsUnreadableFile(t *testing.T) {
	emitted := false
	r := NewRunner(readString,
		func(context.Context, string) (analysis.Report, error) { return analysis.Report{}, nil },
		func(session.Generation, analysis.Report) error { emitted = true; return nil },
		discardLogger())

	r.Trigger(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	r.Wait()

	assert.False(t, emitted)
	_, _, ok := r.Latest()
	assert.False(t, ok)
}

func TestFileWatcherDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	w, err := NewFileWatcher(path, 100*time.Millisecond, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { changes.Add(1) })
	}()

	// a burst of writes inside one quiet period
	for i := 0; i < 5; i++ {
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte("edit "+string(rune('a'+i))), 0o644))
	}
	// make sure the modification time differs from the initial write
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), changes.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("resume"), 0o644))

	w, err := NewFileWatcher(path, 20*time.Millisecond, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	var changes atomic.Int32
	go func() {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	}()
	require.NoError(t, w.Run(ctx, func(context.Context) { changes.Add(1) }))
	assert.Zero(t, changes.Load())
}

func TestNewFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "resume.txt"), 0, discardLogger())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeWatchFailed, errors.CodeOf(err))
}
