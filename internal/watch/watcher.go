package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumeradar/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no quiet period is configured
const DefaultDebounce = 750 * time.Millisecond

// FileWatcher reports changes to one file after a quiet period
// Editors that save by rename are handled by also watching the parent directory
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *errors.Logger

	fsWatcher *fsnotify.Watcher
	fire      chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	lastMod time.Time
}

// NewFileWatcher starts watching path
func NewFileWatcher(path string, debounce time.Duration, logger *errors.Logger) (*FileWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeWatchFailed, "cannot resolve watched path", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeWatchFailed, "failed to create file watcher", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.NewIOError(errors.ErrCodeWatchFailed, "failed to watch directory "+filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		path:      abs,
		debounce:  debounce,
		logger:    logger,
		fsWatcher: fsw,
		fire:      make(chan struct{}, 1),
	}
	if st, err := os.Stat(abs); err == nil {
		w.lastMod = st.ModTime()
	}
	logger.Info("Watching resume file", "file", abs, "debounce_delay", debounce)
	return w, nil
}

// Run calls onChange once per settled change until ctx is canceled
func (w *FileWatcher) Run(ctx context.Context, onChange func(context.Context)) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.schedule()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.LogError(err, "File watcher error", "file", w.path)

		case <-w.fire:
			if w.changed() {
				onChange(ctx)
			}
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// schedule restarts the quiet period
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

// changed reports whether the file's modification time moved since the last run
func (w *FileWatcher) changed() bool {
	st, err := os.Stat(w.path)
	if err != nil {
		// Mid-rename; the Create event that follows will reschedule
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !st.ModTime().Equal(w.lastMod) {
		w.lastMod = st.ModTime()
		return true
	}
	return false
}

func (w *FileWatcher) close() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close file watcher")
	}
}
