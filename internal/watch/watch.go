// Package watch re-runs a callback whenever a single file is saved. It watches the file's
// parent directory with fsnotify so editors that save by renaming a temp file over the
// original are still seen, and coalesces bursts of events into one callback.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more events before firing.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period after the last event before the callback runs.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// WithDebugLogger sets a printf-style logger for event tracing.
func WithDebugLogger(logger func(format string, args ...any)) Option {
	return func(w *FileWatcher) {
		w.debugLogger = logger
	}
}

// FileWatcher watches one file for changes.
type FileWatcher struct {
	path        string
	debounce    time.Duration
	debugLogger func(format string, args ...any)
	watcher     *fsnotify.Watcher
	mu          sync.Mutex
	closed      bool
}

// New creates a FileWatcher for path. The file's parent directory must exist.
func New(path string, opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &FileWatcher{
		path:     abs,
		debounce: DefaultDebounce,
		watcher:  watcher,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

// Watch calls fn with the watched path after each change until ctx is cancelled or the
// watcher is closed. Cancellation is not an error.
func (w *FileWatcher) Watch(ctx context.Context, fn func(path string)) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logDebug("[watch] %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			fn(w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// relevant reports whether event may have changed the watched file's content.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *FileWatcher) logDebug(format string, args ...any) {
	if w.debugLogger != nil {
		w.debugLogger(format, args...)
	}
}

// Close stops the watcher and releases resources.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}
