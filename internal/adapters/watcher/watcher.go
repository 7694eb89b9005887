// Package watcher evicts cached configs when their files change on disk.
package watcher

import (
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigWatcher = (*Watcher)(nil)

// DefaultDebounceWindow is the quiet period before a batch of changes is emitted.
const DefaultDebounceWindow = 50 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher watches individual config files through their parent directories, so
// editors that replace files on save are still observed. The fsnotify watcher
// is started on the first Watch call.
type Watcher struct {
	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	files     map[string]struct{}
	dirs      map[string]struct{}
	closed    bool

	debouncer *Debouncer
	changes   chan []string
	stop      chan struct{}
	done      chan struct{}
	logger    ports.Logger
}

// New creates a config watcher.
func New(window time.Duration, logger ports.Logger) *Watcher {
	w := &Watcher{
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		changes: make(chan []string),
		stop:    make(chan struct{}),
		logger:  logger,
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w
}

// Watch starts watching the config file at path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return zerr.With(zerr.New("watcher is closed"), "path", abs)
	}
	if _, ok := w.files[abs]; ok {
		return nil
	}

	if w.fsWatcher == nil {
		fsWatcher, err := fsnotify.NewWatcher()
		if err != nil {
			return zerr.Wrap(err, "failed to start file watcher")
		}
		w.fsWatcher = fsWatcher
		w.done = make(chan struct{})
		go w.processEvents(fsWatcher)
	}

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch config directory"), "path", dir)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Changes returns an iterator of debounced batches of changed config paths.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			select {
			case <-w.stop:
				return
			case paths := <-w.changes:
				if !yield(paths) {
					return
				}
			}
		}
	}
}

// Close stops the watcher. Pending changes are dropped. Closing twice is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.stop)
	fsWatcher, done := w.fsWatcher, w.done
	w.mu.Unlock()

	var err error
	if fsWatcher != nil {
		err = fsWatcher.Close()
		<-done
	}
	w.debouncer.Stop()
	return err
}

func (w *Watcher) emit(paths []string) {
	select {
	case w.changes <- paths:
	case <-w.stop:
	}
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[filepath.Clean(path)]
	return ok
}

func (w *Watcher) processEvents(fsWatcher *fsnotify.Watcher) {
	defer close(w.done)

	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps != 0 && w.isWatched(event.Name) {
				w.debouncer.Add(filepath.Clean(event.Name))
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error(zerr.Wrap(err, "config watcher error"))
			}
		}
	}
}
