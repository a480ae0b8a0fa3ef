package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"digikey-mcp/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval collapses the bursts of events editors produce when
// saving a file into one reload.
const DefaultDebounceInterval = 250 * time.Millisecond

// FileWatcher calls OnChange when any of the watched files is written,
// created or renamed into place. Parent directories are watched rather than
// the files themselves so that atomic replace-by-rename is seen and files that
// do not exist yet can appear later.
type FileWatcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	onChange func()

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	done      chan struct{}
	timer     *time.Timer
}

// NewFileWatcher creates a watcher for paths. Empty paths are ignored.
func NewFileWatcher(paths []string, debounce time.Duration, onChange func()) (*FileWatcher, error) {
	w := &FileWatcher{
		files:    make(map[string]struct{}),
		debounce: debounce,
		onChange: onChange,
	}

	seenDirs := make(map[string]bool)
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.fsWatcher = watcher
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})

	// Channels are captured here so Stop can nil out fsWatcher safely.
	go w.processEvents(watcher.Events, watcher.Errors, w.stopCh, w.done)

	logging.Info("FileWatcher", "Watching %d file(s) for changes", len(w.files))
	return nil
}

// Stop ends watching and cancels any pending reload.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	watcher := w.fsWatcher
	stopCh := w.stopCh
	done := w.done
	w.fsWatcher = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if watcher == nil {
		return
	}
	close(stopCh)
	watcher.Close()
	<-done
}

func (w *FileWatcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error, stopCh, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("FileWatcher", err, "fsnotify error")
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := w.files[name]; !ok {
		return
	}

	logging.Debug("FileWatcher", "File changed: %s", name)
	w.triggerDebounced()
}

func (w *FileWatcher) triggerDebounced() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}
