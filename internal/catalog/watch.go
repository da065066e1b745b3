package catalog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a catalog directory and invokes a callback when any
// catalog file changes, so the application can reload definitions without a
// restart. Events are debounced because editors often emit several writes
// for one save.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	onChange func()
}

// NewWatcher creates a watcher for the given catalog directory.
func NewWatcher(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		dir:      dir,
		watcher:  fsw,
		stopCh:   make(chan struct{}),
		onChange: onChange,
	}, nil
}

// Start begins watching in a background goroutine. The callback runs on
// that goroutine - synchronize before touching UI state.
func (w *Watcher) Start() {
	const debounce = 300 * time.Millisecond

	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !isCatalogFile(ev.Name) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, w.onChange)
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			case <-w.stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()
}

// Stop ends watching and releases the underlying file watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

// isCatalogFile returns true for file names the loader would pick up.
func isCatalogFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
