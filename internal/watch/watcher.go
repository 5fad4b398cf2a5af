// Package watch delivers debounced change notifications for a set of
// files, collapsing editor save bursts into a single signal.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
}

func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Add registers a file. A file that does not exist yet is watched through
// its parent directory, so creating it later still notifies.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.files[absPath] {
		return nil
	}

	if _, err := os.Stat(absPath); err == nil {
		if err := w.watcher.Add(absPath); err != nil {
			return err
		}
	} else {
		if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
			return err
		}
	}
	w.files[absPath] = true
	return nil
}

// Start begins delivering debounced notifications. The channel has a
// buffer of one; missed signals coalesce.
func (w *Watcher) Start() <-chan struct{} {
	go w.run()
	return w.onChange
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			w.mu.Lock()
			_, isWatched := w.files[event.Name]
			if !isWatched {
				// Editors that replace-on-save emit events for temp
				// names; match on basename as a fallback.
				for watched := range w.files {
					if filepath.Base(watched) == filepath.Base(event.Name) {
						isWatched = true
						break
					}
				}
			}
			w.mu.Unlock()

			if isWatched {
				w.trigger()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(DefaultDebounce, func() {
		select {
		case w.onChange <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
	}
	return w.watcher.Close()
}
