// Package watcher turns filesystem events in the browsed directory and
// the repository metadata directory into debounced refresh signals.
package watcher

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a fixed set of paths plus one swappable directory,
// coalescing bursts of events into single refresh signals.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan struct{}
	done     chan struct{}

	mu  sync.Mutex
	dir string
}

// New creates a watcher and starts its event loop.
func New(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add registers a path that stays watched for the watcher's lifetime,
// such as the repository's .git directory.
func (w *Watcher) Add(path string) error {
	return w.fs.Add(path)
}

// SetDir moves the swappable watch to dir as the user navigates.
// Watching is best effort: an unwatchable directory just leaves the
// periodic fallback refresh in charge.
func (w *Watcher) SetDir(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return
	}
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
	}
	w.dir = dir
	if dir != "" {
		_ = w.fs.Add(dir)
	}
}

// Events delivers one signal per debounced burst of changes. The channel
// holds a single pending signal; further bursts are dropped until it is
// drained.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close terminates the watcher and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

// loop processes filesystem events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				select {
				case w.events <- struct{}{}:
				default:
				}
				pending = false
			}

		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant filters the event stream down to changes that can alter a
// listing or a status marker. Git's transient lock files churn on every
// command and are ignored.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !strings.HasSuffix(event.Name, ".lock")
}
