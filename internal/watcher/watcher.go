// Package watcher observes the connected snapshot file and triggers a
// re-merge when something else writes it. Editors often replace files
// with rename, so the parent directory is watched rather than the file
// itself.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"focusquest/internal/utils"
)

// DefaultQuietPeriod is how long the file must stay untouched before a
// change triggers the callback. Rapid successive writes, such as an
// editor still saving, keep deferring the trigger.
const DefaultQuietPeriod = 2 * time.Second

// Watcher calls OnChange after the watched file settles.
type Watcher struct {
	path        string
	quietPeriod time.Duration
	onChange    func()

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithQuietPeriod overrides the settle delay.
func WithQuietPeriod(d time.Duration) Option {
	return func(w *Watcher) { w.quietPeriod = d }
}

// New watches path and invokes onChange once writes to it settle.
// The caller owns the watcher and must Stop it.
func New(path string, onChange func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		path:        filepath.Clean(path),
		quietPeriod: DefaultQuietPeriod,
		onChange:    onChange,
		fsw:         fsw,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.loop()
	return w, nil
}

// Stop ends the watch and waits for the event loop to exit. Safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()

	_ = w.fsw.Close()
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var settle *time.Timer
	settleCh := make(chan struct{}, 1)
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(w.quietPeriod, func() {
				select {
				case settleCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			utils.Warnf("file watcher: %v", err)

		case <-settleCh:
			w.onChange()
		}
	}
}
