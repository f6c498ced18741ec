package source

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce coalesces the write bursts editors produce on save.
const debounce = 150 * time.Millisecond

// Watcher signals when a local definition file changes so the caller
// can re-transform and swap the active layout.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *zap.SugaredLogger
	changes chan struct{}
	done    chan struct{}
}

// Watch watches path's directory (editors replace files rather than
// write in place) and reports changes to the file itself.
func Watch(path string, log *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:      fs,
		log:     log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run(abs)
	return w, nil
}

// Changes delivers at most one pending change notification.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run(abs string) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				// drain a tick that fired between events so the
				// reset arms exactly one future tick
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.log.Debugw("definition file changed", "path", abs)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warnw("watch error", "error", err)
		case <-w.done:
			return
		}
	}
}
