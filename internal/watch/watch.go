// Package watch schedules filter passes: a single pass after a settle delay,
// or repeated passes whenever the watched page file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay gives whatever produces the page time to finish writing
// before it is scanned.
const DefaultDelay = 1500 * time.Millisecond

// Once runs fn a single time after delay. It returns ctx.Err() without
// running fn if ctx is done first.
func Once(ctx context.Context, delay time.Duration, fn func() error) error {
	if delay <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn()
	}

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return fn()
	}
}

type Logger interface {
	Debugf(string, ...any)
	Errorf(string, ...any)
}

type Watcher struct {
	Path  string
	Delay time.Duration
	Log   Logger

	// Pass runs after the initial delay and after every settled change.
	// When Pass rewrites Path it must skip writes that would not change the
	// content, or the watcher keeps waking itself up.
	Pass func() error

	// ready, when set, is closed once the fsnotify watch is registered.
	ready chan struct{}
}

// Run blocks until ctx is done. Pass errors are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	// Watch the directory: editors and atomic writers replace the file,
	// which drops a watch placed on the file itself.
	dir := filepath.Dir(w.Path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	target := filepath.Base(w.Path)

	if w.ready != nil {
		close(w.ready)
	}

	delay := w.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	settle := time.NewTimer(delay)
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			w.debugf("change detected: %s\n", ev)
			if !settle.Stop() {
				select {
				case <-settle.C:
				default:
				}
			}
			settle.Reset(delay)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.errorf("watcher: %v\n", err)

		case <-settle.C:
			w.debugf("running pass on %s\n", w.Path)
			if err := w.Pass(); err != nil {
				w.errorf("pass on %s failed: %v\n", w.Path, err)
			}
		}
	}
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Debugf(format, args...)
	}
}

func (w *Watcher) errorf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Errorf(format, args...)
	}
}
