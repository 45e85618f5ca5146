// Package watch replaces the original rover loop's polling read of its
// command file with an event-driven one: an fsnotify watch on the file's
// directory triggers a debounced read-and-truncate, so a command is picked
// up the moment it's written instead of on the next poll tick.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher delivers the contents of path every time it is written to and
// non-empty, truncating it afterward so a command runs exactly once unless
// re-written by the controller.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *logrus.Entry

	fsw      *fsnotify.Watcher
	commands chan string
	errs     chan error
}

// New starts watching the directory containing path (fsnotify watches
// directories, not individual files, so the file can be recreated by
// editors that write-then-rename) and returns a Watcher ready for Run.
func New(path string, debounce time.Duration, log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		log:      log,
		fsw:      fsw,
		commands: make(chan string),
		errs:     make(chan error),
	}, nil
}

// Commands returns the channel of non-empty command-file contents. Closed
// when Run returns.
func (w *Watcher) Commands() <-chan string { return w.commands }

// Errs returns the channel of watch errors (fsnotify internal errors, or
// read failures on a triggered event). Closed when Run returns.
func (w *Watcher) Errs() <-chan error { return w.errs }

// Close releases the underlying fsnotify watch.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run blocks, dispatching debounced command reads until ctx is canceled or
// the underlying watch fails unrecoverably.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.commands)
	defer close(w.errs)

	var timer *time.Timer
	var timerC <-chan time.Time

	resetTimer := func() {
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
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				resetTimer()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.errs <- err

		case <-timerC:
			timerC = nil
			w.drain(ctx)
		}
	}
}

// drain reads and truncates the command file, matching the original
// implementation's read-then-truncate so a command fires exactly once.
func (w *Watcher) drain(ctx context.Context) {
	content, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		select {
		case w.errs <- err:
		case <-ctx.Done():
		}
		return
	}
	if len(content) == 0 {
		return
	}
	if err := os.Truncate(w.path, 0); err != nil {
		w.log.WithError(err).Warn("failed to truncate command file after read")
	}
	select {
	case w.commands <- string(content):
	case <-ctx.Done():
	}
}
