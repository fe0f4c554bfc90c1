// Package watch feeds a running triage session with images that appear in
// the intake directory mid-run.
package watch

import (
	"os"
	"sync"

	"pictriage/internal/errors"
	"pictriage/internal/log"
	"pictriage/internal/scan"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the intake directory with fsnotify and emits paths that
// pass the scanner's validation.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	scanner   *scan.Scanner

	paths chan string
	stop  chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates a watcher that validates candidates with scanner before
// emitting them.
func New(scanner *scan.Scanner) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		scanner:   scanner,
		paths:     make(chan string, 10),
		stop:      make(chan struct{}),
	}, nil
}

// Watch registers dir with the underlying fsnotify watcher.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewFileError("error accessing directory", dir, errors.InvalidPath, err)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	log.WithFields(log.F("directory", dir)).Info("watching intake directory")
	return nil
}

// Paths returns the channel delivering validated image paths.
func (w *Watcher) Paths() <-chan string {
	return w.paths
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			// Validation doubles as a completeness check: a file still
			// being copied fails to decode and is picked up again on the
			// next write event.
			if err := w.scanner.Probe(event.Name); err != nil {
				continue
			}
			select {
			case w.paths <- event.Name:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error: %v", err)
		case <-w.stop:
			return
		}
	}
}

// Stop ends the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stop)
	w.fsWatcher.Close()
}
