// Package watch reports when the served files change on disk, typically
// because wasm-pack rebuilt the binary. Nothing is cached, so it only informs.
package watch

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors and wasm-pack often produce several events per save.
const debounceInterval = 50 * time.Millisecond

type Watcher struct {
	fw      *fsnotify.Watcher
	errs    <-chan error
	logger  *log.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher. fsnotify errors go to logger, which may be nil.
func NewWatcher(logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:     fw,
		errs:   fw.Errors,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Watch monitors the given files, resolved against root. The parent
// directories are watched rather than the files so that a file replaced by
// rename or created later is still seen. onChange gets the absolute path.
func (w *Watcher) Watch(root string, files []string, onChange func(path string)) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		p := filepath.Join(absRoot, f)
		wanted[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := w.fw.Add(d); err != nil {
			return err
		}
	}

	debounce := make(map[string]time.Time)

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := filepath.Clean(event.Name)
				if !wanted[path] {
					continue
				}
				if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
					continue
				}
				now := time.Now()
				if last, seen := debounce[path]; seen && now.Sub(last) < debounceInterval {
					continue
				}
				debounce[path] = now
				onChange(path)

			case err, ok := <-w.errs:
				if !ok {
					return
				}
				if w.logger != nil {
					w.logger.Printf("watch error: %v", err)
				}

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
