package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/sunset/internal/metadata"
	"github.com/vvka-141/sunset/pkg/sunset"
)

// DefaultDebounce is the quiet period after the last event before a run.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches output directories and calls onChange after they settle.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   sunset.Logger
	onChange func(ctx context.Context)
}

// New creates a watcher over dirs. A non-positive debounce selects DefaultDebounce.
// Panics if logger or onChange is nil.
func New(dirs []string, debounce time.Duration, logger sunset.Logger, onChange func(ctx context.Context)) *Watcher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if onChange == nil {
		panic("onChange cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	cleaned := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if abs, err := filepath.Abs(d); err == nil {
			d = abs
		}
		cleaned = append(cleaned, filepath.Clean(d))
	}

	return &Watcher{dirs: cleaned, debounce: debounce, logger: logger, onChange: onChange}
}

// Run blocks until ctx is cancelled, calling onChange once per settled burst
// of changes. onChange runs on the caller's goroutine; events arriving while
// it runs are coalesced into the next run.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		w.watchOutput(fw, dir)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handle(fw, event) {
				pending = time.After(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error: %v", err)

		case <-pending:
			pending = nil
			w.onChange(ctx)
		}
	}
}

// handle reacts to one event and reports whether it should trigger a run.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)

	createdDir := false
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			createdDir = true
		}
	}

	trigger := false
	for _, dir := range w.dirs {
		under := within(dir, name)
		ancestor := !under && within(name, dir)
		if !under && !ancestor {
			continue
		}

		if createdDir {
			if under {
				w.addTree(fw, name)
			} else {
				w.watchOutput(fw, dir)
			}
		}

		_, descriptor := metadata.DescriptorBase(filepath.Base(name))
		// Directory changes can add or drop whole packages.
		if (under && descriptor) || createdDir || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			trigger = true
		}
	}

	if trigger {
		w.logger.Verbose("Change detected: %s", name)
	}
	return trigger
}

// watchOutput watches dir recursively, or its nearest existing ancestor when
// dir does not exist yet.
func (w *Watcher) watchOutput(fw *fsnotify.Watcher, dir string) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		w.addTree(fw, dir)
		return
	}

	for parent := filepath.Dir(dir); ; parent = filepath.Dir(parent) {
		if info, err := os.Stat(parent); err == nil && info.IsDir() {
			if err := fw.Add(parent); err != nil {
				w.logger.Warn("Cannot watch %s: %v", parent, err)
			} else {
				w.logger.Verbose("Waiting for %s to be created (watching %s)", dir, parent)
			}
			return
		}
		if next := filepath.Dir(parent); next == parent {
			return
		}
	}
}

// addTree adds dir and every directory beneath it.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Vanished while walking; a later event covers it
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				w.logger.Warn("Cannot watch %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Cannot walk %s: %v", dir, err)
		return
	}
	w.logger.Verbose("Watching %s", dir)
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
