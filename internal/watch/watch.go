// Package watch monitors an import directory for newly exported dive logs.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// importExts are the file extensions the watcher hands off for import.
var importExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".md":   true,
}

// Watcher watches a directory tree and reports files once they stop changing.
// Dive computer export tools tend to write files incrementally, so each path
// is debounced: the handler runs only after Settle has elapsed with no
// further writes.
type Watcher struct {
	// Settle is the quiet period required before a file is handed off.
	// Zero means a 500ms default.
	Settle time.Duration
}

// Run watches dir until ctx is cancelled, calling handle with the path of
// each settled importable file. Handler errors are reported to stderr and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context, dir string, handle func(path string) error) error {
	settle := w.Settle
	if settle == 0 {
		settle = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting directory watcher: %w", err)
	}
	defer watcher.Close()

	// Walk the directory tree and add a watcher for every subdirectory.
	if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// pending maps each written path to the time of its last event.
	pending := make(map[string]time.Time)
	tick := time.NewTicker(settle / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				// If a new directory was created, watch it too.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if event.Has(fsnotify.Create) {
						_ = watcher.Add(event.Name)
					}
					continue
				}
				if importExts[strings.ToLower(filepath.Ext(event.Name))] {
					pending[event.Name] = time.Now()
				}
			}

		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < settle {
					continue
				}
				delete(pending, path)
				if err := handle(path); err != nil {
					// Best-effort: a bad file must not stop the watcher.
					fmt.Fprintf(os.Stderr, "watch: %s: %v\n", path, err)
				}
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
		}
	}
}
