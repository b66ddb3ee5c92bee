// Package fsnotify invalidates the documentation cache when files under
// the watched source roots change, so the next read regenerates.
package fsnotify

import (
	"context"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dochive/dochive"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches documentation directories and calls InvalidateAll on
// the wrapped Library when anything changes. Consistency remains
// invalidation-on-next-read; the watcher only moves the invalidation
// earlier.
type Watcher struct {
	library dochive.Library
	paths   []string
	logger  *slog.Logger
}

// NewWatcher creates a Watcher over the given directories.
func NewWatcher(library dochive.Library, paths []string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{library: library, paths: paths, logger: logger}
}

// Run watches until the context is canceled. fsnotify watches are not
// recursive, so every existing subdirectory is registered up front and
// newly created directories are registered as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range w.paths {
		w.addRecursive(watcher, path)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(watcher, event.Name)
				}
			}
			w.logger.Debug("documentation changed", "path", event.Name, "op", event.Op.String())
			if err := w.library.InvalidateAll(ctx); err != nil {
				w.logger.Warn("failed to invalidate cache", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := watcher.Add(path); addErr != nil {
				w.logger.Debug("cannot watch directory", "path", path, "err", addErr)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Debug("watch walk failed", "root", root, "err", err)
	}
}
