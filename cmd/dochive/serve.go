package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dochive/dochive"
	"github.com/dochive/dochive/fs"
	"github.com/dochive/dochive/fsnotify"
	dochivehttp "github.com/dochive/dochive/http"
)

// ServeCmd starts the HTTP API server.
type ServeCmd struct {
	Watch bool `help:"Invalidate the cache when documentation files change on disk."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, cancel := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := dochivehttp.NewServer()
	server.Addr = deps.Config.Server.Addr
	server.Library = deps.Library
	server.Searcher = deps.Searcher
	server.Answerer = deps.Answerer
	server.Logger = deps.Logger

	if err := server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}
	defer server.Close()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	if c.Watch {
		paths, err := watchPaths(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
			return err
		}
		watcher := fsnotify.NewWatcher(deps.Library, paths, deps.Logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				deps.Logger.Warn("file watcher stopped", "err", err)
			}
		}()
	}

	<-ctx.Done()
	fmt.Fprintln(deps.Stdout, "Shutting down")
	return nil
}

// watchPaths resolves the documentation directories of every configured
// source that exists on disk.
func watchPaths(deps *Dependencies) ([]string, error) {
	sources, err := deps.Config.Sources(deps.Ctx)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, source := range sources {
		for _, dir := range fs.DocDirs {
			path := filepath.Join(source.RootPath, dir)
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				paths = append(paths, path)
			}
		}
	}
	return paths, nil
}
