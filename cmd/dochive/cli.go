package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/dochive/dochive"
	"github.com/dochive/dochive/search"
	"github.com/dochive/dochive/toml"
)

// CLI represents the command-line interface structure.
type CLI struct {
	Config  string `help:"Path to the configuration file." default:"dochive.toml" type:"path"`
	Verbose bool   `help:"Enable debug logging." short:"v"`

	Serve      ServeCmd      `cmd:"" help:"Start the HTTP API server."`
	List       ListCmd       `cmd:"" help:"Print the organized documentation tree."`
	Doc        DocCmd        `cmd:"" help:"Show a single document by relative path."`
	Search     SearchCmd     `cmd:"" help:"Search indexed documentation."`
	Ask        AskCmd        `cmd:"" help:"Ask a question answered from the documentation."`
	Stats      StatsCmd      `cmd:"" help:"Show cache statistics."`
	Invalidate InvalidateCmd `cmd:"" help:"Drop all cached data."`
}

// Dependencies holds all dependencies needed by CLI commands.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config   *toml.Config
	Library  dochive.Library
	Searcher dochive.Searcher
	Semantic *search.Semantic
	Answerer dochive.Answerer
}
