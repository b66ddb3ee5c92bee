// Package slog provides logging decorators for dochive services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dochive/dochive"
)

// Ensure LoggingLibrary implements dochive.Library at compile time.
var _ dochive.Library = (*LoggingLibrary)(nil)

// LoggingLibrary wraps a Library with operation logging.
type LoggingLibrary struct {
	next   dochive.Library
	logger *slog.Logger
}

// NewLoggingLibrary creates a new LoggingLibrary.
func NewLoggingLibrary(next dochive.Library, logger *slog.Logger) *LoggingLibrary {
	return &LoggingLibrary{next: next, logger: logger}
}

// OrganizedDocs delegates to the wrapped library and logs the operation.
func (l *LoggingLibrary) OrganizedDocs(ctx context.Context) (tree *dochive.Tree, err error) {
	defer func(begin time.Time) {
		l.logger.Info("organized docs",
			"documents", tree.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.OrganizedDocs(ctx)
}

// InvalidateAll delegates to the wrapped library and logs the operation.
func (l *LoggingLibrary) InvalidateAll(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("cache invalidated",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.InvalidateAll(ctx)
}

// Stats delegates to the wrapped library.
func (l *LoggingLibrary) Stats(ctx context.Context) (dochive.CacheStats, error) {
	return l.next.Stats(ctx)
}
