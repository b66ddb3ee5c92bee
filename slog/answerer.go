package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dochive/dochive"
)

// Ensure LoggingAnswerer implements dochive.Answerer at compile time.
var _ dochive.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with query logging.
type LoggingAnswerer struct {
	next   dochive.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next dochive.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped answerer and logs the operation.
func (a *LoggingAnswerer) Answer(ctx context.Context, tree *dochive.Tree, query string) (answer *dochive.Answer, err error) {
	defer func(begin time.Time) {
		sources := 0
		if answer != nil {
			sources = len(answer.Sources)
		}
		a.logger.Info("ai answer",
			"query", query,
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, tree, query)
}
