package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dochive/dochive"
	"github.com/dochive/dochive/mock"
	dslog "github.com/dochive/dochive/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestLoggingLibrary(t *testing.T) {
	t.Parallel()

	t.Run("logs organized docs with the document count", func(t *testing.T) {
		t.Parallel()

		next := &mock.Library{
			OrganizedDocsFn: func(context.Context) (*dochive.Tree, error) {
				return &dochive.Tree{
					Uncategorized: []*dochive.Document{{Title: "A"}, {Title: "B"}},
				}, nil
			},
		}

		var buf bytes.Buffer
		library := dslog.NewLoggingLibrary(next, textLogger(&buf))

		tree, err := library.OrganizedDocs(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, tree.Len())
		assert.Contains(t, buf.String(), "organized docs")
		assert.Contains(t, buf.String(), "documents=2")
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		next := &mock.Library{
			OrganizedDocsFn: func(context.Context) (*dochive.Tree, error) {
				return nil, dochive.Errorf(dochive.EINTERNAL, "scan failed")
			},
		}

		var buf bytes.Buffer
		library := dslog.NewLoggingLibrary(next, textLogger(&buf))

		_, err := library.OrganizedDocs(context.Background())
		require.Error(t, err)

		assert.Contains(t, buf.String(), "scan failed")
	})

	t.Run("logs invalidation", func(t *testing.T) {
		t.Parallel()

		next := &mock.Library{
			InvalidateAllFn: func(context.Context) error { return nil },
		}

		var buf bytes.Buffer
		library := dslog.NewLoggingLibrary(next, textLogger(&buf))

		require.NoError(t, library.InvalidateAll(context.Background()))
		assert.Contains(t, buf.String(), "cache invalidated")
	})

	t.Run("stats delegates without logging", func(t *testing.T) {
		t.Parallel()

		next := &mock.Library{
			StatsFn: func(context.Context) (dochive.CacheStats, error) {
				return dochive.CacheStats{Documents: 5}, nil
			},
		}

		var buf bytes.Buffer
		library := dslog.NewLoggingLibrary(next, textLogger(&buf))

		stats, err := library.Stats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 5, stats.Documents)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingAnswerer(t *testing.T) {
	t.Parallel()

	next := &mock.Answerer{
		AnswerFn: func(context.Context, *dochive.Tree, string) (*dochive.Answer, error) {
			return &dochive.Answer{
				Text:    "Answer [1].",
				Sources: []dochive.AnswerSource{{Title: "Doc", Path: "/docs/a.md"}},
			}, nil
		},
	}

	var buf bytes.Buffer
	answerer := dslog.NewLoggingAnswerer(next, textLogger(&buf))

	answer, err := answerer.Answer(context.Background(), &dochive.Tree{}, "how do I start")
	require.NoError(t, err)

	assert.Equal(t, "Answer [1].", answer.Text)
	assert.Contains(t, buf.String(), "ai answer")
	assert.Contains(t, buf.String(), "sources=1")
}
