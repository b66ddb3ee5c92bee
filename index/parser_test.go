package index_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dochive/dochive"
	"github.com/dochive/dochive/index"
	"github.com/dochive/dochive/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughRenderer wraps markdown so tests can assert the renderer
// ran without depending on real HTML output.
func passthroughRenderer() *mock.Renderer {
	return &mock.Renderer{
		RenderFn: func(markdown string) (string, error) {
			return "<rendered>" + markdown + "</rendered>", nil
		},
	}
}

func writeDoc(t *testing.T, content string) dochive.FileInfo {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return dochive.FileInfo{
		Path:         path,
		RelativePath: "doc.md",
		SourceName:   "Core",
		SourceKind:   dochive.SourceKindPrimary,
		Filename:     "doc.md",
		ModifiedAt:   time.Now(),
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("builds a document from frontmatter and body", func(t *testing.T) {
		t.Parallel()

		info := writeDoc(t, `---
title: Getting Started
category: basics
order: 2
video: https://youtu.be/abc123
---
# Getting Started

Install the thing.`)

		parser := index.NewParser(passthroughRenderer(), nil)

		doc, err := parser.Parse(context.Background(), info)
		require.NoError(t, err)
		require.NotNil(t, doc)

		assert.Equal(t, "Getting Started", doc.Title)
		assert.Equal(t, "basics", doc.Category)
		assert.Equal(t, 2, doc.Order)
		assert.Equal(t, "https://www.youtube.com/embed/abc123", doc.VideoURL)
		assert.Equal(t, "# Getting Started\n\nInstall the thing.", doc.Raw)
		assert.Contains(t, doc.HTML, "<rendered>")
		assert.Equal(t, "Core", doc.SourceName)
	})

	t.Run("falls back to the first heading for the title", func(t *testing.T) {
		t.Parallel()

		info := writeDoc(t, "# From Heading\n\nBody.")
		parser := index.NewParser(passthroughRenderer(), nil)

		doc, err := parser.Parse(context.Background(), info)
		require.NoError(t, err)

		assert.Equal(t, "From Heading", doc.Title)
	})

	t.Run("leaves the title empty without frontmatter or heading", func(t *testing.T) {
		t.Parallel()

		info := writeDoc(t, "Just text.")
		parser := index.NewParser(passthroughRenderer(), nil)

		doc, err := parser.Parse(context.Background(), info)
		require.NoError(t, err)

		assert.Empty(t, doc.Title)
		assert.Equal(t, "doc.md", doc.DisplayTitle())
	})

	t.Run("tolerates a file deleted after the scan", func(t *testing.T) {
		t.Parallel()

		info := writeDoc(t, "# Gone")
		require.NoError(t, os.Remove(info.Path))

		parser := index.NewParser(passthroughRenderer(), nil)

		doc, err := parser.Parse(context.Background(), info)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("propagates renderer failures", func(t *testing.T) {
		t.Parallel()

		info := writeDoc(t, "# Doc")
		renderer := &mock.Renderer{
			RenderFn: func(string) (string, error) {
				return "", errors.New("render failed")
			},
		}

		_, err := index.NewParser(renderer, nil).Parse(context.Background(), info)

		assert.Error(t, err)
	})
}

func TestParser_ParseAll(t *testing.T) {
	t.Parallel()

	t.Run("drops files that fail to parse", func(t *testing.T) {
		t.Parallel()

		good := writeDoc(t, "# Good")
		gone := writeDoc(t, "# Gone")
		require.NoError(t, os.Remove(gone.Path))

		parser := index.NewParser(passthroughRenderer(), nil)

		docs, err := parser.ParseAll(context.Background(), []dochive.FileInfo{good, gone})
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "Good", docs[0].Title)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		parser := index.NewParser(passthroughRenderer(), nil)

		_, err := parser.ParseAll(ctx, []dochive.FileInfo{writeDoc(t, "# Doc")})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
