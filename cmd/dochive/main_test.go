package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/dochive/dochive/cmd/dochive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a minimal config pointing at a real source root
// with one documentation file, backed by an in-memory cache.
func writeConfig(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "docs", "intro.md"),
		[]byte("---\ntitle: Introduction\n---\n# Introduction\n\nWelcome."),
		0o644,
	))

	configPath := filepath.Join(t.TempDir(), "dochive.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
[primary]
name = "Core"
path = "`+root+`"
`), 0o644))
	return configPath
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("list prints discovered documentation", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", writeConfig(t), "list"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Introduction")
		assert.Contains(t, stdout.String(), "Core")
	})

	t.Run("search finds documents", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", writeConfig(t), "search", "welcome"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Introduction")
	})

	t.Run("ask without an AI provider falls back to search", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", writeConfig(t), "ask", "how", "do", "I", "start"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "unavailable")
	})

	t.Run("stats reports the corpus", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", writeConfig(t), "stats"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Documents:      1")
	})

	t.Run("no command prints help and errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), nil, stdout, stderr)

		assert.Error(t, err)
	})

	t.Run("missing config file errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		defer m.Close()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", "/nonexistent/dochive.toml", "list"}, stdout, stderr)

		assert.Error(t, err)
	})
}
