package dochive_test

import (
	"testing"

	"github.com/dochive/dochive"
	"github.com/stretchr/testify/assert"
)

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	t.Run("returns the first level-1 heading", func(t *testing.T) {
		t.Parallel()

		markdown := "Intro text.\n\n# Getting Started\n\n# Second Heading"

		assert.Equal(t, "Getting Started", dochive.FirstHeading(markdown))
	})

	t.Run("ignores deeper headings", func(t *testing.T) {
		t.Parallel()

		markdown := "## Not This\n\n### Nor This"

		assert.Empty(t, dochive.FirstHeading(markdown))
	})

	t.Run("trims heading whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Padded", dochive.FirstHeading("#   Padded   "))
	})

	t.Run("empty markdown yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, dochive.FirstHeading(""))
	})
}

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete source", func(t *testing.T) {
		t.Parallel()

		s := &dochive.Source{Name: "Core", Kind: dochive.SourceKindPrimary, RootPath: "/srv/core"}

		assert.NoError(t, s.Validate())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()

		s := &dochive.Source{Kind: dochive.SourceKindPrimary, RootPath: "/srv/core"}

		assert.Equal(t, dochive.EINVALID, dochive.ErrorCode(s.Validate()))
	})

	t.Run("rejects missing root path", func(t *testing.T) {
		t.Parallel()

		s := &dochive.Source{Name: "Core", Kind: dochive.SourceKindPrimary}

		assert.Equal(t, dochive.EINVALID, dochive.ErrorCode(s.Validate()))
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		s := &dochive.Source{Name: "Core", Kind: "theme", RootPath: "/srv/core"}

		assert.Equal(t, dochive.EINVALID, dochive.ErrorCode(s.Validate()))
	})
}
