// Package goldmark renders markdown to HTML for documentation display.
package goldmark

import (
	"bytes"

	"github.com/dochive/dochive"
	gm "github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements dochive.Renderer at compile time.
var _ dochive.Renderer = (*Renderer)(nil)

// Renderer wraps goldmark configured with GFM tables/strikethrough and
// footnotes, matching the markdown-extra dialect documentation authors
// use.
type Renderer struct {
	md gm.Markdown
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	md := gm.New(
		gm.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		gm.WithRendererOptions(
			// Documentation files are trusted local content; raw HTML
			// blocks in them must survive rendering.
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts markdown text to HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
