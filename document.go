package dochive

import (
	"context"
	"time"
)

// FileInfo identifies a discovered documentation file within one scan
// cycle. Identity is Path; FileInfos are recreated on every scan, never
// updated in place.
type FileInfo struct {
	Path         string     `json:"path"`         // absolute
	RelativePath string     `json:"relativePath"` // relative to the doc folder
	SourceName   string     `json:"sourceName"`
	SourceKind   SourceKind `json:"sourceKind"`
	Filename     string     `json:"filename"`
	ModifiedAt   time.Time  `json:"modifiedAt"`
}

// Document is a parsed documentation file: the scan metadata plus the
// frontmatter, rendered body, and derived fields. Documents are owned by
// the parser and consumed read-only downstream.
type Document struct {
	FileInfo

	Frontmatter Frontmatter `json:"frontmatter"`
	HTML        string      `json:"html"` // rendered body
	Raw         string      `json:"raw"`  // body with frontmatter stripped

	// Title resolution priority: frontmatter title, first level-1
	// heading in the body, empty string. Callers substitute the
	// filename for display when empty.
	Title string `json:"title"`

	VideoURL string   `json:"videoUrl"` // normalized embed URL
	Order    int      `json:"order"`
	Category string   `json:"category"`
	Screens  []string `json:"screens,omitempty"`

	// Embedding is populated only when an embedding-capable service is
	// configured.
	Embedding []float32 `json:"embedding,omitempty"`
}

// DisplayTitle returns the title, falling back to the filename.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Filename
}

// Scanner discovers documentation files across the active sources.
type Scanner interface {
	// ScanAll walks each source's documentation folders and returns
	// every markdown file found, in discovery order. Unreadable
	// directories are skipped; a missing root yields zero files for
	// that source, not an error.
	ScanAll(ctx context.Context) ([]FileInfo, error)
}

// Parser converts discovered files into Documents.
type Parser interface {
	// Parse parses a single file. Returns nil with no error if the
	// file no longer exists (a race with the scanner is tolerated).
	Parse(ctx context.Context, info FileInfo) (*Document, error)

	// ParseAll parses every file, dropping entries that failed to
	// parse. No partial or error entries surface to callers.
	ParseAll(ctx context.Context, infos []FileInfo) ([]*Document, error)
}

// Renderer converts markdown text to HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}
