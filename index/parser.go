// Package index implements the documentation pipeline: parsing
// discovered files into documents, organizing them into a category tree,
// and serving the result through an invalidate-on-change cache.
package index

import (
	"context"
	"log/slog"
	"os"

	"github.com/dochive/dochive"
)

// Ensure Parser implements dochive.Parser at compile time.
var _ dochive.Parser = (*Parser)(nil)

// Parser converts discovered markdown files into Documents.
type Parser struct {
	renderer dochive.Renderer
	logger   *slog.Logger
}

// NewParser creates a new Parser.
func NewParser(renderer dochive.Renderer, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{renderer: renderer, logger: logger}
}

// Parse parses a single file. A file deleted between scan and parse
// returns nil with no error; the race with the scanner is tolerated, not
// retried.
func (p *Parser) Parse(ctx context.Context, info dochive.FileInfo) (*dochive.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(info.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	fm, body := dochive.ParseFrontmatter(string(data))

	html, err := p.renderer.Render(body)
	if err != nil {
		return nil, err
	}

	title := fm.Title
	if title == "" {
		title = dochive.FirstHeading(body)
	}

	return &dochive.Document{
		FileInfo:    info,
		Frontmatter: fm,
		HTML:        html,
		Raw:         body,
		Title:       title,
		VideoURL:    dochive.EmbedURL(fm.Video),
		Order:       fm.Order,
		Category:    fm.Category,
		Screens:     fm.Screens,
	}, nil
}

// ParseAll parses every file, dropping entries that failed to parse so
// no partial or error entries reach the organizer.
func (p *Parser) ParseAll(ctx context.Context, infos []dochive.FileInfo) ([]*dochive.Document, error) {
	docs := make([]*dochive.Document, 0, len(infos))
	for _, info := range infos {
		doc, err := p.Parse(ctx, info)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			p.logger.Debug("dropping unparsable file", "path", info.Path, "err", err)
			continue
		}
		if doc == nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
