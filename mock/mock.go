// Package mock provides function-field mock implementations of dochive
// interfaces for testing.
package mock

import (
	"context"

	"github.com/dochive/dochive"
)

var _ dochive.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of dochive.Scanner.
type Scanner struct {
	ScanAllFn func(ctx context.Context) ([]dochive.FileInfo, error)
}

func (s *Scanner) ScanAll(ctx context.Context) ([]dochive.FileInfo, error) {
	return s.ScanAllFn(ctx)
}

var _ dochive.Parser = (*Parser)(nil)

// Parser is a mock implementation of dochive.Parser.
type Parser struct {
	ParseFn    func(ctx context.Context, info dochive.FileInfo) (*dochive.Document, error)
	ParseAllFn func(ctx context.Context, infos []dochive.FileInfo) ([]*dochive.Document, error)
}

func (p *Parser) Parse(ctx context.Context, info dochive.FileInfo) (*dochive.Document, error) {
	return p.ParseFn(ctx, info)
}

func (p *Parser) ParseAll(ctx context.Context, infos []dochive.FileInfo) ([]*dochive.Document, error) {
	return p.ParseAllFn(ctx, infos)
}

var _ dochive.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of dochive.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

var _ dochive.SourceLister = (*SourceLister)(nil)

// SourceLister is a mock implementation of dochive.SourceLister.
type SourceLister struct {
	SourcesFn func(ctx context.Context) ([]dochive.Source, error)
}

func (l *SourceLister) Sources(ctx context.Context) ([]dochive.Source, error) {
	return l.SourcesFn(ctx)
}

var _ dochive.Capability = (*Capability)(nil)

// Capability is a mock implementation of dochive.Capability.
type Capability struct {
	AvailableFn func() bool
	GenerateFn  func(ctx context.Context, prompt string, opts dochive.GenerateOptions) (string, error)
	EmbedFn     func(ctx context.Context, text string) ([]float32, error)
}

func (c *Capability) Available() bool {
	return c.AvailableFn()
}

func (c *Capability) Generate(ctx context.Context, prompt string, opts dochive.GenerateOptions) (string, error) {
	return c.GenerateFn(ctx, prompt, opts)
}

func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.EmbedFn(ctx, text)
}

var _ dochive.Library = (*Library)(nil)

// Library is a mock implementation of dochive.Library.
type Library struct {
	OrganizedDocsFn func(ctx context.Context) (*dochive.Tree, error)
	InvalidateAllFn func(ctx context.Context) error
	StatsFn         func(ctx context.Context) (dochive.CacheStats, error)
}

func (l *Library) OrganizedDocs(ctx context.Context) (*dochive.Tree, error) {
	return l.OrganizedDocsFn(ctx)
}

func (l *Library) InvalidateAll(ctx context.Context) error {
	return l.InvalidateAllFn(ctx)
}

func (l *Library) Stats(ctx context.Context) (dochive.CacheStats, error) {
	return l.StatsFn(ctx)
}

var _ dochive.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of dochive.Searcher.
type Searcher struct {
	SearchFn func(tree *dochive.Tree, query string) []dochive.SearchResult
}

func (s *Searcher) Search(tree *dochive.Tree, query string) []dochive.SearchResult {
	return s.SearchFn(tree, query)
}

var _ dochive.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of dochive.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, tree *dochive.Tree, query string) (*dochive.Answer, error)
}

func (a *Answerer) Answer(ctx context.Context, tree *dochive.Tree, query string) (*dochive.Answer, error) {
	return a.AnswerFn(ctx, tree, query)
}
