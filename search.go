package dochive

import "context"

// SearchResult is one keyword-search hit. Computed per query, never
// persisted.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Path    string `json:"path"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
}

// AnswerSource is a document cited by an AI-generated answer.
type AnswerSource struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Answer is the result of AI answer generation. Computed per query,
// never persisted.
type Answer struct {
	Text    string         `json:"answer"`
	Sources []AnswerSource `json:"sources"`
	Related []string       `json:"related"`

	// Documents are the top keyword-filtered hits that accompanied the
	// answer, for display alongside it.
	Documents []SearchResult `json:"documents"`

	// NoResults is set when the corpus was empty and no generation was
	// attempted.
	NoResults bool `json:"noResults,omitempty"`
}

// Searcher scores and ranks documents against a free-text query.
type Searcher interface {
	// Search returns at most 20 results sorted descending by score,
	// ties broken by document order.
	Search(tree *Tree, query string) []SearchResult
}

// Answerer generates an AI answer over the organized corpus.
type Answerer interface {
	// Answer returns EUNAVAILABLE when the AI capability cannot serve
	// the request; the caller must re-dispatch to plain search.
	Answer(ctx context.Context, tree *Tree, query string) (*Answer, error)
}

// CacheStats is read-only cache introspection.
type CacheStats struct {
	IsCached      bool   `json:"isCached"`
	Fingerprint   string `json:"fingerprint"`
	BaselineMatch bool   `json:"baselineMatch"`
	CacheKey      string `json:"cacheKey"`
	Documents     int    `json:"documents"`
}

// Library serves the organized documentation corpus with an
// invalidate-on-change cache in front of the scan/parse/organize
// pipeline.
type Library interface {
	// OrganizedDocs returns the current organized tree, regenerating
	// it when the corpus fingerprint changed or the cached entry
	// expired. The returned tree is stable for the entry's lifetime;
	// callers must not mutate it.
	OrganizedDocs(ctx context.Context) (*Tree, error)

	// InvalidateAll deletes every cached entry and the fingerprint
	// baseline, unconditionally.
	InvalidateAll(ctx context.Context) error

	// Stats returns cache introspection with no side effects.
	Stats(ctx context.Context) (CacheStats, error)
}
