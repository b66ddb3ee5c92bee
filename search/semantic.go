package search

import (
	"context"
	"log/slog"

	"github.com/dochive/dochive"
)

// embedTextLen is how much of each document body is embedded alongside
// its title.
const embedTextLen = 2000

// Semantic ranks documents by embedding similarity when the AI
// capability exposes embeddings. Every method degrades to a no-op when
// it does not; Semantic never errors for missing capability.
type Semantic struct {
	capability dochive.Capability
	logger     *slog.Logger
}

// NewSemantic creates a new Semantic.
func NewSemantic(capability dochive.Capability, logger *slog.Logger) *Semantic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Semantic{capability: capability, logger: logger}
}

// EmbedQuery returns the query's embedding, or nil when embeddings are
// unavailable or fail.
func (s *Semantic) EmbedQuery(ctx context.Context, query string) []float32 {
	if !s.capability.Available() {
		return nil
	}
	embedding, err := s.capability.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("failed to embed query", "err", err)
		return nil
	}
	return embedding
}

// EmbedDocuments returns copies of docs with embeddings populated from
// each document's title and leading body text. The input documents are
// not mutated (cached trees are shared). Documents that fail to embed
// are carried through without an embedding; similarity ranking skips
// them. When embeddings are unavailable the input is returned unchanged.
func (s *Semantic) EmbedDocuments(ctx context.Context, docs []*dochive.Document) []*dochive.Document {
	if !s.capability.Available() {
		return docs
	}

	embedded := make([]*dochive.Document, 0, len(docs))
	for _, doc := range docs {
		clone := *doc

		body := doc.Raw
		if len(body) > embedTextLen {
			body = body[:embedTextLen]
		}
		embedding, err := s.capability.Embed(ctx, doc.Title+"\n\n"+body)
		if err != nil {
			s.logger.Warn("failed to embed document", "path", doc.Path, "err", err)
		} else {
			clone.Embedding = embedding
		}

		embedded = append(embedded, &clone)
	}
	return embedded
}

// Search embeds the query and the corpus and returns the top limit
// documents by cosine similarity. Returns nil when embeddings are
// unavailable, so callers fall back to keyword search.
func (s *Semantic) Search(ctx context.Context, tree *dochive.Tree, query string, limit int) []dochive.ScoredDocument {
	queryEmbedding := s.EmbedQuery(ctx, query)
	if len(queryEmbedding) == 0 {
		return nil
	}

	docs := s.EmbedDocuments(ctx, tree.Flatten())
	return dochive.RankBySimilarity(queryEmbedding, docs, limit)
}
