// Package search implements keyword scoring, snippet extraction, and AI
// answer generation over the organized documentation corpus.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dochive/dochive"
)

// Scoring weights for plain search.
const (
	titleWeight    = 10
	contentWeight  = 5
	filenameWeight = 3
)

// Scoring weights for the keyword pre-filter used by the answer engine.
const (
	phraseTitleWeight   = 20
	phraseContentWeight = 10
	wordTitleWeight     = 5
	wordContentWeight   = 2
	wordFilenameWeight  = 3
)

// maxResults caps plain search output.
const maxResults = 20

// stopWords are dropped from queries before per-word scoring, along with
// any word of one or two characters.
var stopWords = map[string]struct{}{
	"how": {}, "do": {}, "i": {}, "the": {}, "a": {}, "an": {}, "in": {},
	"to": {}, "for": {}, "of": {}, "and": {}, "or": {}, "is": {}, "are": {},
}

// Ensure Engine implements dochive.Searcher at compile time.
var _ dochive.Searcher = (*Engine)(nil)

// Engine scores and ranks documents against free-text queries using
// weighted case-insensitive substring matching.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Search scores every document in the tree against query and returns at
// most 20 results in descending score order. Ties preserve document
// order. Documents scoring zero are excluded.
func (e *Engine) Search(tree *dochive.Tree, query string) []dochive.SearchResult {
	if query == "" {
		return nil
	}
	queryLower := strings.ToLower(query)

	var results []dochive.SearchResult
	for _, doc := range tree.Flatten() {
		score := 0
		if strings.Contains(strings.ToLower(doc.Title), queryLower) {
			score += titleWeight
		}
		if strings.Contains(strings.ToLower(doc.Raw), queryLower) {
			score += contentWeight
		}
		if strings.Contains(strings.ToLower(doc.Filename), queryLower) {
			score += filenameWeight
		}
		if score == 0 {
			continue
		}

		results = append(results, dochive.SearchResult{
			Title:   doc.Title,
			Snippet: HighlightSnippet(doc.Raw, query),
			Path:    doc.Path,
			Source:  doc.SourceName,
			Score:   score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// KeywordFilter is the richer scoring pass used to narrow the corpus
// before AI answer generation: exact-phrase matches weigh heaviest, then
// each significant query word accumulates per-field weights. Results are
// sorted descending by score with ties broken by document order, and
// truncated to limit.
func (e *Engine) KeywordFilter(docs []*dochive.Document, query string, limit int) []*dochive.Document {
	queryLower := strings.ToLower(query)
	words := SignificantWords(query)

	type scoredDoc struct {
		doc   *dochive.Document
		score int
	}

	var scored []scoredDoc
	for _, doc := range docs {
		title := strings.ToLower(doc.Title)
		content := strings.ToLower(doc.Raw)
		filename := strings.ToLower(doc.Filename)

		score := 0
		if strings.Contains(title, queryLower) {
			score += phraseTitleWeight
		}
		if strings.Contains(content, queryLower) {
			score += phraseContentWeight
		}
		for _, word := range words {
			if strings.Contains(title, word) {
				score += wordTitleWeight
			}
			if strings.Contains(content, word) {
				score += wordContentWeight
			}
			if strings.Contains(filename, word) {
				score += wordFilenameWeight
			}
		}
		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	filtered := make([]*dochive.Document, len(scored))
	for i, s := range scored {
		filtered[i] = s.doc
	}
	return filtered
}

// SignificantWords lowercases and splits a query, dropping stop words
// and words of one or two characters.
func SignificantWords(query string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Snippet returns a window of at most length characters from content.
// Content that already fits is returned unchanged with no ellipsis.
// When the query occurs in content, the window is centered on its first
// case-insensitive occurrence with up to 75 characters of left context,
// with "..." marking whichever edges the window does not reach. When the
// query is absent, the first length characters plus "..." are returned.
func Snippet(content, query string, length int) string {
	if len(content) <= length {
		return content
	}

	if query != "" {
		pos := strings.Index(strings.ToLower(content), strings.ToLower(query))
		if pos >= 0 {
			start := pos - 75
			if start < 0 {
				start = 0
			}
			end := start + length
			if end > len(content) {
				end = len(content)
			}

			snippet := content[start:end]
			if start > 0 {
				snippet = "..." + snippet
			}
			if len(content) > end {
				snippet += "..."
			}
			return snippet
		}
	}

	return content[:length] + "..."
}

// HighlightSnippet is the plain-search variant of Snippet: a 200
// character window around the match (or the first 150 characters when
// the query is absent) with every occurrence of the query wrapped in a
// <mark> element.
func HighlightSnippet(content, query string) string {
	pos := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if pos < 0 {
		if len(content) <= 150 {
			return content
		}
		return content[:150] + "..."
	}

	start := pos - 75
	if start < 0 {
		start = 0
	}
	end := start + 200
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if len(content) > end {
		snippet += "..."
	}

	re, err := regexp.Compile("(?i)(" + regexp.QuoteMeta(query) + ")")
	if err != nil {
		return snippet
	}
	return re.ReplaceAllString(snippet, "<mark>$1</mark>")
}
