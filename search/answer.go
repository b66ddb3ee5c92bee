package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dochive/dochive"
)

// Answer generation bounds.
const (
	contextDocLimit   = 20  // documents handed to the model
	contextBodyLen    = 800 // characters of body per context document
	answerTokenLimit  = 500 // generation output cap
	relatedTopicLimit = 3
	displayDocLimit   = 10 // formatted hits returned alongside the answer
	snippetLen        = 150
)

// citationRe matches [n] citation markers in answer text.
var citationRe = regexp.MustCompile(`\[(\d+)\]`)

// Ensure AnswerEngine implements dochive.Answerer at compile time.
var _ dochive.Answerer = (*AnswerEngine)(nil)

// AnswerEngine narrows the corpus with keyword filtering, prompts the AI
// capability for an answer with citations, and maps citation markers
// back to source documents.
type AnswerEngine struct {
	capability dochive.Capability
	engine     *Engine
	logger     *slog.Logger

	// Timeout bounds the generation call; a deadline is treated the
	// same as a generation failure (empty answer).
	Timeout time.Duration
}

// NewAnswerEngine creates a new AnswerEngine with a 30 second generation
// timeout.
func NewAnswerEngine(capability dochive.Capability, engine *Engine, logger *slog.Logger) *AnswerEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerEngine{
		capability: capability,
		engine:     engine,
		logger:     logger,
		Timeout:    30 * time.Second,
	}
}

// Answer generates an AI answer for query over the organized corpus.
// Returns EUNAVAILABLE when the capability cannot serve the request; the
// caller must re-dispatch to plain keyword search. Generation failures
// degrade to an empty answer, never an error.
func (a *AnswerEngine) Answer(ctx context.Context, tree *dochive.Tree, query string) (*dochive.Answer, error) {
	if query == "" {
		return nil, dochive.Errorf(dochive.EINVALID, "search query required")
	}
	if !a.capability.Available() {
		return nil, dochive.Errorf(dochive.EUNAVAILABLE, "AI capability not available")
	}

	docs := tree.Flatten()
	if len(docs) == 0 {
		return &dochive.Answer{
			Sources:   []dochive.AnswerSource{},
			Related:   []string{},
			Documents: []dochive.SearchResult{},
			NoResults: true,
		}, nil
	}

	// Narrow the corpus; when keyword filtering finds nothing, hand the
	// model the first documents anyway so it always receives context.
	contextDocs := a.engine.KeywordFilter(docs, query, contextDocLimit)
	if len(contextDocs) == 0 {
		contextDocs = docs
		if len(contextDocs) > contextDocLimit {
			contextDocs = contextDocs[:contextDocLimit]
		}
	}

	answer := a.generate(ctx, query, contextDocs)

	answer.Documents = []dochive.SearchResult{}
	for i, doc := range contextDocs {
		if i == displayDocLimit {
			break
		}
		answer.Documents = append(answer.Documents, dochive.SearchResult{
			Title:   doc.Title,
			Snippet: Snippet(doc.Raw, query, snippetLen),
			Path:    doc.Path,
			Source:  doc.SourceName,
		})
	}

	return answer, nil
}

// generate runs the model and parses its response. Any generation
// failure is logged and converted to an empty answer.
func (a *AnswerEngine) generate(ctx context.Context, query string, contextDocs []*dochive.Document) *dochive.Answer {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	response, err := a.capability.Generate(ctx, answerPrompt(query, contextDocs), dochive.GenerateOptions{
		MaxOutputTokens: answerTokenLimit,
	})
	if err != nil {
		a.logger.Warn("answer generation failed", "err", err)
		return &dochive.Answer{Sources: []dochive.AnswerSource{}, Related: []string{}}
	}

	return parseAnswer(response, contextDocs)
}

// answerPrompt builds the generation prompt: the question followed by a
// numbered context block of the narrowed documents.
func answerPrompt(query string, contextDocs []*dochive.Document) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful documentation assistant. A user is searching the documentation and asked:\n\n")
	fmt.Fprintf(&sb, "%q\n\n", query)
	sb.WriteString("Here are the most relevant documentation sections:\n\n")

	for i, doc := range contextDocs {
		body := doc.Raw
		if len(body) > contextBodyLen {
			body = body[:contextBodyLen]
		}
		fmt.Fprintf(&sb, "Document %d: %s\n%s\n\n", i+1, doc.Title, body)
	}

	sb.WriteString(`Provide a clear, concise answer that:
1. Directly answers their question using the documentation provided
2. Cites which documentation sections you're referencing by number (e.g., [1], [2])
3. Includes step-by-step instructions if applicable
4. Keep your answer under 200 words and friendly in tone

After your answer, on a new line starting with "RELATED:", suggest 2-3 related topics they might want to explore (just the topic names, comma-separated).

Format your response exactly like this:
[Your helpful answer here with citation numbers like [1] or [2]]

RELATED: topic1, topic2, topic3`)

	return sb.String()
}

// parseAnswer splits a model response on the RELATED: marker and maps
// [n] citations back to the context-ordered document list.
func parseAnswer(response string, contextDocs []*dochive.Document) *dochive.Answer {
	answerText, relatedText, _ := strings.Cut(response, "RELATED:")
	answerText = strings.TrimSpace(answerText)

	answer := &dochive.Answer{
		Text:    answerText,
		Sources: []dochive.AnswerSource{},
		Related: []string{},
	}

	// Citations resolve against context order, not the full corpus.
	seen := make(map[int]struct{})
	for _, match := range citationRe.FindAllStringSubmatch(answerText, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		idx := n - 1
		if idx < 0 || idx >= len(contextDocs) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		answer.Sources = append(answer.Sources, dochive.AnswerSource{
			Title: contextDocs[idx].Title,
			Path:  contextDocs[idx].Path,
		})
	}

	for _, topic := range strings.Split(relatedText, ",") {
		if len(answer.Related) == relatedTopicLimit {
			break
		}
		if topic = strings.TrimSpace(topic); topic != "" {
			answer.Related = append(answer.Related, topic)
		}
	}

	return answer
}
