package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dochive/dochive"
)

// organizerTemperature keeps the taxonomy output conservative.
const organizerTemperature = float32(0.3)

// previewLen is how much of each document body the organizer prompt
// includes.
const previewLen = 200

// Organizer groups documents into a category tree, preferring an AI
// organization and falling back to deterministic source grouping.
type Organizer struct {
	capability dochive.Capability
	store      dochive.Store
	logger     *slog.Logger

	// TTL for the memoized organization; invalidated together with the
	// tree cache via the shared key prefix.
	TTL time.Duration

	// Timeout bounds the AI call; a deadline is treated the same as an
	// unavailable capability.
	Timeout time.Duration
}

// NewOrganizer creates a new Organizer with a one-week memoization TTL
// and a 30 second AI timeout.
func NewOrganizer(capability dochive.Capability, store dochive.Store, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{
		capability: capability,
		store:      store,
		logger:     logger,
		TTL:        7 * 24 * time.Hour,
		Timeout:    30 * time.Second,
	}
}

// Organize groups docs into a tree. Any capability failure, undecodable
// response, or response without categories degrades to the deterministic
// fallback; Organize never returns an error for those cases.
func (o *Organizer) Organize(ctx context.Context, docs []*dochive.Document, fingerprint string) *dochive.Tree {
	if !o.capability.Available() {
		return dochive.FallbackTree(docs)
	}

	memoKey := organizedKey(fingerprint)
	if o.store != nil {
		if data, ok, err := o.store.Get(ctx, memoKey); err == nil && ok {
			var tree dochive.Tree
			if err := json.Unmarshal(data, &tree); err == nil {
				return &tree
			}
		}
	}

	tree, err := o.organizeWithAI(ctx, docs)
	if err != nil {
		o.logger.Warn("ai organization failed, using source grouping", "err", err)
		return dochive.FallbackTree(docs)
	}

	if o.store != nil {
		if data, err := json.Marshal(tree); err == nil {
			if err := o.store.Set(ctx, memoKey, data, o.TTL); err != nil {
				o.logger.Warn("failed to memoize organization", "err", err)
			}
		}
	}

	return tree
}

func (o *Organizer) organizeWithAI(ctx context.Context, docs []*dochive.Document) (*dochive.Tree, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	temp := organizerTemperature
	response, err := o.capability.Generate(ctx, organizationPrompt(docs), dochive.GenerateOptions{
		Temperature: &temp,
	})
	if err != nil {
		return nil, err
	}

	return parseOrganization(response, docs)
}

// organizationPrompt builds the prompt instructing the model to emit
// only a JSON taxonomy over the enumerated documents.
func organizationPrompt(docs []*dochive.Document) string {
	var sb strings.Builder

	sb.WriteString("You are organizing user documentation for an application. Below is a list of all documentation files found across its installed sources.\n\n")
	sb.WriteString("Your task is to:\n")
	sb.WriteString("1. Create logical categories that group related documentation\n")
	sb.WriteString("2. Assign each document to the most appropriate category\n")
	sb.WriteString("3. Create a hierarchical structure if subcategories make sense\n")
	sb.WriteString("4. Provide a brief description for each category\n")
	sb.WriteString("5. Order documents within categories in a logical learning sequence\n\n")
	sb.WriteString("Documentation Files:\n")

	for i, doc := range docs {
		preview := doc.Raw
		if len(preview) > previewLen {
			preview = preview[:previewLen]
		}
		fmt.Fprintf(&sb, "[%d] %s (from %s %s)\nPreview: %s...\n\n",
			i, doc.DisplayTitle(), doc.SourceKind, doc.SourceName, preview)
	}

	sb.WriteString(`Please respond with ONLY valid JSON in this exact format:
{
  "categories": [
    {
      "name": "Category Name",
      "description": "Brief description of what this category covers",
      "slug": "category-slug",
      "docs": [0, 2, 5],
      "subcategories": [
        {
          "name": "Subcategory Name",
          "description": "Brief description",
          "slug": "subcategory-slug",
          "docs": [1, 3]
        }
      ]
    }
  ],
  "uncategorized": [4]
}

Use the document numbers [0], [1], etc. from the list above.`)

	return sb.String()
}

// aiTaxonomy mirrors the JSON the model is asked to produce, with
// documents referenced by index.
type aiTaxonomy struct {
	Categories []struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		Slug          string `json:"slug"`
		Docs          []int  `json:"docs"`
		Subcategories []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Slug        string `json:"slug"`
			Docs        []int  `json:"docs"`
		} `json:"subcategories"`
	} `json:"categories"`
	Uncategorized []int `json:"uncategorized"`
}

// parseOrganization extracts the first balanced JSON object from a raw
// model response (tolerating preamble and postamble text), decodes it,
// and resolves document indices. Indices outside [0, len(docs)) are
// silently dropped.
func parseOrganization(response string, docs []*dochive.Document) (*dochive.Tree, error) {
	region := extractJSONObject(response)
	if region == "" {
		return nil, dochive.Errorf(dochive.EUNAVAILABLE, "no JSON object in AI response")
	}

	var taxonomy aiTaxonomy
	if err := json.Unmarshal([]byte(region), &taxonomy); err != nil {
		return nil, dochive.Errorf(dochive.EUNAVAILABLE, "undecodable AI response: %s", err)
	}
	if taxonomy.Categories == nil {
		return nil, dochive.Errorf(dochive.EUNAVAILABLE, "AI response lacks categories")
	}

	resolve := func(indices []int) []*dochive.Document {
		resolved := []*dochive.Document{}
		for _, i := range indices {
			if i >= 0 && i < len(docs) {
				resolved = append(resolved, docs[i])
			}
		}
		return resolved
	}

	tree := &dochive.Tree{Uncategorized: resolve(taxonomy.Uncategorized)}
	for _, cat := range taxonomy.Categories {
		category := dochive.Category{
			Name:          cat.Name,
			Description:   cat.Description,
			Slug:          cat.Slug,
			Docs:          resolve(cat.Docs),
			Subcategories: []dochive.Subcategory{},
		}
		for _, sub := range cat.Subcategories {
			category.Subcategories = append(category.Subcategories, dochive.Subcategory{
				Name:        sub.Name,
				Description: sub.Description,
				Slug:        sub.Slug,
				Docs:        resolve(sub.Docs),
			})
		}
		tree.Categories = append(tree.Categories, category)
	}

	return tree, nil
}

// extractJSONObject returns the first balanced {...} region of s,
// skipping braces inside JSON strings. Returns "" when no balanced
// object exists.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
