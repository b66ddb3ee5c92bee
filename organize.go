package dochive

import (
	"strings"
	"unicode"
)

// FallbackTree groups documents into one category per source when no AI
// organization is available. It is a pure function of the document list:
// the same input set yields the same categories and per-category
// membership regardless of input order (category order follows first
// appearance). No subcategories are produced.
func FallbackTree(docs []*Document) *Tree {
	tree := &Tree{Uncategorized: []*Document{}}

	index := make(map[string]int)
	for _, doc := range docs {
		key := string(doc.SourceKind) + "_" + Slugify(doc.SourceName)
		i, ok := index[key]
		if !ok {
			i = len(tree.Categories)
			index[key] = i
			tree.Categories = append(tree.Categories, Category{
				Name:          doc.SourceName,
				Description:   "Documentation from " + doc.SourceName,
				Slug:          key,
				Subcategories: []Subcategory{},
			})
		}
		tree.Categories[i].Docs = append(tree.Categories[i].Docs, doc)
	}

	return tree
}

// Slugify creates a URL-safe slug from a name. Converts to lowercase,
// replaces separator runs with single hyphens, drops everything else.
func Slugify(name string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
