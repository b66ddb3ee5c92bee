package dochive

// Tree is the organized view of the documentation corpus: a list of
// categories plus documents no category claimed. Every document
// referenced by the tree also appears in the flattened set used for
// search; the tree is a view, not a separate store.
type Tree struct {
	Categories    []Category  `json:"categories"`
	Uncategorized []*Document `json:"uncategorized"`
}

// Category groups related documents, optionally with one level of
// subcategories.
type Category struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Slug          string        `json:"slug"`
	Docs          []*Document   `json:"docs"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a nested group within a category.
type Subcategory struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Slug        string      `json:"slug"`
	Docs        []*Document `json:"docs"`
}

// Flatten returns all documents in the tree as a single list: category
// documents first (subcategory documents after each category's own),
// then uncategorized documents.
func (t *Tree) Flatten() []*Document {
	if t == nil {
		return nil
	}

	var docs []*Document
	for _, cat := range t.Categories {
		docs = append(docs, cat.Docs...)
		for _, sub := range cat.Subcategories {
			docs = append(docs, sub.Docs...)
		}
	}
	return append(docs, t.Uncategorized...)
}

// FindByPath returns the document with the given absolute path, or nil
// if the tree does not reference it.
func (t *Tree) FindByPath(path string) *Document {
	if t == nil {
		return nil
	}
	for _, doc := range t.Flatten() {
		if doc.Path == path {
			return doc
		}
	}
	return nil
}

// Len returns the number of documents referenced by the tree.
func (t *Tree) Len() int {
	return len(t.Flatten())
}
