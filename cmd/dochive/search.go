package main

import (
	"fmt"
	"strings"

	"github.com/dochive/dochive"
)

// SearchCmd searches indexed documentation.
type SearchCmd struct {
	Query    []string `arg:"" help:"Search query."`
	Semantic bool     `help:"Rank by embedding similarity instead of keyword score."`
	Limit    int      `help:"Maximum number of semantic results." default:"10"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	tree, err := deps.Library.OrganizedDocs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	if c.Semantic {
		return c.runSemantic(deps, tree, query)
	}

	results := deps.Searcher.Search(tree, query)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}
	for _, result := range results {
		fmt.Fprintf(deps.Stdout, "%s (%s, score %d)\n  %s\n", result.Title, result.Source, result.Score, result.Snippet)
	}
	return nil
}

func (c *SearchCmd) runSemantic(deps *Dependencies, tree *dochive.Tree, query string) error {
	scored := deps.Semantic.Search(deps.Ctx, tree, query, c.Limit)
	if scored == nil {
		fmt.Fprintln(deps.Stderr, "Semantic search unavailable, falling back to keyword search.")
		for _, result := range deps.Searcher.Search(tree, query) {
			fmt.Fprintf(deps.Stdout, "%s (%s, score %d)\n  %s\n", result.Title, result.Source, result.Score, result.Snippet)
		}
		return nil
	}

	if len(scored) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}
	for _, hit := range scored {
		fmt.Fprintf(deps.Stdout, "%s (%s, similarity %.3f)\n", hit.Doc.DisplayTitle(), hit.Doc.SourceName, hit.Similarity)
	}
	return nil
}
