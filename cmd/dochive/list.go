package main

import (
	"fmt"

	"github.com/dochive/dochive"
)

// ListCmd prints the organized documentation tree.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	tree, err := deps.Library.OrganizedDocs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	if tree.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No documentation found.")
		return nil
	}

	for _, cat := range tree.Categories {
		fmt.Fprintf(deps.Stdout, "%s\n", cat.Name)
		if cat.Description != "" {
			fmt.Fprintf(deps.Stdout, "  %s\n", cat.Description)
		}
		for _, doc := range cat.Docs {
			fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", doc.DisplayTitle(), doc.RelativePath)
		}
		for _, sub := range cat.Subcategories {
			fmt.Fprintf(deps.Stdout, "  %s\n", sub.Name)
			for _, doc := range sub.Docs {
				fmt.Fprintf(deps.Stdout, "    - %s (%s)\n", doc.DisplayTitle(), doc.RelativePath)
			}
		}
	}

	if len(tree.Uncategorized) > 0 {
		fmt.Fprintln(deps.Stdout, "Uncategorized")
		for _, doc := range tree.Uncategorized {
			fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", doc.DisplayTitle(), doc.RelativePath)
		}
	}

	return nil
}
