package main

import (
	"fmt"
	"strings"

	"github.com/dochive/dochive"
)

// AskCmd asks a question answered from the documentation.
type AskCmd struct {
	Question []string `arg:"" help:"Question to answer."`
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := strings.Join(c.Question, " ")

	tree, err := deps.Library.OrganizedDocs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	answer, err := deps.Answerer.Answer(deps.Ctx, tree, question)
	if err != nil {
		if dochive.ErrorCode(err) != dochive.EUNAVAILABLE {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
			return err
		}
		// No AI capability. Fall back to keyword search.
		fmt.Fprintln(deps.Stderr, "AI answers unavailable, showing search results instead.")
		for _, result := range deps.Searcher.Search(tree, question) {
			fmt.Fprintf(deps.Stdout, "%s (%s)\n  %s\n", result.Title, result.Source, result.Snippet)
		}
		return nil
	}

	if answer.NoResults {
		fmt.Fprintln(deps.Stdout, "No documentation found.")
		return nil
	}

	if answer.Text != "" {
		fmt.Fprintln(deps.Stdout, answer.Text)
	}

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, source := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", source.Title, source.Path)
		}
	}

	if len(answer.Related) > 0 {
		fmt.Fprintln(deps.Stdout, "\nRelated topics:")
		for _, topic := range answer.Related {
			fmt.Fprintf(deps.Stdout, "  - %s\n", topic)
		}
	}

	return nil
}
