package main

import (
	"fmt"

	"github.com/dochive/dochive"
)

// DocCmd shows a single document.
type DocCmd struct {
	Path string `arg:"" help:"Absolute or source-relative path of the document."`
	HTML bool   `help:"Print rendered HTML instead of the raw markdown."`
}

// Run executes the doc command.
func (c *DocCmd) Run(deps *Dependencies) error {
	tree, err := deps.Library.OrganizedDocs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	doc := tree.FindByPath(c.Path)
	if doc == nil {
		for _, candidate := range tree.Flatten() {
			if candidate.RelativePath == c.Path {
				doc = candidate
				break
			}
		}
	}
	if doc == nil {
		err := dochive.Errorf(dochive.ENOTFOUND, "document not found: %s", c.Path)
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title:  %s\n", doc.DisplayTitle())
	fmt.Fprintf(deps.Stdout, "Source: %s\n", doc.SourceName)
	fmt.Fprintf(deps.Stdout, "Path:   %s\n", doc.Path)
	if doc.VideoURL != "" {
		fmt.Fprintf(deps.Stdout, "Video:  %s\n", doc.VideoURL)
	}
	fmt.Fprintln(deps.Stdout)
	if c.HTML {
		fmt.Fprintln(deps.Stdout, doc.HTML)
	} else {
		fmt.Fprintln(deps.Stdout, doc.Raw)
	}
	return nil
}
