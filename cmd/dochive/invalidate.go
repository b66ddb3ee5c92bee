package main

import (
	"fmt"

	"github.com/dochive/dochive"
)

// InvalidateCmd drops all cached data.
type InvalidateCmd struct{}

// Run executes the invalidate command.
func (c *InvalidateCmd) Run(deps *Dependencies) error {
	if err := deps.Library.InvalidateAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Cache invalidated.")
	return nil
}
