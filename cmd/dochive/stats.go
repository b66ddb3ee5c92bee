package main

import (
	"fmt"

	"github.com/dochive/dochive"
)

// StatsCmd shows cache statistics.
type StatsCmd struct{}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Library.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dochive.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cached:         %t\n", stats.IsCached)
	fmt.Fprintf(deps.Stdout, "Baseline match: %t\n", stats.BaselineMatch)
	fmt.Fprintf(deps.Stdout, "Fingerprint:    %s\n", stats.Fingerprint)
	fmt.Fprintf(deps.Stdout, "Cache key:      %s\n", stats.CacheKey)
	fmt.Fprintf(deps.Stdout, "Documents:      %d\n", stats.Documents)
	return nil
}
