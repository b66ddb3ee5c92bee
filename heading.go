package dochive

import (
	"regexp"
	"strings"
)

var firstHeadingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// FirstHeading returns the text of the first level-1 heading in markdown,
// or an empty string if there is none.
func FirstHeading(markdown string) string {
	match := firstHeadingRe.FindStringSubmatch(markdown)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
