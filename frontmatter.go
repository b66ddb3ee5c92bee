package dochive

import (
	"strconv"
	"strings"
)

// DefaultOrder is assigned to documents whose frontmatter does not
// specify an order. High so unordered documents sort last.
const DefaultOrder = 999

// Frontmatter holds the recognized metadata keys from a document's
// frontmatter block. Unrecognized keys are preserved in Extra but unused
// by the core.
type Frontmatter struct {
	Title    string              `json:"title,omitempty"`
	Category string              `json:"category,omitempty"`
	Order    int                 `json:"order"`
	Video    string              `json:"video,omitempty"`
	Screens  []string            `json:"screens,omitempty"`
	Extra    map[string][]string `json:"extra,omitempty"`
}

// ParseFrontmatter splits content into a frontmatter block and the
// remaining body. The block is delimited by a leading "---" line and a
// closing "---" line, containing "key: value" pairs, "key:" followed by
// indented "- item" list lines, or inline "[a, b]" arrays.
//
// Parsing is line-oriented and best-effort: malformed lines are ignored,
// and the absence of a well-formed block yields empty frontmatter with
// the entire content treated as body. This dialect is intentionally
// looser than YAML (unquoted values, bare list items); see Parser docs.
func ParseFrontmatter(content string) (Frontmatter, string) {
	fm := Frontmatter{Order: DefaultOrder}

	block, body, ok := splitFrontmatterBlock(content)
	if !ok {
		return fm, content
	}

	raw := make(map[string][]string)
	var currentKey string

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// List item continuing the previous key.
		if currentKey != "" && strings.HasPrefix(trimmed, "- ") {
			item := strings.TrimSpace(trimmed[2:])
			if item != "" {
				raw[currentKey] = append(raw[currentKey], item)
			}
			continue
		}

		key, value, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		switch {
		case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
			// Inline array: [a, b, c]
			var items []string
			for _, item := range strings.Split(value[1:len(value)-1], ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, unquote(item))
				}
			}
			raw[key] = items
			currentKey = ""
		case value == "":
			// A block list may follow.
			currentKey = key
			raw[key] = nil
		default:
			raw[key] = []string{unquote(value)}
			currentKey = ""
		}
	}

	for key, values := range raw {
		first := ""
		if len(values) > 0 {
			first = values[0]
		}
		switch key {
		case "title":
			fm.Title = first
		case "category":
			fm.Category = first
		case "order":
			if n, err := strconv.Atoi(first); err == nil {
				fm.Order = n
			}
		case "video":
			fm.Video = first
		case "screens":
			fm.Screens = values
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string][]string)
			}
			fm.Extra[key] = values
		}
	}

	return fm, body
}

// splitFrontmatterBlock returns the frontmatter block and remaining body
// when content opens with a "---" line closed by another "---" line.
func splitFrontmatterBlock(content string) (block, body string, ok bool) {
	rest, found := strings.CutPrefix(content, "---")
	if !found {
		return "", "", false
	}
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 || strings.TrimSpace(rest[:nl]) != "" {
		return "", "", false
	}
	rest = rest[nl+1:]

	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", "", false
}

func unquote(s string) string {
	s = strings.Trim(s, `"`)
	return strings.Trim(s, "'")
}
