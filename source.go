package dochive

import "context"

// SourceKind identifies what kind of extension unit a source is.
type SourceKind string

// Source kinds. A host installation has exactly one primary source (plus
// optionally the primary's parent) and any number of extensions.
const (
	SourceKindPrimary   SourceKind = "primary"
	SourceKindExtension SourceKind = "extension"
)

// Source represents an active extension unit that may contain a
// documentation folder. Sources are derived from host configuration at
// scan time and are read-only.
type Source struct {
	Name     string     `json:"name"`
	Kind     SourceKind `json:"kind"`
	RootPath string     `json:"rootPath"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.RootPath == "" {
		return Errorf(EINVALID, "source root path required")
	}
	if s.Kind != SourceKindPrimary && s.Kind != SourceKindExtension {
		return Errorf(EINVALID, "unknown source kind %q", s.Kind)
	}
	return nil
}

// SourceLister enumerates the active sources to scan for documentation.
type SourceLister interface {
	// Sources returns the active primary source, its parent (when the
	// primary derives from another source), and all active extensions.
	Sources(ctx context.Context) ([]Source, error)
}
