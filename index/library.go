package index

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dochive/dochive"
	"golang.org/x/sync/singleflight"
)

// Cache key layout. Everything lives under keyPrefix so one prefix
// delete invalidates both the tree cache and the organizer memo.
const (
	keyPrefix          = "dochive:"
	treeKeyPrefix      = keyPrefix + "tree:"
	organizedKeyPrefix = keyPrefix + "organized:"
)

func treeKey(fingerprint string) string { return treeKeyPrefix + fingerprint }

func organizedKey(fingerprint string) string { return organizedKeyPrefix + fingerprint }

// Ensure Library implements dochive.Library at compile time.
var _ dochive.Library = (*Library)(nil)

// Library owns the invalidate-on-change cache lifecycle in front of the
// scan, parse, organize pipeline.
type Library struct {
	scanner   dochive.Scanner
	parser    dochive.Parser
	organizer *Organizer
	store     dochive.Store
	logger    *slog.Logger

	// TTL for cached trees; defaults to one week.
	TTL time.Duration

	// group collapses concurrent regenerations for the same
	// fingerprint into a single run.
	group singleflight.Group
}

// NewLibrary creates a new Library.
func NewLibrary(scanner dochive.Scanner, parser dochive.Parser, organizer *Organizer, store dochive.Store, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		scanner:   scanner,
		parser:    parser,
		organizer: organizer,
		store:     store,
		logger:    logger,
		TTL:       7 * 24 * time.Hour,
	}
}

// OrganizedDocs returns the current organized tree, regenerating it when
// the corpus fingerprint changed or the cached entry expired. The
// returned tree must not be mutated by callers.
func (l *Library) OrganizedDocs(ctx context.Context) (*dochive.Tree, error) {
	files, err := l.scanner.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	fingerprint := dochive.Fingerprint(files)

	baseline, err := l.store.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	if baseline != fingerprint {
		// Files changed since the last scan; drop every stored entry
		// and move the baseline forward.
		if err := l.store.DeleteMatching(ctx, keyPrefix); err != nil {
			return nil, err
		}
		if err := l.store.SetBaseline(ctx, fingerprint); err != nil {
			return nil, err
		}
	}

	if tree, ok := l.cachedTree(ctx, fingerprint); ok {
		return tree, nil
	}

	// Concurrent misses on the same fingerprint collapse into one
	// regeneration; other callers await its result.
	v, err, _ := l.group.Do(fingerprint, func() (any, error) {
		if tree, ok := l.cachedTree(ctx, fingerprint); ok {
			return tree, nil
		}
		return l.regenerate(ctx, files, fingerprint)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dochive.Tree), nil
}

func (l *Library) cachedTree(ctx context.Context, fingerprint string) (*dochive.Tree, bool) {
	data, ok, err := l.store.Get(ctx, treeKey(fingerprint))
	if err != nil || !ok {
		return nil, false
	}
	var tree dochive.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		l.logger.Warn("discarding corrupt cached tree", "fingerprint", fingerprint, "err", err)
		return nil, false
	}
	return &tree, true
}

func (l *Library) regenerate(ctx context.Context, files []dochive.FileInfo, fingerprint string) (*dochive.Tree, error) {
	begin := time.Now()

	docs, err := l.parser.ParseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	tree := l.organizer.Organize(ctx, docs, fingerprint)

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	if err := l.store.Set(ctx, treeKey(fingerprint), data, l.TTL); err != nil {
		return nil, err
	}

	l.logger.Info("regenerated documentation tree",
		"fingerprint", fingerprint,
		"documents", len(docs),
		"categories", len(tree.Categories),
		"duration", time.Since(begin),
	)
	return tree, nil
}

// InvalidateAll deletes every cached entry and the fingerprint baseline,
// unconditionally.
func (l *Library) InvalidateAll(ctx context.Context) error {
	if err := l.store.DeleteMatching(ctx, keyPrefix); err != nil {
		return err
	}
	return l.store.DeleteBaseline(ctx)
}

// Stats returns cache introspection with no side effects.
func (l *Library) Stats(ctx context.Context) (dochive.CacheStats, error) {
	files, err := l.scanner.ScanAll(ctx)
	if err != nil {
		return dochive.CacheStats{}, err
	}
	fingerprint := dochive.Fingerprint(files)

	baseline, err := l.store.Baseline(ctx)
	if err != nil {
		return dochive.CacheStats{}, err
	}

	_, cached, err := l.store.Get(ctx, treeKey(fingerprint))
	if err != nil {
		return dochive.CacheStats{}, err
	}

	return dochive.CacheStats{
		IsCached:      cached,
		Fingerprint:   fingerprint,
		BaselineMatch: baseline == fingerprint,
		CacheKey:      treeKey(fingerprint),
		Documents:     len(files),
	}, nil
}
