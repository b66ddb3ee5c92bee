// Package fs provides filesystem-based discovery of documentation files.
package fs

import (
	"context"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dochive/dochive"
)

// DocDirs are the conventional documentation folder names scanned inside
// each source root.
var DocDirs = []string{"docs", "documentation"}

// Ensure Scanner implements dochive.Scanner at compile time.
var _ dochive.Scanner = (*Scanner)(nil)

// Scanner walks the documentation folders of every active source and
// collects markdown files with their modification times.
type Scanner struct {
	lister dochive.SourceLister
	logger *slog.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(lister dochive.SourceLister, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{lister: lister, logger: logger}
}

// ScanAll returns every markdown file under each source's documentation
// folders, in discovery order. Discovery order is not guaranteed stable
// across filesystems; callers must not rely on it for correctness.
//
// Unreadable directories are skipped, and a missing documentation folder
// yields zero files for that source rather than an error.
func (s *Scanner) ScanAll(ctx context.Context) ([]dochive.FileInfo, error) {
	sources, err := s.lister.Sources(ctx)
	if err != nil {
		return nil, err
	}

	var files []dochive.FileInfo
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files = append(files, s.scanSource(source)...)
	}
	return files, nil
}

func (s *Scanner) scanSource(source dochive.Source) []dochive.FileInfo {
	var files []dochive.FileInfo

	for _, dir := range DocDirs {
		root := filepath.Join(source.RootPath, dir)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				s.logger.Debug("skipping unreadable entry", "path", path, "err", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&iofs.ModeSymlink != 0 {
				return nil
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(name), ".md") {
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				s.logger.Debug("skipping unstatable file", "path", path, "err", err)
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = name
			}

			files = append(files, dochive.FileInfo{
				Path:         path,
				RelativePath: rel,
				SourceName:   source.Name,
				SourceKind:   source.Kind,
				Filename:     name,
				ModifiedAt:   fi.ModTime(),
			})
			return nil
		})
		if err != nil {
			s.logger.Debug("walk aborted", "root", root, "err", err)
		}
	}

	return files
}
