package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dochive/dochive"
)

// baselineKey is the meta slot holding the fingerprint baseline.
const baselineKey = "files_fingerprint"

// Ensure Store implements dochive.Store at compile time.
var _ dochive.Store = (*Store)(nil)

// Store implements dochive.Store using SQLite. Expired entries are
// treated as misses and removed lazily on read.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Get returns the value for key, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var expiresAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT value, expires_at FROM cache_entries WHERE key = ?
	`, key).Scan(&value, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if expiresAt != "" {
		exp, parseErr := time.Parse(time.RFC3339, expiresAt)
		if parseErr != nil {
			return nil, false, fmt.Errorf("failed to parse expires_at: %w", parseErr)
		}
		if !time.Now().UTC().Before(exp) {
			_, _ = s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
			return nil, false, nil
		}
	}

	return value, true, nil
}

// Set stores value under key for the given TTL. A zero TTL means no
// expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := ""
	if ttl > 0 {
		expiresAt = time.Now().UTC().Add(ttl).Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	return err
}

// DeleteMatching removes every entry whose key starts with prefix.
func (s *Store) DeleteMatching(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cache_entries WHERE key LIKE ? ESCAPE '\'
	`, escapeLike(prefix)+"%")
	return err
}

// Baseline returns the stored fingerprint baseline, or an empty string
// when none is set.
func (s *Store) Baseline(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM meta WHERE key = ?
	`, baselineKey).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetBaseline persists the fingerprint baseline.
func (s *Store) SetBaseline(ctx context.Context, fingerprint string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, baselineKey, fingerprint)
	return err
}

// DeleteBaseline removes the fingerprint baseline.
func (s *Store) DeleteBaseline(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, baselineKey)
	return err
}

// escapeLike escapes LIKE metacharacters so prefixes match literally.
func escapeLike(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
