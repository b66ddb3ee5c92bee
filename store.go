package dochive

import (
	"context"
	"time"
)

// Store is a key/value store with per-entry expiry, plus a separate
// durable slot for the fingerprint baseline. Expired entries behave as
// misses.
type Store interface {
	// Get returns the value for key, or ok=false on a miss (absent or
	// expired entry).
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key for the given TTL. A zero TTL means
	// no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteMatching removes every entry whose key starts with prefix.
	DeleteMatching(ctx context.Context, prefix string) error

	// Baseline returns the stored fingerprint baseline, or an empty
	// string when none is set.
	Baseline(ctx context.Context) (string, error)

	// SetBaseline persists the fingerprint baseline.
	SetBaseline(ctx context.Context, fingerprint string) error

	// DeleteBaseline removes the fingerprint baseline.
	DeleteBaseline(ctx context.Context) error
}
