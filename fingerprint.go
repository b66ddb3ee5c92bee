package dochive

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes a deterministic change-detection hash over a set
// of discovered files. It hashes the sorted "path:mtime" pairs, so two
// scans over identical path/mtime sets yield identical fingerprints
// regardless of traversal order, and any addition, removal, or
// modification changes the result.
//
// This is a change detector, not a security primitive.
func Fingerprint(files []FileInfo) string {
	pairs := make([]string, 0, len(files))
	for _, f := range files {
		pairs = append(pairs, f.Path+":"+strconv.FormatInt(f.ModifiedAt.Unix(), 10))
	}
	sort.Strings(pairs)

	h := xxhash.Sum64String(strings.Join(pairs, "|"))
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
