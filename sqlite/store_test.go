package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/dochive/dochive/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a value", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "dochive:tree:abc", []byte("payload"), time.Hour))

		value, ok, err := store.Get(ctx, "dochive:tree:abc")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("payload"), value)
	})

	t.Run("misses on absent key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))

		_, ok, err := store.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("overwrites an existing key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "key", []byte("old"), time.Hour))
		require.NoError(t, store.Set(ctx, "key", []byte("new"), time.Hour))

		value, ok, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("new"), value)
	})

	t.Run("treats expired entries as misses", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "key", []byte("value"), 10*time.Millisecond))

		// Expiry timestamps have second precision.
		time.Sleep(1100 * time.Millisecond)

		_, ok, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero TTL never expires", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "key", []byte("value"), 0))

		_, ok, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestStore_DeleteMatching(t *testing.T) {
	t.Parallel()

	t.Run("removes entries under a prefix", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "dochive:tree:abc", []byte("a"), 0))
		require.NoError(t, store.Set(ctx, "dochive:organized:abc", []byte("b"), 0))
		require.NoError(t, store.Set(ctx, "other:key", []byte("c"), 0))

		require.NoError(t, store.DeleteMatching(ctx, "dochive:"))

		_, ok, err := store.Get(ctx, "dochive:tree:abc")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Get(ctx, "dochive:organized:abc")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Get(ctx, "other:key")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("matches LIKE metacharacters literally", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "pre_fix:a", []byte("a"), 0))
		require.NoError(t, store.Set(ctx, "preXfix:b", []byte("b"), 0))

		require.NoError(t, store.DeleteMatching(ctx, "pre_"))

		_, ok, err := store.Get(ctx, "pre_fix:a")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Get(ctx, "preXfix:b")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestStore_Baseline(t *testing.T) {
	t.Parallel()

	t.Run("empty before first set", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))

		baseline, err := store.Baseline(context.Background())
		require.NoError(t, err)
		assert.Empty(t, baseline)
	})

	t.Run("round-trips and overwrites", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.SetBaseline(ctx, "aaaa"))
		require.NoError(t, store.SetBaseline(ctx, "bbbb"))

		baseline, err := store.Baseline(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bbbb", baseline)
	})

	t.Run("delete clears the baseline", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.SetBaseline(ctx, "aaaa"))
		require.NoError(t, store.DeleteBaseline(ctx))

		baseline, err := store.Baseline(ctx)
		require.NoError(t, err)
		assert.Empty(t, baseline)
	})

	t.Run("survives cache invalidation", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewStore(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, store.SetBaseline(ctx, "aaaa"))
		require.NoError(t, store.DeleteMatching(ctx, ""))

		baseline, err := store.Baseline(ctx)
		require.NoError(t, err)
		assert.Equal(t, "aaaa", baseline)
	})
}
