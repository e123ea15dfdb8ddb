package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore implementation
// adheres to the defined interface contract. The store must be empty and bounded by limit.
func RunHistoryStoreContract(t *testing.T, store HistoryStore, limit int) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := func(i int) domain.HistoryEntry {
		req := domain.ConversionRequest{
			Direction: domain.LocalToWorld,
			Parent:    domain.IdentityTransform(),
			Point:     domain.Vec(int64(i), 0, 0),
			Precision: domain.DefaultPrecision,
		}
		return domain.NewHistoryEntry(fmt.Sprintf("entry-%03d", i), req, domain.ConversionResult{Output: req.Point, Precision: req.Precision}, base.Add(time.Duration(i)*time.Second))
	}

	t.Run("Append and List", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		for i := 0; i < 3; i++ {
			require.NoError(t, store.Append(ctx, entry(i)), "Append should not return error")
		}

		got, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "entry-002", got[0].ID, "List should return newest first")
		assert.Equal(t, "entry-000", got[2].ID)
		assert.True(t, got[0].Input.Equal(domain.Vec(2, 0, 0)), "decimal values must survive persistence")
		assert.True(t, got[0].Timestamp.Equal(base.Add(2*time.Second)))
		assert.Equal(t, domain.LocalToWorld, got[0].Direction)
		assert.Equal(t, domain.DefaultPrecision, got[0].Precision)
	})

	t.Run("List Limit", func(t *testing.T) {
		got, err := store.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "entry-002", got[0].ID)
		assert.Equal(t, "entry-001", got[1].ID)
	})

	t.Run("Len", func(t *testing.T) {
		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Eviction", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		for i := 0; i < limit+5; i++ {
			require.NoError(t, store.Append(ctx, entry(i)))
		}

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, limit, n, "store must not grow past its limit")

		got, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, limit)
		assert.Equal(t, fmt.Sprintf("entry-%03d", limit+4), got[0].ID)
		assert.Equal(t, "entry-005", got[limit-1].ID, "oldest entries are evicted first")
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
