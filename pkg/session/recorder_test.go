package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/worldforge/internal/runtime"
	"github.com/aretw0/worldforge/pkg/adapters/memory"
	"github.com/aretw0/worldforge/pkg/adapters/redis"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/aretw0/worldforge/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(dir domain.Direction, precision int) domain.ConversionRequest {
	return domain.ConversionRequest{
		Direction: dir,
		Parent:    domain.IdentityTransform(),
		Point:     domain.Vec(1, 2, 3),
		Precision: precision,
	}
}

func TestRecorder_RecordsSuccessesOnly(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	store := memory.NewStore(10)
	rec := session.NewRecorder(runtime.NewEngine(), store, session.WithClock(func() time.Time { return at }))
	ctx := context.Background()

	_, err := rec.Convert(ctx, request(domain.LocalToWorld, 4))
	require.NoError(t, err)

	_, err = rec.Convert(ctx, request(domain.LocalToWorld, 99))
	assert.ErrorIs(t, err, domain.ErrInvalidPrecision)

	bad := request(domain.WorldToLocal, 4)
	bad.Parent.Scale = domain.Vec(1, 1, 0)
	_, err = rec.Convert(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrDegenerateScale)

	rec.Validate(ctx, bad.Parent, domain.WorldToLocal)

	entries, err := rec.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LocalToWorld, entries[0].Direction)
	assert.Equal(t, 4, entries[0].Precision)
	assert.True(t, entries[0].Timestamp.Equal(at))
	assert.True(t, entries[0].Result.Equal(domain.Vec(1, 2, 3)))
}

func TestRecorder_UniqueIDsWithFrozenClock(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	rec := session.NewRecorder(runtime.NewEngine(), memory.NewStore(10), session.WithClock(func() time.Time { return at }))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := rec.Convert(ctx, request(domain.LocalToWorld, 2))
		require.NoError(t, err)
	}

	entries, err := rec.History(ctx, 0)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, e := range entries {
		ids[e.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestRecorder_Clear(t *testing.T) {
	rec := session.NewRecorder(runtime.NewEngine(), memory.NewStore(10))
	ctx := context.Background()

	_, err := rec.Convert(ctx, request(domain.WorldToLocal, 2))
	require.NoError(t, err)
	require.NoError(t, rec.Clear(ctx))

	n, err := rec.Store().Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

type failingStore struct{ ports.HistoryStore }

func (failingStore) Append(context.Context, domain.HistoryEntry) error {
	return errors.New("backend down")
}

func TestRecorder_AppendFailureKeepsResult(t *testing.T) {
	rec := session.NewRecorder(runtime.NewEngine(), failingStore{memory.NewStore(1)})

	res, err := rec.Convert(context.Background(), request(domain.LocalToWorld, 3))
	require.NoError(t, err)
	assert.Equal(t, "(1.000, 2.000, 3.000)", res.Format())
}

type countingLocker struct {
	mu       sync.Mutex
	locks    int
	unlocks  int
	failWith error
}

func (c *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	c.locks++
	return func(context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.unlocks++
		return nil
	}, nil
}

func TestRecorder_UsesLocker(t *testing.T) {
	locker := &countingLocker{}
	rec := session.NewRecorder(runtime.NewEngine(), memory.NewStore(10), session.WithLocker(locker))
	ctx := context.Background()

	_, err := rec.Convert(ctx, request(domain.LocalToWorld, 2))
	require.NoError(t, err)
	require.NoError(t, rec.Clear(ctx))
	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)

	locker.failWith = context.DeadlineExceeded
	_, err = rec.Record(ctx, request(domain.LocalToWorld, 2), domain.ConversionResult{Output: domain.Vec(0, 0, 0), Precision: 2})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRecorder_ConcurrentWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithLimit(100))
	rec := session.NewRecorder(runtime.NewEngine(), store,
		session.WithLocker(redis.NewLocker(client, redis.DefaultPrefix)),
	)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = rec.Convert(ctx, request(domain.LocalToWorld, 2))
		}()
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.False(t, mr.Exists(redis.DefaultPrefix+"lock:history"), "lock must be released")
}
