package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/worldforge/pkg/adapters/memory"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore(8)
	ports.RunHistoryStoreContract(t, store, 8)
}

func TestMemoryStore_DefaultLimit(t *testing.T) {
	store := memory.NewStore(0)
	ports.RunHistoryStoreContract(t, store, domain.DefaultHistoryLimit)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(50)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, domain.HistoryEntry{Direction: domain.LocalToWorld})
		}()
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
