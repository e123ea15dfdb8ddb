package ports

import (
	"context"

	"github.com/aretw0/worldforge/pkg/domain"
)

// HistoryStore defines the interface for persisting conversion history.
// Implementations are bounded: once the limit is reached, the oldest entry is evicted.
type HistoryStore interface {
	// Append records an entry as the newest one.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns up to limit entries, newest first.
	// A limit <= 0 returns every stored entry.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)
}
