package memory

import (
	"context"
	"sync"

	"github.com/aretw0/worldforge/pkg/domain"
)

// Store implements ports.HistoryStore in memory as a bounded ring.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries []domain.HistoryEntry // oldest first
}

// NewStore creates a new in-memory history holding at most limit entries.
// A limit <= 0 falls back to domain.DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &Store{
		limit:   limit,
		entries: make([]domain.HistoryEntry, 0, limit),
	}
}

// Append records the entry, evicting the oldest one when full.
func (s *Store) Append(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == s.limit {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, entry)
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.HistoryEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
	return nil
}

// Len returns the number of stored entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
