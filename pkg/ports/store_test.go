package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
)

// MockStore is a slice-backed implementation of HistoryStore for testing purposes.
type MockStore struct {
	limit   int
	entries []domain.HistoryEntry
}

func NewMockStore(limit int) *MockStore {
	return &MockStore{limit: limit}
}

func (m *MockStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	m.entries = append([]domain.HistoryEntry{entry}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	return nil
}

func (m *MockStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]domain.HistoryEntry, limit)
	copy(out, m.entries)
	return out, nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.entries = nil
	return nil
}

func (m *MockStore) Len(ctx context.Context) (int, error) {
	return len(m.entries), nil
}

func TestHistoryStore_Contract(t *testing.T) {
	// The mock documents the contract that every adapter runs against.
	ports.RunHistoryStoreContract(t, NewMockStore(10), 10)
}
