package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the adapter.
const DefaultPrefix = "worldforge:"

// Store implements ports.HistoryStore using a capped Redis list.
// Entries are pushed on the left, so index 0 is always the newest.
type Store struct {
	client *backend.Client
	prefix string
	limit  int
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL expires the whole history after ttl without new appends.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLimit sets the history capacity.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		limit:  domain.DefaultHistoryLimit,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client so a Locker can share the connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key() string {
	return s.prefix + "history"
}

// Append pushes the entry and trims the list to the configured limit.
func (s *Store) Append(ctx context.Context, entry domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	// MULTI/EXEC keeps push and trim atomic for concurrent writers.
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key(), data)
	pipe.LTrim(ctx, s.key(), 0, int64(s.limit-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	vals, err := s.client.LRange(ctx, s.key(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(vals))
	for _, val := range vals {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear removes the history list.
func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}

// Len returns the list length.
func (s *Store) Len(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return int(n), nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
