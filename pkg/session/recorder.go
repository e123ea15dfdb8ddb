package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/worldforge/internal/logging"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/google/uuid"
)

// historyLockKey is the distributed lock key guarding history appends.
const historyLockKey = "history"

// Recorder runs conversions and records the successful ones.
type Recorder struct {
	converter ports.Converter
	store     ports.HistoryStore

	mu      sync.Mutex              // Serializes local appends
	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(r *Recorder) {
		r.locker = locker
	}
}

// WithLockTTL sets how long a distributed lock is held before it expires on its own.
func WithLockTTL(ttl time.Duration) Option {
	return func(r *Recorder) {
		if ttl > 0 {
			r.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Recorder.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithClock overrides the clock used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder over the given converter and history store.
func NewRecorder(converter ports.Converter, store ports.HistoryStore, opts ...Option) *Recorder {
	r := &Recorder{
		converter: converter,
		store:     store,
		lockTTL:   10 * time.Second,
		logger:    logging.NewNop(), // Default to no-op
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Convert runs the conversion and appends a history entry when it succeeds.
// A failed append is logged and does not discard the result.
func (r *Recorder) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	res, err := r.converter.Convert(ctx, req)
	if err != nil {
		return res, err
	}

	if _, err := r.Record(ctx, req, res); err != nil {
		r.logger.Warn("Failed to record conversion history",
			"direction", req.Direction,
			"err", err,
		)
	}
	return res, nil
}

// Validate delegates to the converter. Validation is never recorded.
func (r *Recorder) Validate(ctx context.Context, parent domain.Transform, dir domain.Direction) domain.ValidationResult {
	return r.converter.Validate(ctx, parent, dir)
}

// Record appends an entry for an already computed result.
func (r *Recorder) Record(ctx context.Context, req domain.ConversionRequest, res domain.ConversionResult) (domain.HistoryEntry, error) {
	at := r.now()
	entry := domain.NewHistoryEntry(uuid.NewString(), req, res, at)

	err := r.WithLock(ctx, func(ctx context.Context) error {
		return r.store.Append(ctx, entry)
	})
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// History returns up to limit entries, newest first.
func (r *Recorder) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	return r.store.List(ctx, limit)
}

// Clear removes all history.
func (r *Recorder) Clear(ctx context.Context) error {
	return r.WithLock(ctx, func(ctx context.Context) error {
		return r.store.Clear(ctx)
	})
}

// Store returns the underlying history store.
func (r *Recorder) Store() ports.HistoryStore {
	return r.store
}

// WithLock executes fn while holding the history lock.
func (r *Recorder) WithLock(ctx context.Context, fn func(context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Distributed Locking
	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, historyLockKey, r.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", historyLockKey,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
