package runtime

import (
	"context"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
)

// Engine converts points between a parent frame and world space.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	hooks domain.LifecycleHooks
	now   func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the clock used for event timestamps and durations.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convert validates the display precision and direction, then runs the
// conversion at full working precision. On failure the zero result is
// returned together with a wrapped domain error.
func (e *Engine) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	start := e.now()
	res, err := convert(req)
	e.emitConvert(ctx, req, start, err)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	return res, nil
}

// Validate runs the degeneracy pre-check for a direction without converting.
func (e *Engine) Validate(ctx context.Context, parent domain.Transform, dir domain.Direction) domain.ValidationResult {
	res := Validate(parent, dir)
	if e.hooks.OnValidate != nil {
		e.hooks.OnValidate(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventValidate},
			Direction: dir,
			Result:    res,
		})
	}
	return res
}

func (e *Engine) emitConvert(ctx context.Context, req domain.ConversionRequest, start time.Time, err error) {
	if e.hooks.OnConvert == nil {
		return
	}
	end := e.now()
	ev := &domain.ConversionEvent{
		EventBase: domain.EventBase{Timestamp: end, Type: domain.EventConvert},
		Direction: req.Direction,
		Precision: req.Precision,
		Duration:  end.Sub(start),
	}
	if err != nil {
		ev.IsError = true
		ev.ErrorKind = domain.ErrorKind(err)
	}
	e.hooks.OnConvert(ctx, ev)
}

func convert(req domain.ConversionRequest) (domain.ConversionResult, error) {
	if err := domain.ValidatePrecision(req.Precision); err != nil {
		return domain.ConversionResult{}, err
	}

	var (
		out domain.Vector3
		err error
	)
	switch req.Direction {
	case domain.LocalToWorld:
		out = LocalToWorld(req.Point, req.Parent)
	case domain.WorldToLocal:
		out, err = WorldToLocal(req.Point, req.Parent)
	default:
		_, err = domain.ParseDirection(string(req.Direction))
	}
	if err != nil {
		return domain.ConversionResult{}, err
	}

	return domain.ConversionResult{Output: out, Precision: req.Precision}, nil
}
