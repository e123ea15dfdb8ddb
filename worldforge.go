package worldforge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/aretw0/worldforge/internal/runtime"
	loamAdapter "github.com/aretw0/worldforge/pkg/adapters/loam"
	"github.com/aretw0/worldforge/pkg/adapters/memory"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
)

// Engine is the high-level entry point for the WorldForge library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	presets ports.PresetLoader
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithPresetLoader injects a custom PresetLoader, bypassing the default Loam initialization.
func WithPresetLoader(l ports.PresetLoader) Option {
	return func(e *Engine) {
		e.presets = l
	}
}

// WithLogger sets a custom structured logger for the engine.
// The engine only logs at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new WorldForge Engine.
// Presets are read from a Loam repository at presetsDir. With an empty
// presetsDir and no WithPresetLoader, the built-in presets are served.
func New(presetsDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.presets == nil {
		if presetsDir == "" {
			eng.presets = memory.NewBuiltinLoader()
			eng.Name = "builtin"
		} else {
			absPath, err := filepath.Abs(presetsDir)
			if err != nil {
				return nil, fmt.Errorf("invalid path: %w", err)
			}
			eng.Name = filepath.Base(absPath)

			// Strict mode hands numbers over as json.Number, so decimals keep their literal digits.
			// The engine never modifies the presets, only reads them.
			repo, err := loam.Init(absPath,
				loam.WithStrict(true),
				loam.WithReadOnly(true),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize loam: %w", err)
			}
			eng.presets = loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
		}
	}

	// Ensure logger is initialized (so callers never check for nil)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("presets", eng.Name)
	}

	eng.runtime = runtime.NewEngine(runtime.WithLifecycleHooks(eng.hooks))
	return eng, nil
}

// Convert maps a point between the parent frame and world space.
// All arithmetic runs at full working precision; req.Precision only affects formatting.
func (e *Engine) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	res, err := e.runtime.Convert(ctx, req)
	if err != nil {
		e.logger.DebugContext(ctx, "conversion rejected", "direction", req.Direction, "err", err)
		return res, err
	}
	e.logger.DebugContext(ctx, "conversion", "direction", req.Direction, "precision", req.Precision)
	return res, nil
}

// LocalToWorld is a shorthand for Convert in the LocalToWorld direction.
func (e *Engine) LocalToWorld(ctx context.Context, parent domain.Transform, point domain.Vector3, precision int) (domain.ConversionResult, error) {
	return e.Convert(ctx, domain.ConversionRequest{Direction: domain.LocalToWorld, Parent: parent, Point: point, Precision: precision})
}

// WorldToLocal is a shorthand for Convert in the WorldToLocal direction.
func (e *Engine) WorldToLocal(ctx context.Context, parent domain.Transform, point domain.Vector3, precision int) (domain.ConversionResult, error) {
	return e.Convert(ctx, domain.ConversionRequest{Direction: domain.WorldToLocal, Parent: parent, Point: point, Precision: precision})
}

// Validate pre-checks a conversion without performing it.
func (e *Engine) Validate(ctx context.Context, parent domain.Transform, dir domain.Direction) domain.ValidationResult {
	return e.runtime.Validate(ctx, parent, dir)
}

// Format renders "(x, y, z)" with precision fractional digits.
func (e *Engine) Format(v domain.Vector3, precision int) string {
	return v.Format(precision)
}

// Preset resolves a named parent transform.
func (e *Engine) Preset(ctx context.Context, name string) (domain.Preset, error) {
	return e.presets.GetPreset(ctx, name)
}

// Presets lists every available preset.
func (e *Engine) Presets(ctx context.Context) ([]domain.Preset, error) {
	return e.presets.ListPresets(ctx)
}

// PresetLoader returns the underlying PresetLoader used by the engine.
func (e *Engine) PresetLoader() ports.PresetLoader {
	return e.presets
}
