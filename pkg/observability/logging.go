package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/worldforge/pkg/domain"
)

// LoggingHooks returns hooks that log every conversion and validation at debug
// level, and failed conversions at warn level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			if e.IsError {
				logger.WarnContext(ctx, "conversion failed",
					"direction", e.Direction,
					"precision", e.Precision,
					"kind", e.ErrorKind,
				)
				return
			}
			logger.DebugContext(ctx, "conversion",
				"direction", e.Direction,
				"precision", e.Precision,
				"duration", e.Duration,
			)
		},
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.DebugContext(ctx, "validation",
				"direction", e.Direction,
				"valid", e.Result.Valid,
				"axis", e.Result.Axis,
			)
		},
	}
}
