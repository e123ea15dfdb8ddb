package ports

import (
	"context"

	"github.com/aretw0/worldforge/pkg/domain"
)

// Converter defines the stateless conversion surface.
// This is the primary interface used by adapters (e.g., HTTP, MCP) that manage history externally.
type Converter interface {
	// Convert maps a point between the parent frame and world space.
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error)

	// Validate pre-checks whether a conversion in the given direction is defined for parent.
	Validate(ctx context.Context, parent domain.Transform, dir domain.Direction) domain.ValidationResult
}
