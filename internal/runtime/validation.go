package runtime

import (
	"fmt"

	"github.com/aretw0/worldforge/pkg/decimath"
	"github.com/aretw0/worldforge/pkg/domain"
)

// degenerateAxis returns the first scale axis with |s| < Epsilon, or "".
func degenerateAxis(scale domain.Vector3) string {
	switch {
	case decimath.IsNearZero(scale.X):
		return "X"
	case decimath.IsNearZero(scale.Y):
		return "Y"
	case decimath.IsNearZero(scale.Z):
		return "Z"
	}
	return ""
}

// CheckScale fails with domain.ErrDegenerateScale naming the first
// near-zero axis.
func CheckScale(scale domain.Vector3) error {
	if axis := degenerateAxis(scale); axis != "" {
		return fmt.Errorf("%w: scale %s is zero", domain.ErrDegenerateScale, axis)
	}
	return nil
}

// Validate runs the WorldToLocal degeneracy test. LocalToWorld is always valid.
func Validate(parent domain.Transform, dir domain.Direction) domain.ValidationResult {
	switch dir {
	case domain.LocalToWorld:
		return domain.ValidationResult{Valid: true}
	case domain.WorldToLocal:
	default:
		return domain.ValidationResult{Valid: false, Message: fmt.Sprintf("Unknown direction %q", dir)}
	}
	if axis := degenerateAxis(parent.Scale); axis != "" {
		return domain.ValidationResult{
			Valid:   false,
			Axis:    axis,
			Message: fmt.Sprintf("Scale %s is zero", axis),
		}
	}
	return domain.ValidationResult{Valid: true}
}
