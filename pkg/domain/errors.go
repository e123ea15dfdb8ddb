package domain

import "errors"

// ErrDegenerateScale is returned when a parent scale component is below the
// degeneracy threshold and the transform cannot be inverted.
var ErrDegenerateScale = errors.New("degenerate scale")

// ErrDegenerateQuaternion is returned when inverting a quaternion whose
// squared norm is below the degeneracy threshold.
var ErrDegenerateQuaternion = errors.New("degenerate quaternion")

// ErrInvalidPrecision is returned when a display precision is outside [MinPrecision, MaxPrecision].
var ErrInvalidPrecision = errors.New("invalid precision")

// ErrInvalidDirection is returned for an unknown conversion direction.
var ErrInvalidDirection = errors.New("invalid direction")

// ErrOutOfBounds is returned when a request component exceeds the input bounds.
var ErrOutOfBounds = errors.New("value out of bounds")

// ErrPresetNotFound is returned when a preset name cannot be resolved.
var ErrPresetNotFound = errors.New("preset not found")

// ErrorKind returns a stable machine-readable name for a domain error,
// or "internal" for anything else.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDegenerateScale):
		return "degenerate_scale"
	case errors.Is(err, ErrDegenerateQuaternion):
		return "degenerate_quaternion"
	case errors.Is(err, ErrInvalidPrecision):
		return "invalid_precision"
	case errors.Is(err, ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrPresetNotFound):
		return "preset_not_found"
	default:
		return "internal"
	}
}
