package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Display precision bounds (fractional digits).
const (
	MinPrecision     = 2
	MaxPrecision     = 30
	DefaultPrecision = 15
)

var (
	// MaxMagnitude bounds position, scale and point components on caller surfaces.
	MaxMagnitude = decimal.NewFromInt(1_000_000_000)
	// MaxRotation bounds Euler components on caller surfaces.
	MaxRotation = decimal.NewFromInt(360)
)

// ConversionRequest is one point conversion.
type ConversionRequest struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Parent    Transform `json:"parent" yaml:"parent"`
	Point     Vector3   `json:"point" yaml:"point"`
	Precision int       `json:"precision" yaml:"precision"`
}

// ConversionResult carries the full precision output and the display
// precision used to format it.
type ConversionResult struct {
	Output    Vector3 `json:"output"`
	Precision int     `json:"precision"`
}

// Format renders "(x, y, z)" at the result's display precision.
func (r ConversionResult) Format() string {
	return r.Output.Format(r.Precision)
}

// Components returns the formatted x, y, z strings.
func (r ConversionResult) Components() [3]string {
	return r.Output.Components(r.Precision)
}

// ValidationResult is the outcome of a non-mutating pre-check.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Axis    string `json:"axis,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidatePrecision fails with ErrInvalidPrecision outside [MinPrecision, MaxPrecision].
func ValidatePrecision(p int) error {
	if p < MinPrecision || p > MaxPrecision {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidPrecision, p, MinPrecision, MaxPrecision)
	}
	return nil
}

// CheckBounds applies the input limits used by interactive callers:
// position, scale and point within ±MaxMagnitude, rotation within ±MaxRotation.
// The engine itself does not call it.
func CheckBounds(req ConversionRequest) error {
	check := func(field string, v Vector3, limit decimal.Decimal) error {
		for i, c := range []decimal.Decimal{v.X, v.Y, v.Z} {
			if c.Abs().GreaterThan(limit) {
				return fmt.Errorf("%w: %s.%c = %s exceeds ±%s", ErrOutOfBounds, field, "xyz"[i], c, limit)
			}
		}
		return nil
	}

	if err := check("position", req.Parent.Position, MaxMagnitude); err != nil {
		return err
	}
	if err := check("rotation", req.Parent.Rotation, MaxRotation); err != nil {
		return err
	}
	if err := check("scale", req.Parent.Scale, MaxMagnitude); err != nil {
		return err
	}
	return check("point", req.Point, MaxMagnitude)
}
