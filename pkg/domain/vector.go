package domain

import (
	"fmt"
	"strings"

	"github.com/aretw0/worldforge/pkg/decimath"
	"github.com/shopspring/decimal"
)

// Vector3 is a three component decimal vector.
// Arithmetic never mutates the receiver.
type Vector3 struct {
	X decimal.Decimal `json:"x" yaml:"x"`
	Y decimal.Decimal `json:"y" yaml:"y"`
	Z decimal.Decimal `json:"z" yaml:"z"`
}

// NewVector3 builds a vector from three decimals.
func NewVector3(x, y, z decimal.Decimal) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vec builds a vector from int64 components. Handy for fixtures and presets.
func Vec(x, y, z int64) Vector3 {
	return Vector3{X: decimal.NewFromInt(x), Y: decimal.NewFromInt(y), Z: decimal.NewFromInt(z)}
}

// ParseVector3 parses "x,y,z" (whitespace and surrounding parentheses allowed).
func ParseVector3(s string) (Vector3, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vector3{}, fmt.Errorf("vector %q: expected 3 components, got %d", s, len(parts))
	}

	var c [3]decimal.Decimal
	for i, p := range parts {
		v, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return Vector3{}, fmt.Errorf("vector %q: component %d: %w", s, i, err)
		}
		c[i] = v
	}
	return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

// Mul returns the exact componentwise product.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z)}
}

// Div returns the componentwise quotient at working precision.
// It panics if a component of o is exactly zero; near-zero guarding is the
// engine's job.
func (v Vector3) Div(o Vector3) Vector3 {
	return Vector3{decimath.Div(v.X, o.X), decimath.Div(v.Y, o.Y), decimath.Div(v.Z, o.Z)}
}

// Scale multiplies every component by s, rounded to working precision.
func (v Vector3) Scale(s decimal.Decimal) Vector3 {
	return Vector3{decimath.Mul(v.X, s), decimath.Mul(v.Y, s), decimath.Mul(v.Z, s)}
}

// Cross returns the 3-D cross product v × o, rounded to working precision.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		decimath.Mul(v.Y, o.Z).Sub(decimath.Mul(v.Z, o.Y)),
		decimath.Mul(v.Z, o.X).Sub(decimath.Mul(v.X, o.Z)),
		decimath.Mul(v.X, o.Y).Sub(decimath.Mul(v.Y, o.X)),
	}
}

// Dot returns the exact dot product.
func (v Vector3) Dot(o Vector3) decimal.Decimal {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

// Length returns the Euclidean norm.
func (v Vector3) Length() decimal.Decimal {
	return decimath.Sqrt(v.Dot(v))
}

// Equal compares by value, ignoring exponent differences.
func (v Vector3) Equal(o Vector3) bool {
	return v.X.Equal(o.X) && v.Y.Equal(o.Y) && v.Z.Equal(o.Z)
}

// MaxAbsDiff returns the largest absolute componentwise difference.
func (v Vector3) MaxAbsDiff(o Vector3) decimal.Decimal {
	return decimal.Max(v.X.Sub(o.X).Abs(), v.Y.Sub(o.Y).Abs(), v.Z.Sub(o.Z).Abs())
}

// Components returns the components formatted with a fixed number of fractional digits.
func (v Vector3) Components(precision int) [3]string {
	p := int32(precision)
	return [3]string{v.X.StringFixed(p), v.Y.StringFixed(p), v.Z.StringFixed(p)}
}

// Format renders "(x, y, z)" with a fixed number of fractional digits.
func (v Vector3) Format(precision int) string {
	c := v.Components(precision)
	return "(" + c[0] + ", " + c[1] + ", " + c[2] + ")"
}

func (v Vector3) String() string {
	return "(" + v.X.String() + ", " + v.Y.String() + ", " + v.Z.String() + ")"
}
