package domain

import (
	"fmt"

	"github.com/aretw0/worldforge/pkg/decimath"
	"github.com/shopspring/decimal"
)

// Quaternion is a four component decimal rotation.
// It is not normalized on construction; call Normalize before rotating
// unless the value is known to be unit length.
type Quaternion struct {
	X decimal.Decimal `json:"x"`
	Y decimal.Decimal `json:"y"`
	Z decimal.Decimal `json:"z"`
	W decimal.Decimal `json:"w"`
}

// IdentityQuaternion returns (0, 0, 0, 1).
func IdentityQuaternion() Quaternion {
	return Quaternion{X: decimal.Zero, Y: decimal.Zero, Z: decimal.Zero, W: decimal.NewFromInt(1)}
}

// FromEulerAngles builds a quaternion from yaw (about Y), pitch (about X) and
// roll (about Z), all in radians, applied in that intrinsic order.
// The result is not normalized.
func FromEulerAngles(yaw, pitch, roll decimal.Decimal) Quaternion {
	two := decimal.NewFromInt(2)
	halfY := decimath.Div(yaw, two)
	halfP := decimath.Div(pitch, two)
	halfR := decimath.Div(roll, two)

	sy, cy := decimath.Sin(halfY), decimath.Cos(halfY)
	sp, cp := decimath.Sin(halfP), decimath.Cos(halfP)
	sr, cr := decimath.Sin(halfR), decimath.Cos(halfR)

	mul3 := func(a, b, c decimal.Decimal) decimal.Decimal {
		return decimath.Mul(decimath.Mul(a, b), c)
	}

	return Quaternion{
		X: mul3(sy, cp, cr).Add(mul3(cy, sp, sr)),
		Y: mul3(cy, sp, cr).Sub(mul3(sy, cp, sr)),
		Z: mul3(cy, cp, sr).Sub(mul3(sy, sp, cr)),
		W: mul3(cy, cp, cr).Add(mul3(sy, sp, sr)),
	}
}

// LengthSquared returns x² + y² + z² + w², rounded to working precision.
func (q Quaternion) LengthSquared() decimal.Decimal {
	return decimath.Mul(q.X, q.X).
		Add(decimath.Mul(q.Y, q.Y)).
		Add(decimath.Mul(q.Z, q.Z)).
		Add(decimath.Mul(q.W, q.W))
}

// Normalize divides every component by the norm. A norm below
// decimath.Epsilon yields the identity quaternion instead of an error.
func (q Quaternion) Normalize() Quaternion {
	n := decimath.Sqrt(q.LengthSquared())
	if n.LessThan(decimath.Epsilon) {
		return IdentityQuaternion()
	}
	return Quaternion{
		X: decimath.Div(q.X, n),
		Y: decimath.Div(q.Y, n),
		Z: decimath.Div(q.Z, n),
		W: decimath.Div(q.W, n),
	}
}

// Inverse returns the conjugate divided by the squared norm.
// Unlike Normalize it fails with ErrDegenerateQuaternion when the squared
// norm is below decimath.Epsilon.
func (q Quaternion) Inverse() (Quaternion, error) {
	lenSq := q.LengthSquared()
	if lenSq.LessThan(decimath.Epsilon) {
		return Quaternion{}, fmt.Errorf("%w: squared norm %s", ErrDegenerateQuaternion, lenSq)
	}
	inv := decimath.Div(decimal.NewFromInt(1), lenSq)
	return Quaternion{
		X: decimath.Mul(q.X.Neg(), inv),
		Y: decimath.Mul(q.Y.Neg(), inv),
		Z: decimath.Mul(q.Z.Neg(), inv),
		W: decimath.Mul(q.W, inv),
	}, nil
}

// Vector returns the imaginary part (x, y, z).
func (q Quaternion) Vector() Vector3 {
	return Vector3{X: q.X, Y: q.Y, Z: q.Z}
}

// Equal compares by value.
func (q Quaternion) Equal(o Quaternion) bool {
	return q.X.Equal(o.X) && q.Y.Equal(o.Y) && q.Z.Equal(o.Z) && q.W.Equal(o.W)
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", q.X, q.Y, q.Z, q.W)
}
