package runtime

import (
	"github.com/aretw0/worldforge/pkg/decimath"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// RotationFromEuler normalizes each Euler component to (-180, 180], converts
// to radians and returns the normalized quaternion (yaw = Y, pitch = X, roll = Z).
func RotationFromEuler(eulerDegrees domain.Vector3) domain.Quaternion {
	rad := func(deg decimal.Decimal) decimal.Decimal {
		return decimath.DegreesToRadians(decimath.NormalizeAngle(deg))
	}
	return domain.FromEulerAngles(
		rad(eulerDegrees.Y),
		rad(eulerDegrees.X),
		rad(eulerDegrees.Z),
	).Normalize()
}

// Rotate applies v' = v + 2w(q×v) + 2(q×(q×v)) with q = (x, y, z) the
// vector part of the quaternion. v itself is never rounded.
func Rotate(v domain.Vector3, q domain.Quaternion) domain.Vector3 {
	qv := q.Vector()
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.
		Add(uv.Scale(decimath.Mul(two, q.W))).
		Add(uuv.Scale(two))
}

// LocalToWorld scales, rotates and translates a point from the parent frame
// into world space.
func LocalToWorld(point domain.Vector3, parent domain.Transform) domain.Vector3 {
	scaled := point.Mul(parent.Scale)
	rotated := Rotate(scaled, RotationFromEuler(parent.Rotation))
	return rotated.Add(parent.Position)
}

// WorldToLocal is the algebraic inverse of LocalToWorld. It fails with
// domain.ErrDegenerateScale before doing any arithmetic when a scale
// component is near zero.
func WorldToLocal(point domain.Vector3, parent domain.Transform) (domain.Vector3, error) {
	if err := CheckScale(parent.Scale); err != nil {
		return domain.Vector3{}, err
	}

	delta := point.Sub(parent.Position)
	inv, err := RotationFromEuler(parent.Rotation).Inverse()
	if err != nil {
		return domain.Vector3{}, err
	}
	return Rotate(delta, inv).Div(parent.Scale), nil
}
