package domain

import (
	"fmt"
	"strings"
)

// Transform is a parent TRS transform. Rotation holds Euler angles in degrees
// (X = pitch, Y = yaw, Z = roll). Negative scale is allowed; a near-zero
// scale component makes the transform non-invertible.
type Transform struct {
	Position Vector3 `json:"position" yaml:"position"`
	Rotation Vector3 `json:"rotation" yaml:"rotation"`
	Scale    Vector3 `json:"scale" yaml:"scale"`
}

// IdentityTransform returns position 0, rotation 0, scale 1.
func IdentityTransform() Transform {
	return Transform{
		Position: Vec(0, 0, 0),
		Rotation: Vec(0, 0, 0),
		Scale:    Vec(1, 1, 1),
	}
}

// Direction selects which way a point is converted.
type Direction string

const (
	LocalToWorld Direction = "local_to_world"
	WorldToLocal Direction = "world_to_local"
)

// ParseDirection accepts the canonical names plus the short forms used by
// the CLI (l2w, w2l, local-to-world, world-to-local).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local_to_world", "local-to-world", "l2w", "localtoworld":
		return LocalToWorld, nil
	case "world_to_local", "world-to-local", "w2l", "worldtolocal":
		return WorldToLocal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == LocalToWorld || d == WorldToLocal
}

// Short returns the compact history label (L→W or W→L).
func (d Direction) Short() string {
	if d == WorldToLocal {
		return "W→L"
	}
	return "L→W"
}

// Label returns the long display label (Local→World or World→Local).
func (d Direction) Label() string {
	if d == WorldToLocal {
		return "World→Local"
	}
	return "Local→World"
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == WorldToLocal {
		return LocalToWorld
	}
	return WorldToLocal
}
