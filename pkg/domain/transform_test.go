package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"local_to_world", "L2W", "local-to-world", " LocalToWorld "} {
		d, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, LocalToWorld, d)
	}
	for _, in := range []string{"world_to_local", "w2l", "World-To-Local"} {
		d, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, WorldToLocal, d)
	}

	_, err := ParseDirection("sideways")
	assert.True(t, errors.Is(err, ErrInvalidDirection))
}

func TestDirection_Labels(t *testing.T) {
	assert.Equal(t, "L→W", LocalToWorld.Short())
	assert.Equal(t, "W→L", WorldToLocal.Short())
	assert.Equal(t, "World→Local", WorldToLocal.Label())
	assert.Equal(t, WorldToLocal, LocalToWorld.Inverse())
	assert.False(t, Direction("x").Valid())
}

func TestValidatePrecision(t *testing.T) {
	assert.NoError(t, ValidatePrecision(MinPrecision))
	assert.NoError(t, ValidatePrecision(MaxPrecision))
	assert.NoError(t, ValidatePrecision(DefaultPrecision))
	assert.ErrorIs(t, ValidatePrecision(1), ErrInvalidPrecision)
	assert.ErrorIs(t, ValidatePrecision(31), ErrInvalidPrecision)
}

func TestCheckBounds(t *testing.T) {
	req := ConversionRequest{
		Direction: LocalToWorld,
		Parent:    IdentityTransform(),
		Point:     Vec(1_000_000_000, 0, 0),
		Precision: 10,
	}
	assert.NoError(t, CheckBounds(req))

	req.Parent.Rotation = Vec(0, 361, 0)
	err := CheckBounds(req)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "rotation.y")

	req.Parent.Rotation = Vec(0, 0, 0)
	req.Point = Vec(0, 0, -1_000_000_001)
	assert.ErrorIs(t, CheckBounds(req), ErrOutOfBounds)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "degenerate_scale", ErrorKind(ErrDegenerateScale))
	assert.Equal(t, "invalid_precision", ErrorKind(ValidatePrecision(0)))
	assert.Equal(t, "internal", ErrorKind(errors.New("boom")))
}

func TestHistoryEntry_RoundTripsRequest(t *testing.T) {
	req := ConversionRequest{
		Direction: WorldToLocal,
		Parent: Transform{
			Position: Vec(1, 2, 3),
			Rotation: Vec(10, 20, 30),
			Scale:    Vec(2, 2, 2),
		},
		Point:     Vec(4, 5, 6),
		Precision: 12,
	}
	res := ConversionResult{Output: Vec(7, 8, 9), Precision: 12}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e := NewHistoryEntry("h-1", req, res, at)
	assert.Equal(t, "h-1", e.ID)
	assert.Equal(t, at, e.Timestamp)
	assert.True(t, e.Result.Equal(Vec(7, 8, 9)))
	assert.Equal(t, req, e.Request())
}

func TestPreset_Request(t *testing.T) {
	presets := BuiltinPresets()
	require.Len(t, presets, 3)

	sample := presets[1]
	assert.Equal(t, "sample-90-y", sample.Name)
	req := sample.Request(DefaultPrecision)
	assert.Equal(t, LocalToWorld, req.Direction)
	assert.True(t, req.Point.Equal(Vec(2, 0, 0)))

	identity := presets[0].Request(4)
	assert.True(t, identity.Point.Equal(Vec(0, 0, 0)))
	assert.Equal(t, 4, identity.Precision)
}
