package loam

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVector_Types(t *testing.T) {
	v, err := decodeVector(map[string]any{
		"x": json.Number("0.1"),
		"y": 3,
		"z": "-7.000000000000000000000000000001",
	}, domain.Vec(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "0.1", v.X.String())
	assert.Equal(t, "3", v.Y.String())
	assert.Equal(t, "-7.000000000000000000000000000001", v.Z.String())
}

func TestDecodeVector_Fallback(t *testing.T) {
	v, err := decodeVector(nil, domain.Vec(1, 1, 1))
	require.NoError(t, err)
	assert.True(t, v.Equal(domain.Vec(1, 1, 1)))

	v, err = decodeVector(map[string]any{"z": 4.5}, domain.Vec(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "4.5", v.Z.String())
	assert.Equal(t, "1", v.X.String())
}

func TestDecodeVector_UnknownKey(t *testing.T) {
	_, err := decodeVector(map[string]any{"w": 1}, domain.Vec(0, 0, 0))
	assert.Error(t, err)
}

func TestPresetMetadata_InvalidDirection(t *testing.T) {
	_, err := PresetMetadata{Direction: "sideways"}.ToPreset("p")
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}
