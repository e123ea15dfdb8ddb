package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/worldforge/internal/testutils"
	loamAdapter "github.com/aretw0/worldforge/pkg/adapters/loam"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports/tests"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))

	require.NoError(t, loader.Seed(context.Background(), domain.BuiltinPresets()...))

	tests.PresetLoaderContractTest(t, loader, domain.BuiltinPresets())
}

func TestLoader_SeedRoundTrip(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
	ctx := context.Background()

	in := domain.Vec(2, 0, 0)
	want := domain.Preset{
		Name:        "precise",
		Description: "Sub-ulp offsets",
		Transform: domain.Transform{
			Position: domain.NewVector3(mustDecimal(t, "0.000000000000000000000000000001"), mustDecimal(t, "-12.5"), mustDecimal(t, "1000000000")),
			Rotation: domain.Vec(0, 90, 0),
			Scale:    domain.NewVector3(mustDecimal(t, "0.1"), mustDecimal(t, "-2"), mustDecimal(t, "3")),
		},
		Input:     &in,
		Direction: domain.WorldToLocal,
	}
	require.NoError(t, loader.Seed(ctx, want))

	got, err := loader.GetPreset(ctx, "precise")
	require.NoError(t, err)
	assert.Equal(t, "Sub-ulp offsets", got.Description)
	assert.True(t, got.Transform.Position.Equal(want.Transform.Position), "got %s", got.Transform.Position)
	assert.True(t, got.Transform.Scale.Equal(want.Transform.Scale))
	require.NotNil(t, got.Input)
	assert.True(t, got.Input.Equal(in))
	assert.Equal(t, domain.WorldToLocal, got.Direction)
}

func TestLoader_HandWrittenFiles(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"numeric.md": `---
position:
  x: 1.5
  y: 2
rotation:
  y: 45
---
Numbers written as YAML scalars`,
		"named.md": `---
name: shoulder
description: Arm joint
scale:
  x: "0.5"
  y: "0.5"
  z: "0.5"
---
ignored body`,
		"offset.json": `{"position": {"x": "10", "y": "0", "z": "-3.25"}}`,
	})

	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
	ctx := context.Background()

	presets, err := loader.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 3)
	assert.Equal(t, "numeric", presets[0].Name)
	assert.Equal(t, "offset", presets[1].Name)
	assert.Equal(t, "shoulder", presets[2].Name)

	numeric := presets[0]
	assert.Equal(t, "Numbers written as YAML scalars", numeric.Description)
	assert.True(t, numeric.Transform.Position.Equal(domain.NewVector3(mustDecimal(t, "1.5"), mustDecimal(t, "2"), mustDecimal(t, "0"))))
	assert.True(t, numeric.Transform.Rotation.Equal(domain.Vec(0, 45, 0)))
	assert.True(t, numeric.Transform.Scale.Equal(domain.Vec(1, 1, 1)), "missing scale defaults to one")
	assert.Nil(t, numeric.Input)

	shoulder, err := loader.GetPreset(ctx, "shoulder")
	require.NoError(t, err)
	assert.Equal(t, "Arm joint", shoulder.Description)
	assert.Equal(t, "0.5", shoulder.Transform.Scale.Y.String())

	byName, err := loader.GetPreset(ctx, "numeric")
	require.NoError(t, err)
	assert.Equal(t, "Numbers written as YAML scalars", byName.Description, "body is the fallback description")

	_, err = loader.GetPreset(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}

func TestLoader_InvalidComponent(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"bad.md": "---\nposition:\n  x: abc\n---\n",
	})

	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
	_, err := loader.ListPresets(context.Background())
	assert.ErrorContains(t, err, "position")
}

func TestLoader_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.md": "---\nname: twin\n---\n",
		"b.md": "---\nname: twin\n---\n",
	})

	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
	_, err := loader.ListPresets(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
