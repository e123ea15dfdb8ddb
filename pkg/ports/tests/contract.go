package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/ports"
)

// PresetLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.PresetLoader.
// The loader must hold exactly the given presets.
func PresetLoaderContractTest(t *testing.T, loader ports.PresetLoader, expected []domain.Preset) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetPreset (Success)
	t.Run("GetPreset_Success", func(t *testing.T) {
		for _, want := range expected {
			got, err := loader.GetPreset(ctx, want.Name)
			if err != nil {
				t.Fatalf("unexpected error getting preset %s: %v", want.Name, err)
			}
			if got.Name != want.Name {
				t.Errorf("name mismatch: got %q, want %q", got.Name, want.Name)
			}
			if !got.Transform.Position.Equal(want.Transform.Position) ||
				!got.Transform.Rotation.Equal(want.Transform.Rotation) ||
				!got.Transform.Scale.Equal(want.Transform.Scale) {
				t.Errorf("transform mismatch for %s: got %+v, want %+v", want.Name, got.Transform, want.Transform)
			}
		}
	})

	// 2. Test GetPreset (NotFound)
	t.Run("GetPreset_NotFound", func(t *testing.T) {
		_, err := loader.GetPreset(ctx, "non-existent-preset")
		if !errors.Is(err, domain.ErrPresetNotFound) {
			t.Errorf("expected ErrPresetNotFound, got %v", err)
		}
	})

	// 3. Test ListPresets
	t.Run("ListPresets", func(t *testing.T) {
		presets, err := loader.ListPresets(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing presets: %v", err)
		}

		if len(presets) != len(expected) {
			t.Errorf("expected %d presets, got %d", len(expected), len(presets))
		}

		names := make([]string, 0, len(presets))
		for _, p := range presets {
			names = append(names, p.Name)
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("presets not sorted by name: %v", names)
		}

		lookup := make(map[string]bool)
		for _, n := range names {
			lookup[n] = true
		}
		for _, p := range expected {
			if !lookup[p.Name] {
				t.Errorf("preset %s missing from list", p.Name)
			}
		}
	})
}
