package ports

import (
	"context"

	"github.com/aretw0/worldforge/pkg/domain"
)

// PresetLoader defines how named parent transforms are retrieved.
// This allows the preset source (Loam, Memory) to be decoupled.
type PresetLoader interface {
	// ListPresets returns every available preset, sorted by name.
	ListPresets(ctx context.Context) ([]domain.Preset, error)

	// GetPreset resolves a preset by name.
	// Returns domain.ErrPresetNotFound if no preset has that name.
	GetPreset(ctx context.Context, name string) (domain.Preset, error)
}
