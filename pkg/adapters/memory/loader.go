package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/worldforge/pkg/domain"
)

// Loader implements ports.PresetLoader using an in-memory map.
type Loader struct {
	presets map[string]domain.Preset
}

// NewLoader creates a new MemoryLoader from domain objects.
// A later preset with the same name replaces an earlier one.
func NewLoader(presets ...domain.Preset) *Loader {
	m := make(map[string]domain.Preset, len(presets))
	for _, p := range presets {
		m[p.Name] = p
	}
	return &Loader{presets: m}
}

// NewBuiltinLoader serves the presets shipped with WorldForge.
func NewBuiltinLoader() *Loader {
	return NewLoader(domain.BuiltinPresets()...)
}

// NewFromJSON creates a new MemoryLoader with the provided raw data (JSON strings keyed by name).
func NewFromJSON(data map[string]string) (*Loader, error) {
	presets := make([]domain.Preset, 0, len(data))
	for name, raw := range data {
		var p domain.Preset
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preset %s: %w", name, err)
		}
		if p.Name == "" {
			p.Name = name
		}
		presets = append(presets, p)
	}
	return NewLoader(presets...), nil
}

// GetPreset resolves a preset by name.
func (l *Loader) GetPreset(ctx context.Context, name string) (domain.Preset, error) {
	p, ok := l.presets[name]
	if !ok {
		return domain.Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	return p, nil
}

// ListPresets returns all presets sorted by name.
func (l *Loader) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	out := make([]domain.Preset, 0, len(l.presets))
	for _, p := range l.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name }) // Deterministic order
	return out, nil
}
