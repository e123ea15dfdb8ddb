package loam

import (
	"fmt"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// PresetMetadata represents the frontmatter of a preset document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
// Vector components may be written as numbers or strings; strings are exact.
type PresetMetadata struct {
	Name        string         `json:"name,omitempty" mapstructure:"name"`
	Description string         `json:"description,omitempty" mapstructure:"description"`
	Direction   string         `json:"direction,omitempty" mapstructure:"direction"`
	Position    map[string]any `json:"position,omitempty" mapstructure:"position"`
	Rotation    map[string]any `json:"rotation,omitempty" mapstructure:"rotation"`
	Scale       map[string]any `json:"scale,omitempty" mapstructure:"scale"`
	Input       map[string]any `json:"input,omitempty" mapstructure:"input"`
}

type rawVector struct {
	X string `mapstructure:"x"`
	Y string `mapstructure:"y"`
	Z string `mapstructure:"z"`
}

// decodeVector reads an {x, y, z} map. Missing components take fallback.
// Loam strict mode hands numbers over as json.Number, which weak decoding
// turns into their literal text.
func decodeVector(raw map[string]any, fallback domain.Vector3) (domain.Vector3, error) {
	if len(raw) == 0 {
		return fallback, nil
	}

	var rv rawVector
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &rv,
	})
	if err != nil {
		return domain.Vector3{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Vector3{}, err
	}

	out := fallback
	for _, c := range []struct {
		text string
		dst  *decimal.Decimal
		axis string
	}{
		{rv.X, &out.X, "x"},
		{rv.Y, &out.Y, "y"},
		{rv.Z, &out.Z, "z"},
	} {
		if c.text == "" {
			continue
		}
		d, err := decimal.NewFromString(c.text)
		if err != nil {
			return domain.Vector3{}, fmt.Errorf("%s: %w", c.axis, err)
		}
		*c.dst = d
	}
	return out, nil
}

func encodeVector(v domain.Vector3) map[string]any {
	return map[string]any{
		"x": v.X.String(),
		"y": v.Y.String(),
		"z": v.Z.String(),
	}
}

// ToPreset converts metadata into a domain preset. Position and rotation
// default to zero and scale to one.
func (m PresetMetadata) ToPreset(name string) (domain.Preset, error) {
	p := domain.Preset{Name: name, Description: m.Description}
	if m.Name != "" {
		p.Name = m.Name
	}

	var err error
	if p.Transform.Position, err = decodeVector(m.Position, domain.Vec(0, 0, 0)); err != nil {
		return domain.Preset{}, fmt.Errorf("preset %s position: %w", p.Name, err)
	}
	if p.Transform.Rotation, err = decodeVector(m.Rotation, domain.Vec(0, 0, 0)); err != nil {
		return domain.Preset{}, fmt.Errorf("preset %s rotation: %w", p.Name, err)
	}
	if p.Transform.Scale, err = decodeVector(m.Scale, domain.Vec(1, 1, 1)); err != nil {
		return domain.Preset{}, fmt.Errorf("preset %s scale: %w", p.Name, err)
	}
	if len(m.Input) > 0 {
		in, err := decodeVector(m.Input, domain.Vec(0, 0, 0))
		if err != nil {
			return domain.Preset{}, fmt.Errorf("preset %s input: %w", p.Name, err)
		}
		p.Input = &in
	}
	if m.Direction != "" {
		if p.Direction, err = domain.ParseDirection(m.Direction); err != nil {
			return domain.Preset{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}
	return p, nil
}

// MetadataFromPreset is the inverse of ToPreset. Components are written as
// strings so they round-trip exactly.
func MetadataFromPreset(p domain.Preset) PresetMetadata {
	m := PresetMetadata{
		Name:        p.Name,
		Description: p.Description,
		Direction:   string(p.Direction),
		Position:    encodeVector(p.Transform.Position),
		Rotation:    encodeVector(p.Transform.Rotation),
		Scale:       encodeVector(p.Transform.Scale),
	}
	if p.Input != nil {
		m.Input = encodeVector(*p.Input)
	}
	return m
}
