package domain

// Preset is a named parent transform, optionally with a sample input point
// and direction.
type Preset struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Transform   Transform `json:"transform" yaml:"transform"`
	Input       *Vector3  `json:"input,omitempty" yaml:"input,omitempty"`
	Direction   Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Request builds a conversion request from the preset. A missing input
// defaults to the origin and a missing direction to LocalToWorld.
func (p Preset) Request(precision int) ConversionRequest {
	point := Vec(0, 0, 0)
	if p.Input != nil {
		point = *p.Input
	}
	dir := p.Direction
	if dir == "" {
		dir = LocalToWorld
	}
	return ConversionRequest{
		Direction: dir,
		Parent:    p.Transform,
		Point:     point,
		Precision: precision,
	}
}

// BuiltinPresets returns the presets shipped with WorldForge.
func BuiltinPresets() []Preset {
	sampleInput := Vec(2, 0, 0)
	return []Preset{
		{
			Name:        "identity",
			Description: "Identity transform",
			Transform:   IdentityTransform(),
		},
		{
			Name:        "sample-90-y",
			Description: "Sample 90° Y",
			Transform: Transform{
				Position: Vec(5, 0, 0),
				Rotation: Vec(0, 90, 0),
				Scale:    Vec(1, 1, 1),
			},
			Input:     &sampleInput,
			Direction: LocalToWorld,
		},
		{
			Name:        "unity-standard",
			Description: "Unity standard",
			Transform: Transform{
				Position: Vec(0, 1, 0),
				Rotation: Vec(0, 0, 0),
				Scale:    Vec(1, 1, 1),
			},
		},
	}
}
