package mcp

import (
	"fmt"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ConvertOutput is the structured result of the convert tool.
type ConvertOutput struct {
	Direction string      `json:"direction" jsonschema_description:"Direction the point was converted in"`
	Precision int         `json:"precision" jsonschema_description:"Fractional digits used for the formatted values"`
	Formatted string      `json:"formatted" jsonschema_description:"Result as (x, y, z) at the requested precision"`
	Result    Coordinates `json:"result" jsonschema_description:"Formatted components"`
	Exact     Coordinates `json:"exact" jsonschema_description:"Full-precision components"`
}

// Coordinates holds x, y, z as decimal strings.
type Coordinates struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

func newConvertOutput(dir domain.Direction, res domain.ConversionResult) ConvertOutput {
	c := res.Components()
	return ConvertOutput{
		Direction: string(dir),
		Precision: res.Precision,
		Formatted: res.Format(),
		Result:    Coordinates{X: c[0], Y: c[1], Z: c[2]},
		Exact: Coordinates{
			X: res.Output.X.String(),
			Y: res.Output.Y.String(),
			Z: res.Output.Z.String(),
		},
	}
}

// toolArgs are the arguments shared by convert and validate.
type toolArgs struct {
	Direction string `mapstructure:"direction"`
	Preset    string `mapstructure:"preset"`
	Position  string `mapstructure:"position"`
	Rotation  string `mapstructure:"rotation"`
	Scale     string `mapstructure:"scale"`
	Point     string `mapstructure:"point"`
	Precision *int   `mapstructure:"precision"`
}

// decodeArgs maps raw tool arguments onto toolArgs. Clients send numbers as
// float64 or strings; both are accepted for precision.
func decodeArgs(args map[string]interface{}) (toolArgs, error) {
	var out toolArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(args); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}
