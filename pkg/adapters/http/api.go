package http

import (
	"github.com/aretw0/worldforge/pkg/domain"
)

// ConvertRequest is the body of POST /v1/convert.
// Exactly one of Parent or Preset selects the parent transform.
type ConvertRequest struct {
	Direction string            `json:"direction,omitempty"`
	Parent    *domain.Transform `json:"parent,omitempty"`
	Preset    string            `json:"preset,omitempty"`
	Point     domain.Vector3    `json:"point"`
	Precision *int              `json:"precision,omitempty"`
}

// ConvertResponse is returned by POST /v1/convert and pushed to /v1/events.
type ConvertResponse struct {
	Direction string         `json:"direction"`
	Precision int            `json:"precision"`
	Formatted string         `json:"formatted"`
	Result    Components     `json:"result"`
	Exact     domain.Vector3 `json:"exact"`
}

// Components holds the formatted coordinates of a result.
type Components struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Direction string            `json:"direction,omitempty"`
	Parent    *domain.Transform `json:"parent,omitempty"`
	Preset    string            `json:"preset,omitempty"`
}

// HistoryResponse is returned by GET /v1/history.
type HistoryResponse struct {
	Count   int                   `json:"count"`
	Entries []domain.HistoryEntry `json:"entries"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func newConvertResponse(dir domain.Direction, res domain.ConversionResult) ConvertResponse {
	c := res.Components()
	return ConvertResponse{
		Direction: string(dir),
		Precision: res.Precision,
		Formatted: res.Format(),
		Result:    Components{X: c[0], Y: c[1], Z: c[2]},
		Exact:     res.Output,
	}
}
