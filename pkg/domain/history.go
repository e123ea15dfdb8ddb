package domain

import (
	"time"
)

// DefaultHistoryLimit is the capacity of a history log; the oldest entry is
// evicted first.
const DefaultHistoryLimit = 100

// HistoryEntry records one successful conversion.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Direction      Direction `json:"direction"`
	Input          Vector3   `json:"input"`
	Result         Vector3   `json:"result"`
	ParentPosition Vector3   `json:"parent_position"`
	ParentRotation Vector3   `json:"parent_rotation"`
	ParentScale    Vector3   `json:"parent_scale"`
	Precision      int       `json:"precision"`
}

// NewHistoryEntry builds an entry from a request and its result.
func NewHistoryEntry(id string, req ConversionRequest, res ConversionResult, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:             id,
		Timestamp:      at,
		Direction:      req.Direction,
		Input:          req.Point,
		Result:         res.Output,
		ParentPosition: req.Parent.Position,
		ParentRotation: req.Parent.Rotation,
		ParentScale:    req.Parent.Scale,
		Precision:      res.Precision,
	}
}

// Request rebuilds the request that produced the entry.
func (h HistoryEntry) Request() ConversionRequest {
	return ConversionRequest{
		Direction: h.Direction,
		Parent: Transform{
			Position: h.ParentPosition,
			Rotation: h.ParentRotation,
			Scale:    h.ParentScale,
		},
		Point:     h.Input,
		Precision: h.Precision,
	}
}
