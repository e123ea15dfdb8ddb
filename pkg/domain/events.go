package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventConvert  EventType = "convert"
	EventValidate EventType = "validate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ConversionEvent describes a finished Convert call.
type ConversionEvent struct {
	EventBase
	Direction Direction     `json:"direction"`
	Precision int           `json:"precision"`
	Duration  time.Duration `json:"duration"`
	IsError   bool          `json:"is_error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
}

// ValidationEvent describes a finished Validate call.
type ValidationEvent struct {
	EventBase
	Direction Direction        `json:"direction"`
	Result    ValidationResult `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnConvert  func(context.Context, *ConversionEvent)
	OnValidate func(context.Context, *ValidationEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnConvert: func(ctx context.Context, e *ConversionEvent) {
			if h.OnConvert != nil {
				h.OnConvert(ctx, e)
			}
			if other.OnConvert != nil {
				other.OnConvert(ctx, e)
			}
		},
		OnValidate: func(ctx context.Context, e *ValidationEvent) {
			if h.OnValidate != nil {
				h.OnValidate(ctx, e)
			}
			if other.OnValidate != nil {
				other.OnValidate(ctx, e)
			}
		},
	}
}
