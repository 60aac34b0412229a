package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventQuestion EventType = "question"
	EventSkip     EventType = "skip"
	EventAnswer   EventType = "answer"
	EventReject   EventType = "reject"
	EventComplete EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Form      string    `json:"form,omitempty"`
}

// FieldEvent represents a step that concerns a single field.
type FieldEvent struct {
	EventBase
	Field    string  `json:"field"`
	Progress float64 `json:"progress"`
	Error    string  `json:"error,omitempty"`
}

// CompleteEvent is emitted once the collected data has been materialized.
type CompleteEvent struct {
	EventBase
	Collected int `json:"collected"`
	Skipped   int `json:"skipped"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnQuestion func(context.Context, *FieldEvent)
	OnSkip     func(context.Context, *FieldEvent)
	OnAnswer   func(context.Context, *FieldEvent)
	OnReject   func(context.Context, *FieldEvent)
	OnComplete func(context.Context, *CompleteEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnQuestion: chainField(h.OnQuestion, other.OnQuestion),
		OnSkip:     chainField(h.OnSkip, other.OnSkip),
		OnAnswer:   chainField(h.OnAnswer, other.OnAnswer),
		OnReject:   chainField(h.OnReject, other.OnReject),
		OnComplete: chainComplete(h.OnComplete, other.OnComplete),
	}
}

func chainField(a, b func(context.Context, *FieldEvent)) func(context.Context, *FieldEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *FieldEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainComplete(a, b func(context.Context, *CompleteEvent)) func(context.Context, *CompleteEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CompleteEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
