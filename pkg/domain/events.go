package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTourStart EventType = "tour_start"
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventFault     EventType = "fault"
	EventTourEnd   EventType = "tour_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	TourID    string    `json:"tour_id"`
}

// TourEvent is emitted when a session becomes active.
type TourEvent struct {
	EventBase
	Total int `json:"total"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	StepID string `json:"step_id"`
	Index  int    `json:"index"`
}

// FaultEvent reports a soft condition the tour recovered from.
type FaultEvent struct {
	EventBase
	Kind    FaultKind     `json:"kind"`
	StepID  string        `json:"step_id,omitempty"`
	Target  Locator       `json:"target,omitempty"`
	Waited  time.Duration `json:"waited,omitempty"`
	Message string        `json:"message,omitempty"`
}

// EndEvent is emitted right before the completion callback.
type EndEvent struct {
	EventBase
	Reason   Reason        `json:"reason"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for controller observability.
// Any of them may be nil.
type LifecycleHooks struct {
	OnTourStart func(context.Context, *TourEvent)
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnFault     func(context.Context, *FaultEvent)
	OnTourEnd   func(context.Context, *EndEvent)
}

// Merge combines several hook sets; each callback fans out in order.
func Merge(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, s := range sets {
		out.OnTourStart = chain(out.OnTourStart, s.OnTourStart)
		out.OnStepEnter = chain(out.OnStepEnter, s.OnStepEnter)
		out.OnStepLeave = chain(out.OnStepLeave, s.OnStepLeave)
		out.OnFault = chain(out.OnFault, s.OnFault)
		out.OnTourEnd = chain(out.OnTourEnd, s.OnTourEnd)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
