package domain

import "time"

// Status is the lifecycle position of a tour session.
type Status string

const (
	StatusIdle      Status = "idle"      // No tour in progress
	StatusActive    Status = "active"    // A step is being shown
	StatusCompleted Status = "completed" // Terminal: every step was visited
	StatusCancelled Status = "cancelled" // Terminal: the user (or the host) stopped the tour
)

// IsTerminal reports whether the status ends a session.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Session is a read-only snapshot of the tour in progress.
type Session struct {
	// ID is unique per Start call.
	ID string `json:"id,omitempty"`

	TourID string `json:"tour_id,omitempty"`

	// StepIndex is -1 while Idle.
	StepIndex int `json:"step_index"`

	// Total is the number of steps of the tour (0 while Idle).
	Total int `json:"total"`

	Status Status `json:"status"`

	StartedAt time.Time `json:"started_at,omitzero"`
}

// IdleSession is the snapshot returned when no tour is in progress.
func IdleSession() Session {
	return Session{StepIndex: -1, Status: StatusIdle}
}

// Reason explains why a session ended.
type Reason string

const (
	ReasonCompleted     Reason = "completed"      // Advanced past the last step
	ReasonUserCancelled Reason = "user_cancelled" // Cancellation confirmed (or requested on the last step)
	ReasonUnknownTour   Reason = "unknown_tour"   // The registry could not build the tour
	ReasonRejected      Reason = "rejected"       // Another tour was already in progress
	ReasonAborted       Reason = "aborted"        // The host closed the controller
)

// Status maps a reason onto the status the session ends in.
// Unknown and rejected tours never became active, so they stay idle.
func (r Reason) Status() Status {
	switch r {
	case ReasonCompleted:
		return StatusCompleted
	case ReasonUserCancelled, ReasonAborted:
		return StatusCancelled
	default:
		return StatusIdle
	}
}

// Outcome is delivered to the completion callback, exactly once per Start.
type Outcome struct {
	SessionID string `json:"session_id"`
	TourID    string `json:"tour_id"`
	Reason    Reason `json:"reason"`
	Status    Status `json:"status"`
	// StepIndex is the index the session was on when it ended (-1 if never active).
	StepIndex int `json:"step_index"`
	// Err carries the cause for unknown or rejected tours.
	Err error `json:"-"`
}
