package domain

import "errors"

// ErrTourNotFound is returned when no tour is registered under the requested ID.
var ErrTourNotFound = errors.New("tour not found")

// ErrEmptyTour is returned when a tour is built without steps.
var ErrEmptyTour = errors.New("tour has no steps")

// ErrTransitionInFlight is returned when a transition is requested while another
// one is still waiting on a hook, a readiness check or a confirmation.
var ErrTransitionInFlight = errors.New("transition already in flight")

// ErrNoActiveTour is returned by transitions issued while no tour is active.
var ErrNoActiveTour = errors.New("no active tour")

// ErrTourActive is returned by Start when another tour already holds the session.
var ErrTourActive = errors.New("another tour is in progress")

// FaultKind classifies soft conditions. They are logged and reported to
// observers but never stop a tour.
type FaultKind string

const (
	FaultTargetNotResolved FaultKind = "target_not_resolved"
	FaultReadinessTimeout  FaultKind = "readiness_timeout"
	FaultHook              FaultKind = "hook_error"
	FaultRender            FaultKind = "render_error"
)
