package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

const (
	// DefaultReadinessTimeout bounds the wait for a target after navigation.
	DefaultReadinessTimeout = 5 * time.Second
	// DefaultReadinessInterval is the poll interval of that wait.
	DefaultReadinessInterval = 100 * time.Millisecond
	// DefaultCancelMessage is the question asked before cancelling mid-tour.
	DefaultCancelMessage = "Are you sure you want to leave the guided setup? You can restart it later from the help menu."
	// DefaultLeaseKey is the lock key used when a DistributedLocker is configured.
	DefaultLeaseKey = "active-tour"
	// DefaultLeaseTTL bounds how long a crashed process can hold the lease.
	DefaultLeaseTTL = 30 * time.Minute
	// DefaultLeaseWait bounds how long Start waits for the lease.
	DefaultLeaseWait = 2 * time.Second
)

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithNavigator sets the navigation bridge handed to tour builders.
func WithNavigator(nav ports.NavigationBridge) Option {
	return func(c *Controller) {
		c.nav = nav
	}
}

// WithRenderer sets the rendering adapter.
func WithRenderer(r ports.Renderer) Option {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithConfirmationGate sets the gate asked before cancelling mid-tour.
// Without a gate, cancellation is never confirmed.
func WithConfirmationGate(g ports.ConfirmationGate) Option {
	return func(c *Controller) {
		c.gate = g
	}
}

// WithCompletion registers the callback fired exactly once per Start.
func WithCompletion(fn func(domain.Outcome)) Option {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReadiness configures the bounded wait run after navigating hooks.
func WithReadiness(timeout, interval time.Duration) Option {
	return func(c *Controller) {
		c.readyTimeout = timeout
		c.readyInterval = interval
	}
}

// WithLocker enables a distributed lease so only one tour is active across
// every process sharing the locker backend.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Controller) {
		c.locker = locker
		if ttl > 0 {
			c.leaseTTL = ttl
		}
	}
}

// WithCancelMessage overrides the cancellation question.
func WithCancelMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.cancelMessage = msg
		}
	}
}

// WithIDGenerator overrides how session IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}
