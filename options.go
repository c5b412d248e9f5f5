package waypoint

import (
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// Option defines a functional option for configuring the Guide.
type Option func(*Guide)

// WithNavigator sets the navigation bridge handed to tour builders.
func WithNavigator(nav ports.NavigationBridge) Option {
	return func(g *Guide) {
		g.nav = nav
	}
}

// WithRenderer sets the rendering adapter.
func WithRenderer(r ports.Renderer) Option {
	return func(g *Guide) {
		g.renderer = r
	}
}

// WithConfirmationGate sets the gate asked before cancelling mid-tour.
func WithConfirmationGate(gate ports.ConfirmationGate) Option {
	return func(g *Guide) {
		g.gate = gate
	}
}

// WithBridge uses an in-memory bridge as navigator, renderer and gate.
func WithBridge(b *memory.Bridge) Option {
	return func(g *Guide) {
		g.nav = b
		g.renderer = b
		g.gate = b
	}
}

// WithCompletion registers the callback fired exactly once per Start.
func WithCompletion(fn func(domain.Outcome)) Option {
	return func(g *Guide) {
		g.onComplete = fn
	}
}

// WithLifecycleHooks registers observability hooks. It can be given more
// than once; the hooks are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Guide) {
		g.hooks = domain.Merge(g.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guide) {
		g.logger = logger
	}
}

// WithReadiness configures the bounded wait run after navigating hooks.
func WithReadiness(timeout, interval time.Duration) Option {
	return func(g *Guide) {
		g.readyTimeout = timeout
		g.readyInterval = interval
	}
}

// WithLocker enables the cross-process single-tour lease.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(g *Guide) {
		g.locker = locker
		g.leaseTTL = ttl
	}
}

// WithCancelMessage overrides the cancellation question.
func WithCancelMessage(msg string) Option {
	return func(g *Guide) {
		g.cancelMessage = msg
	}
}

// WithMetrics records Prometheus metrics into reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(g *Guide) {
		g.metricsReg = reg
	}
}

// WithTour registers a programmatic tour.
func WithTour(id string, fn registry.BuildFunc) Option {
	return func(g *Guide) {
		g.builders = append(g.builders, namedBuilder{id: id, fn: fn})
	}
}

// WithTours registers declarative tours.
func WithTours(specs ...schema.TourSpec) Option {
	return func(g *Guide) {
		g.specs = append(g.specs, specs...)
	}
}

// WithTourFiles loads declarative tours from a YAML file or directory.
func WithTourFiles(path string) Option {
	return func(g *Guide) {
		g.tourFiles = path
	}
}

// WithMarkdownTours loads declarative tours from a Loam repository.
func WithMarkdownTours(dir string) Option {
	return func(g *Guide) {
		g.markdownDir = dir
	}
}

// WithoutBuiltins skips the tours shipped with the application.
func WithoutBuiltins() Option {
	return func(g *Guide) {
		g.noBuiltins = true
	}
}
