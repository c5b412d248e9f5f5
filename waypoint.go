package waypoint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/internal/runtime"
	"github.com/aretw0/waypoint/pkg/adapters/file"
	loamAdapter "github.com/aretw0/waypoint/pkg/adapters/loam"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/aretw0/waypoint/pkg/tours"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the release of the waypoint module. Overridden at build time.
var Version = "dev"

// Guide is the high-level entry point for the Waypoint library.
// It owns the tour registry and the controller of one application context.
type Guide struct {
	registry   *registry.Registry
	controller *runtime.Controller
	metrics    *observability.Metrics

	nav           ports.NavigationBridge
	renderer      ports.Renderer
	gate          ports.ConfirmationGate
	onComplete    func(domain.Outcome)
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	readyTimeout  time.Duration
	readyInterval time.Duration
	locker        ports.DistributedLocker
	leaseTTL      time.Duration
	cancelMessage string
	metricsReg    prometheus.Registerer

	builders    []namedBuilder
	specs       []schema.TourSpec
	tourFiles   string
	markdownDir string
	noBuiltins  bool
}

type namedBuilder struct {
	id string
	fn registry.BuildFunc
}

// New initializes a Guide. Built-in tours are registered unless
// WithoutBuiltins is given; declarative tours override built-ins of the same ID.
func New(opts ...Option) (*Guide, error) {
	g := &Guide{registry: registry.NewRegistry()}
	for _, opt := range opts {
		opt(g)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if g.logger == nil {
		g.logger = logging.NewNop()
	}

	if !g.noBuiltins {
		tours.Register(g.registry)
	}
	for _, b := range g.builders {
		g.registry.Register(b.id, b.fn)
	}

	specs := append([]schema.TourSpec(nil), g.specs...)
	if g.tourFiles != "" {
		loaded, err := file.Load(g.tourFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to load tour files: %w", err)
		}
		specs = append(specs, loaded...)
	}
	if g.markdownDir != "" {
		loader, err := loamAdapter.Open(g.markdownDir)
		if err != nil {
			return nil, err
		}
		loaded, err := loader.Tours(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load markdown tours: %w", err)
		}
		specs = append(specs, loaded...)
	}
	if err := schema.Register(g.registry, specs...); err != nil {
		return nil, err
	}

	hooks := domain.Merge(g.hooks, observability.LogHooks(g.logger))
	if g.metricsReg != nil {
		g.metrics = observability.NewMetrics(g.metricsReg)
		hooks = domain.Merge(hooks, g.metrics.Hooks())
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(g.logger),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithCompletion(g.onComplete),
		runtime.WithCancelMessage(g.cancelMessage),
	}
	if g.nav != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithNavigator(g.nav))
	}
	if g.renderer != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithRenderer(g.renderer))
	}
	if g.gate != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithConfirmationGate(g.gate))
	}
	if g.readyTimeout > 0 || g.readyInterval > 0 {
		timeout, interval := g.readyTimeout, g.readyInterval
		if timeout <= 0 {
			timeout = runtime.DefaultReadinessTimeout
		}
		if interval <= 0 {
			interval = runtime.DefaultReadinessInterval
		}
		runtimeOpts = append(runtimeOpts, runtime.WithReadiness(timeout, interval))
	}
	if g.locker != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithLocker(g.locker, g.leaseTTL))
	}

	g.controller = runtime.NewController(g.registry, runtimeOpts...)
	return g, nil
}

// Start begins the tour registered under id.
func (g *Guide) Start(ctx context.Context, id string) error {
	return g.controller.Start(ctx, id)
}

// Advance moves to the next step, completing the tour on the last one.
func (g *Guide) Advance(ctx context.Context) error {
	return g.controller.Advance(ctx)
}

// Retreat moves to the previous step.
func (g *Guide) Retreat(ctx context.Context) error {
	return g.controller.Retreat(ctx)
}

// RequestCancel asks to leave the tour, confirming first when mid-tour.
func (g *Guide) RequestCancel(ctx context.Context) error {
	return g.controller.RequestCancel(ctx)
}

// Close aborts the active tour, if any.
func (g *Guide) Close(ctx context.Context) {
	g.controller.Close(ctx)
}

// Session returns a snapshot of the session in progress.
func (g *Guide) Session() domain.Session {
	return g.controller.Session()
}

// Tours lists the registered tour IDs.
func (g *Guide) Tours() []string {
	return g.registry.IDs()
}

// Suggest returns the registered tour ID closest to id, if any.
func (g *Guide) Suggest(id string) string {
	return g.registry.Suggest(id)
}

// Register adds or replaces declarative tours at runtime. The active
// session keeps the tour it was started with.
func (g *Guide) Register(specs ...schema.TourSpec) error {
	return schema.Register(g.registry, specs...)
}

// Graph renders a tour as a Mermaid flowchart, marking the current step
// when that tour is active.
func (g *Guide) Graph(id string) (string, error) {
	spec, err := g.Inspect(id)
	if err != nil {
		return "", err
	}
	var overlay *graph.GraphOverlay
	if s := g.Session(); s.TourID == id && s.Status == domain.StatusActive {
		overlay = &graph.GraphOverlay{CurrentIndex: s.StepIndex}
	}
	return graph.GenerateMermaid(spec, overlay), nil
}
