package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	httpAdapter "github.com/aretw0/waypoint/pkg/adapters/http"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Serve runs the HTTP bridge until ctx is done. Markdown tours are reloaded
// when their files change.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	bridge := memory.New()
	streams := httpAdapter.NewStreamManager(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	guide, cleanup, err := NewGuide(cfg, logger,
		waypoint.WithBridge(bridge),
		waypoint.WithLifecycleHooks(streams.Hooks()),
		waypoint.WithMetrics(reg),
	)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: httpAdapter.NewHandler(guide, bridge,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(reg),
			httpAdapter.WithVersion(waypoint.Version),
			httpAdapter.WithLogger(logger),
		),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting Waypoint Server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		CloseGuide(shutdownCtx, guide, bridge, logger)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		logger.Info("Waypoint Server stopped gracefully")
		return nil
	})
	if cfg.Tours.Markdown != "" {
		g.Go(func() error {
			return WatchTours(gctx, cfg.Tours.Markdown, guide, logger)
		})
	}
	return g.Wait()
}

// Closer is the part of the guide CloseGuide needs.
type Closer interface {
	Close(ctx context.Context)
}

// CloseGuide aborts the active tour on shutdown. A confirmation left open by
// a remote client is declined so the cancellation waiting on it returns and
// the abort is applied at that step boundary.
func CloseGuide(ctx context.Context, guide Closer, bridge *memory.Bridge, logger *slog.Logger) {
	guide.Close(ctx)
	if err := bridge.Answer(false); err != nil && !errors.Is(err, memory.ErrNoPendingConfirmation) {
		logger.Warn("failed to decline pending confirmation", "err", err)
	}
}
