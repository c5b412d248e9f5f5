package cli

import (
	"context"
	"log/slog"
	"time"

	loamAdapter "github.com/aretw0/waypoint/pkg/adapters/loam"
	"github.com/aretw0/waypoint/pkg/schema"
)

// Registrar accepts reloaded tour definitions.
type Registrar interface {
	Register(specs ...schema.TourSpec) error
}

// reloadDelay lets editors finish writing before the repository is re-read.
const reloadDelay = 100 * time.Millisecond

// WatchTours re-registers the Markdown tours in dir whenever a document
// changes, until ctx is done. Invalid edits are logged and skipped; the
// previous definitions stay registered.
func WatchTours(ctx context.Context, dir string, reg Registrar, logger *slog.Logger) error {
	loader, err := loamAdapter.Open(dir)
	if err != nil {
		return err
	}
	events, err := loader.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting Watcher", "path", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("Change detected, reloading tours", "event", event)
			time.Sleep(reloadDelay)

			specs, err := loader.Tours(ctx)
			if err != nil {
				logger.Warn("tour reload failed", "err", err)
				continue
			}
			if err := reg.Register(specs...); err != nil {
				logger.Warn("reloaded tours are invalid", "err", err)
				continue
			}
			logger.Info("tours reloaded", "count", len(specs))
		}
	}
}
