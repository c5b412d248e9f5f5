package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	redisAdapter "github.com/aretw0/waypoint/pkg/adapters/redis"
	"github.com/redis/go-redis/v9"
)

// NewGuide initializes a Guide from configuration. extra options are applied
// last. The returned cleanup releases external connections and must be
// called once the guide is closed.
func NewGuide(cfg *config.Config, logger *slog.Logger, extra ...waypoint.Option) (*waypoint.Guide, func(), error) {
	cleanup := func() {}

	opts := []waypoint.Option{
		waypoint.WithLogger(logger),
		waypoint.WithReadiness(cfg.Readiness.Timeout, cfg.Readiness.Interval),
		waypoint.WithCancelMessage(cfg.Cancel.Message),
	}
	if cfg.Tours.Dir != "" {
		opts = append(opts, waypoint.WithTourFiles(cfg.Tours.Dir))
	}
	if cfg.Tours.Markdown != "" {
		opts = append(opts, waypoint.WithMarkdownTours(cfg.Tours.Markdown))
	}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		locker := redisAdapter.NewLocker(client, cfg.Redis.Prefix)
		opts = append(opts, waypoint.WithLocker(locker, cfg.Lease.TTL))
		cleanup = func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close redis client", "err", err)
			}
		}
		logger.Debug("tour lease enabled", "redis", cfg.Redis.Addr, "ttl", cfg.Lease.TTL)
	}
	opts = append(opts, extra...)

	guide, err := waypoint.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error initializing waypoint: %w", err)
	}
	return guide, cleanup, nil
}
