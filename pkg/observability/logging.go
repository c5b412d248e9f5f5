package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/waypoint/pkg/domain"
)

// LogHooks returns lifecycle hooks that trace step movement at Debug level.
// Tour start, end and faults are already logged by the controller.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_enter",
				"session_id", e.SessionID,
				"tour", e.TourID,
				"step", e.StepID,
				"index", e.Index,
			)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_leave",
				"session_id", e.SessionID,
				"tour", e.TourID,
				"step", e.StepID,
			)
		},
	}
}
