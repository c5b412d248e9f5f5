package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Handle is the view of the controller available to tour builders and,
// through closures, to step hooks.
type Handle interface {
	// Session returns a snapshot of the session in progress.
	Session() domain.Session

	// SetInteractive enables or disables interaction with a target when the
	// renderer supports it. It is a no-op otherwise.
	SetInteractive(ctx context.Context, target domain.Locator, enabled bool) error
}

// TourBuilder builds the ordered steps of a tour. It must return an error
// wrapping domain.ErrTourNotFound for unknown IDs and never a partial tour.
type TourBuilder interface {
	Build(tourID string, nav NavigationBridge, handle Handle) (*domain.Tour, error)
}

// Catalog lists the IDs a builder knows about.
type Catalog interface {
	IDs() []string
}
