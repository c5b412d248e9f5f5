package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// NavigationBridge requests screen changes. GoTo returning does not mean the
// destination content is ready; the controller runs its own readiness wait.
type NavigationBridge interface {
	GoTo(ctx context.Context, route string) error
}

// Renderer draws the highlight and popover of the current step.
// The controller never derives state from Highlight or Clear; their errors
// are only logged.
type Renderer interface {
	Highlight(ctx context.Context, view domain.View) error
	Clear(ctx context.Context) error

	// Resolve reports whether the locator currently points at something
	// that can be highlighted.
	Resolve(ctx context.Context, target domain.Locator) bool
}

// InteractionToggler is implemented by renderers that can block user
// interaction with a target while a step is shown.
type InteractionToggler interface {
	SetInteractive(ctx context.Context, target domain.Locator, enabled bool) error
}

// ConfirmationGate asks the user a yes/no question. Confirm blocks until the
// user answers or ctx is done.
type ConfirmationGate interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmationFunc adapts a function to ConfirmationGate.
type ConfirmationFunc func(ctx context.Context, message string) (bool, error)

// Confirm implements ConfirmationGate.
func (f ConfirmationFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}
