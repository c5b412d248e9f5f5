package terminal

import (
	"context"
	"fmt"

	"github.com/aretw0/waypoint/internal/presentation/tui"
)

// GoTo announces the screen change.
func (c *Console) GoTo(_ context.Context, route string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.route = route
	fmt.Fprintln(c.w, tui.Faint("→ "+route))
	return nil
}

// Route returns the last announced route.
func (c *Console) Route() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}
