package memory

import (
	"context"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
)

// GoTo records the route. When screens are configured, the destination's
// targets replace the present ones, after the navigation delay if any.
func (b *Bridge) GoTo(_ context.Context, route string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.route = route
	b.history = append(b.history, route)

	targets, ok := b.screens[route]
	if !ok {
		return nil
	}
	if b.delay <= 0 {
		b.setPresent(targets)
		return nil
	}
	// The old screen goes away at once; the new one loads later.
	b.present = make(map[domain.Locator]bool)
	time.AfterFunc(b.delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.route == route {
			b.setPresent(targets)
		}
	})
	return nil
}

// Route returns the last requested route.
func (b *Bridge) Route() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.route
}

// Wait blocks until pred holds on the bridge state or ctx is done.
// Intended for tests and front-ends polling the bridge.
func (b *Bridge) Wait(ctx context.Context, pred func(State) bool) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		if pred(b.Snapshot()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
