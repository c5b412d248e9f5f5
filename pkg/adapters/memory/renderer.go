package memory

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Highlight records the view as the current one.
func (b *Bridge) Highlight(_ context.Context, view domain.View) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = &view
	b.highlights++
	return nil
}

// Clear removes the current view.
func (b *Bridge) Clear(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = nil
	b.clears++
	return nil
}

// Resolve reports whether target is present. Every target resolves while
// the present set is unknown.
func (b *Bridge) Resolve(_ context.Context, target domain.Locator) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.present == nil {
		return true
	}
	return b.present[target]
}

// SetInteractive records whether interaction with target is blocked.
func (b *Bridge) SetInteractive(_ context.Context, target domain.Locator, enabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if enabled {
		delete(b.disabled, target)
	} else {
		b.disabled[target] = true
	}
	return nil
}

// SetPresent replaces the set of targets on screen.
func (b *Bridge) SetPresent(targets ...domain.Locator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setPresent(targets)
}

// Reveal adds targets to the set on screen.
func (b *Bridge) Reveal(targets ...domain.Locator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.present == nil {
		b.present = make(map[domain.Locator]bool)
	}
	for _, t := range targets {
		b.present[t] = true
	}
}

// Current returns the highlighted view, if any.
func (b *Bridge) Current() (domain.View, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.view == nil {
		return domain.View{}, false
	}
	return *b.view, true
}

func (b *Bridge) setPresent(targets []domain.Locator) {
	b.present = make(map[domain.Locator]bool, len(targets))
	for _, t := range targets {
		b.present[t] = true
	}
}
