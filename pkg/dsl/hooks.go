package dsl

import (
	"context"
	"errors"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Navigate returns a transition hook that requests route and asks the
// controller to wait for the destination step's target.
func Navigate(nav ports.NavigationBridge, route string) domain.TransitionHook {
	return func(ctx context.Context) (domain.Await, error) {
		if err := nav.GoTo(ctx, route); err != nil {
			return domain.AwaitNone, err
		}
		return domain.AwaitTarget, nil
	}
}

// DisableInteraction returns a balanced enter/exit pair: enter blocks
// interaction with target, exit restores it.
func DisableInteraction(h ports.Handle, target domain.Locator) (enter, exit domain.Hook) {
	enter = func(ctx context.Context) error {
		return h.SetInteractive(ctx, target, false)
	}
	exit = func(ctx context.Context) error {
		return h.SetInteractive(ctx, target, true)
	}
	return enter, exit
}

// Sequence runs hooks in order. Every hook runs even if an earlier one
// fails; the errors are joined. Nil hooks are skipped.
func Sequence(hooks ...domain.Hook) domain.Hook {
	var live []domain.Hook
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(ctx context.Context) error {
		var errs []error
		for _, h := range live {
			if err := h(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
