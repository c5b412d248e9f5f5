// Package readiness provides bounded polling for conditions that become true
// asynchronously, such as a target element appearing after navigation.
package readiness

import (
	"context"
	"time"
)

// DefaultInterval is used when WaitUntil receives a non-positive interval.
const DefaultInterval = 50 * time.Millisecond

// Predicate reports whether the awaited condition holds.
type Predicate func(ctx context.Context) bool

// WaitUntil checks predicate immediately and then once per interval until it
// holds, timeout elapses or ctx is done. It returns true only if the predicate
// held. A non-positive timeout checks exactly once.
//
// Callers treat false as "proceed anyway": a timeout is not an error.
func WaitUntil(ctx context.Context, predicate Predicate, timeout, interval time.Duration) bool {
	if predicate(ctx) {
		return true
	}
	if timeout <= 0 {
		return false
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			// One last look so a condition that turned true right at the
			// deadline is not reported as a timeout.
			return predicate(ctx)
		case <-ticker.C:
			if predicate(ctx) {
				return true
			}
		}
	}
}

// RunUntil starts fn in the background and waits until it returns or
// predicate holds, whichever comes first. fn runs detached from ctx
// cancellation so it can outlive the wait.
//
// It returns held=true when predicate held while fn was still running, and
// fn's error when fn returned first. When neither happens before timeout or
// ctx is done, it returns the context error (context.DeadlineExceeded for
// the timeout); fn keeps running.
func RunUntil(ctx context.Context, fn func(context.Context) error, predicate Predicate, timeout, interval time.Duration) (held bool, err error) {
	done := make(chan error, 1)
	go func() {
		done <- fn(context.WithoutCancel(ctx))
	}()

	var finished bool
	ok := WaitUntil(ctx, func(ctx context.Context) bool {
		select {
		case err = <-done:
			finished = true
			return true
		default:
		}
		return predicate(ctx)
	}, timeout, interval)

	switch {
	case finished:
		return false, err
	case ok:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	default:
		return false, context.DeadlineExceeded
	}
}
