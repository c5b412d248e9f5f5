package memory

import (
	"context"
	"fmt"
)

// Confirm publishes message as pending and blocks until Answer is called or
// ctx is done. A second concurrent Confirm fails; the controller never asks
// twice at once.
func (b *Bridge) Confirm(ctx context.Context, message string) (bool, error) {
	p := &prompt{message: message, answer: make(chan bool, 1)}

	b.mu.Lock()
	if b.pending != nil {
		b.mu.Unlock()
		return false, fmt.Errorf("confirmation already pending: %q", b.pending.message)
	}
	b.pending = p
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.pending == p {
			b.pending = nil
		}
		b.mu.Unlock()
	}()

	select {
	case ok := <-p.answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pending returns the question awaiting an answer.
func (b *Bridge) Pending() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return "", false
	}
	return b.pending.message, true
}

// Answer resolves the pending confirmation.
func (b *Bridge) Answer(accept bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return ErrNoPendingConfirmation
	}
	b.pending.answer <- accept
	b.pending = nil
	return nil
}
