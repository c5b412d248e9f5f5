package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Confirm asks message and reads a y/n answer from the console input.
// Anything other than y or yes is a refusal.
func (c *Console) Confirm(ctx context.Context, message string) (bool, error) {
	c.mu.Lock()
	fmt.Fprintf(c.w, "%s [y/N] ", message)
	c.mu.Unlock()

	answer, err := c.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptGate asks with an interactive huh confirmation. Use it only when
// stdin is a terminal.
type PromptGate struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

// Confirm implements ports.ConfirmationGate. Aborting the prompt counts as
// a refusal.
func (g PromptGate) Confirm(ctx context.Context, message string) (bool, error) {
	confirmed := false
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Leave").
		Negative("Stay").
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(g.Accessible).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return confirmed, nil
}
