package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#22D3EE"}).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// Highlight prints the popover of the current step.
func (c *Console) Highlight(_ context.Context, view domain.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w, c.popover(view))
	return nil
}

func (c *Console) popover(view domain.View) string {
	st := view.Step
	var b strings.Builder

	b.WriteString(titleStyle.Render(st.Title))
	b.WriteString("  " + tui.Faint(view.Progress()))
	if st.Target != "" {
		b.WriteString("\n" + tui.Target(string(st.Target)) + " " + tui.Faint("("+st.Placement.String()+")"))
		if c.disabled[st.Target] {
			b.WriteString(" " + tui.Faint("[locked]"))
		}
	}

	if st.Description != "" {
		text := st.Description
		if c.render != nil {
			if out, err := c.render(text); err == nil {
				text = out
			}
		}
		b.WriteString("\n\n" + strings.TrimSpace(text))
	}

	hints := "[enter] next"
	if view.Index > 0 {
		hints += "  [p] back"
	}
	hints += "  [q] quit"
	b.WriteString("\n\n" + hintStyle.Render(hints))

	style := boxStyle
	if c.width > 0 {
		style = style.Width(c.width)
	}
	return style.Render(b.String())
}

// Clear prints nothing; the next popover replaces the previous one.
func (c *Console) Clear(context.Context) error {
	return nil
}

// Resolve always succeeds: a terminal cannot observe the host screen.
func (c *Console) Resolve(context.Context, domain.Locator) bool {
	return true
}

// SetInteractive records locked targets so popovers can mark them.
func (c *Console) SetInteractive(_ context.Context, target domain.Locator, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enabled {
		delete(c.disabled, target)
	} else {
		c.disabled[target] = true
	}
	return nil
}
