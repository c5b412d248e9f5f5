package domain

import (
	"context"
	"fmt"
	"strings"
)

// Locator identifies the element a step points at. Its format is owned by
// the Renderer (a CSS selector for a browser front-end, a widget name for a
// terminal). The empty Locator means the step has no target.
type Locator string

// Side is the edge of the target the popover is attached to.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Align positions the popover along the chosen side.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Placement is a rendering hint for the popover of a step.
type Placement struct {
	Side  Side  `json:"side" yaml:"side" mapstructure:"side"`
	Align Align `json:"align" yaml:"align" mapstructure:"align"`
}

// Normalize fills unset fields with the defaults (bottom, start).
func (p Placement) Normalize() Placement {
	if p.Side == "" {
		p.Side = SideBottom
	}
	if p.Align == "" {
		p.Align = AlignStart
	}
	return p
}

// Validate reports whether side and align hold known values.
// Empty fields are accepted; they normalize to the defaults.
func (p Placement) Validate() error {
	switch p.Side {
	case "", SideTop, SideBottom, SideLeft, SideRight:
	default:
		return fmt.Errorf("unknown side %q", p.Side)
	}
	switch p.Align {
	case "", AlignStart, AlignCenter, AlignEnd:
	default:
		return fmt.Errorf("unknown align %q", p.Align)
	}
	return nil
}

// String renders the placement in the "side-align" shorthand.
func (p Placement) String() string {
	n := p.Normalize()
	return string(n.Side) + "-" + string(n.Align)
}

// ParsePlacement reads the "side" or "side-align" shorthand (e.g. "right-start").
func ParsePlacement(s string) (Placement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Placement{}.Normalize(), nil
	}
	side, align, _ := strings.Cut(s, "-")
	p := Placement{Side: Side(side), Align: Align(align)}
	if err := p.Validate(); err != nil {
		return Placement{}, err
	}
	return p.Normalize(), nil
}

// Await tells the controller what to do once a transition hook returns.
type Await int

const (
	// AwaitNone moves on immediately.
	AwaitNone Await = iota
	// AwaitTarget runs a bounded readiness wait for the destination step's
	// target before moving on. Used after a hook triggered navigation.
	AwaitTarget
)

// Hook runs when a step is entered or left.
type Hook func(ctx context.Context) error

// TransitionHook runs when the user asks to leave a step forwards or backwards,
// before the step is exited.
type TransitionHook func(ctx context.Context) (Await, error)

// Step is one stop in a tour. Hooks are optional.
type Step struct {
	ID          string    `json:"id"`
	Target      Locator   `json:"target,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"` // may contain inline emphasis markup
	Placement   Placement `json:"placement"`

	OnEnter   Hook           `json:"-"`
	OnExit    Hook           `json:"-"`
	OnAdvance TransitionHook `json:"-"`
	OnRetreat TransitionHook `json:"-"`
}

// View is what the Renderer receives when a step is highlighted.
type View struct {
	Step  Step `json:"step"`
	Index int  `json:"index"`
	Total int  `json:"total"`
}

// Progress returns the human-friendly "n of m" counter.
func (v View) Progress() string {
	return fmt.Sprintf("%d of %d", v.Index+1, v.Total)
}
