package dsl

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step domain.Step
	err  error
}

// ID names the step. Unnamed steps are numbered by domain.NewTour.
func (s *StepBuilder) ID(id string) *StepBuilder {
	s.step.ID = id
	return s
}

// Title sets the popover title.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Text sets the popover description. Inline emphasis markup is allowed.
func (s *StepBuilder) Text(description string) *StepBuilder {
	s.step.Description = description
	return s
}

// Place sets side and alignment of the popover.
func (s *StepBuilder) Place(side domain.Side, align domain.Align) *StepBuilder {
	s.step.Placement = domain.Placement{Side: side, Align: align}
	return s
}

// Placement sets the popover placement from the "side-align" shorthand.
// An invalid value is reported by Builder.Steps.
func (s *StepBuilder) Placement(shorthand string) *StepBuilder {
	p, err := domain.ParsePlacement(shorthand)
	if err != nil {
		s.err = err
		return s
	}
	s.step.Placement = p
	return s
}

// OnEnter appends a hook run when the step is entered.
func (s *StepBuilder) OnEnter(h domain.Hook) *StepBuilder {
	s.step.OnEnter = Sequence(s.step.OnEnter, h)
	return s
}

// OnExit prepends a hook run when the step is left, so exits unwind in the
// reverse order of their enters.
func (s *StepBuilder) OnExit(h domain.Hook) *StepBuilder {
	s.step.OnExit = Sequence(h, s.step.OnExit)
	return s
}

// OnAdvance sets the hook run when the user asks for the next step.
func (s *StepBuilder) OnAdvance(h domain.TransitionHook) *StepBuilder {
	s.step.OnAdvance = h
	return s
}

// OnRetreat sets the hook run when the user asks for the previous step.
func (s *StepBuilder) OnRetreat(h domain.TransitionHook) *StepBuilder {
	s.step.OnRetreat = h
	return s
}

// Navigate makes advancing from this step go to route and wait for the next
// step's target.
func (s *StepBuilder) Navigate(nav ports.NavigationBridge, route string) *StepBuilder {
	return s.OnAdvance(Navigate(nav, route))
}

// NavigateBack makes retreating from this step go to route and wait for the
// previous step's target.
func (s *StepBuilder) NavigateBack(nav ports.NavigationBridge, route string) *StepBuilder {
	return s.OnRetreat(Navigate(nav, route))
}

// DisableTarget blocks interaction with the step's target while it is shown.
func (s *StepBuilder) DisableTarget(h ports.Handle) *StepBuilder {
	enter, exit := DisableInteraction(h, s.step.Target)
	return s.OnEnter(enter).OnExit(exit)
}

// Build returns the underlying domain.Step.
func (s *StepBuilder) Build() domain.Step {
	return s.step
}
