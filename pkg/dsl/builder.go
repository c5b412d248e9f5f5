package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Builder collects steps in the order they are added.
type Builder struct {
	steps []*StepBuilder
}

// New creates a new tour builder.
func New() *Builder {
	return &Builder{}
}

// Add appends a step pointing at target and returns its builder.
// Use an empty target for a floating popover.
func (b *Builder) Add(target string) *StepBuilder {
	sb := &StepBuilder{
		step: domain.Step{
			Target: domain.Locator(target),
		},
	}
	b.steps = append(b.steps, sb)
	return sb
}

// Steps returns the built steps, or the configuration errors joined.
func (b *Builder) Steps() ([]domain.Step, error) {
	var errs []error
	steps := make([]domain.Step, 0, len(b.steps))
	for i, sb := range b.steps {
		if sb.err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, sb.err))
			continue
		}
		steps = append(steps, sb.Build())
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return steps, nil
}

// Build freezes the steps into a tour.
func (b *Builder) Build(id string) (*domain.Tour, error) {
	steps, err := b.Steps()
	if err != nil {
		return nil, err
	}
	return domain.NewTour(id, steps)
}
