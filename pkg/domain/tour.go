package domain

import "fmt"

// Tour is a named, ordered, non-empty sequence of steps.
// It cannot be modified once built.
type Tour struct {
	id    string
	steps []Step
}

// NewTour validates and freezes a step sequence.
// Steps without an ID are named after their position ("step-1", "step-2"...).
func NewTour(id string, steps []Step) (*Tour, error) {
	if id == "" {
		return nil, fmt.Errorf("tour id is required")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("tour %q: %w", id, ErrEmptyTour)
	}

	frozen := make([]Step, len(steps))
	copy(frozen, steps)
	for i := range frozen {
		if frozen[i].ID == "" {
			frozen[i].ID = fmt.Sprintf("step-%d", i+1)
		}
		if err := frozen[i].Placement.Validate(); err != nil {
			return nil, fmt.Errorf("tour %q step %d: %w", id, i, err)
		}
		frozen[i].Placement = frozen[i].Placement.Normalize()
	}

	return &Tour{id: id, steps: frozen}, nil
}

// ID returns the tour identifier.
func (t *Tour) ID() string { return t.id }

// Len returns the number of steps.
func (t *Tour) Len() int { return len(t.steps) }

// Step returns the step at index i. It panics when i is out of range.
func (t *Tour) Step(i int) Step { return t.steps[i] }

// IsLast reports whether i is the index of the final step.
func (t *Tour) IsLast(i int) bool { return i == len(t.steps)-1 }

// Steps returns a copy of the step sequence.
func (t *Tour) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}
