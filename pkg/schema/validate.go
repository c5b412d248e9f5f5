package schema

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Validate checks a tour definition and reports every failure found.
func Validate(spec TourSpec) error {
	var errs []error

	if spec.ID == "" {
		errs = append(errs, &ValidationError{Key: "id", Reason: "required"})
	}
	if len(spec.Steps) == 0 {
		errs = append(errs, &ValidationError{Key: "steps", Reason: "at least one step is required"})
	}

	seen := make(map[string]int, len(spec.Steps))
	last := len(spec.Steps) - 1
	for i, st := range spec.Steps {
		key := func(field string) string { return fmt.Sprintf("steps[%d].%s", i, field) }

		if st.Title == "" {
			errs = append(errs, &ValidationError{Key: key("title"), Reason: "required"})
		}
		if st.ID != "" {
			if first, dup := seen[st.ID]; dup {
				errs = append(errs, &ValidationError{
					Key:    key("id"),
					Reason: fmt.Sprintf("duplicates steps[%d]", first),
					Value:  st.ID,
				})
			} else {
				seen[st.ID] = i
			}
		}
		if _, err := domain.ParsePlacement(st.Placement); err != nil {
			errs = append(errs, &ValidationError{Key: key("placement"), Reason: err.Error(), Value: st.Placement})
		}
		if st.DisableTarget && st.Target == "" {
			errs = append(errs, &ValidationError{Key: key("disable_target"), Reason: "requires a target"})
		}
		if st.NextRoute != "" && i == last {
			errs = append(errs, &ValidationError{Key: key("next_route"), Reason: "the last step completes the tour instead of navigating", Value: st.NextRoute})
		}
		if st.PrevRoute != "" && i == 0 {
			errs = append(errs, &ValidationError{Key: key("prev_route"), Reason: "the first step cannot go back", Value: st.PrevRoute})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
