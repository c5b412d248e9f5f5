package schema

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
)

// Compile turns a tour definition into a builder. Routes become navigation
// hooks and disable_target becomes a balanced enter/exit pair. The spec is
// copied, so later changes to it do not affect the builder.
func Compile(spec TourSpec) registry.BuildFunc {
	steps := append([]StepSpec(nil), spec.Steps...)

	return func(nav ports.NavigationBridge, handle ports.Handle) ([]domain.Step, error) {
		b := dsl.New()
		for _, st := range steps {
			sb := b.Add(st.Target).
				ID(st.ID).
				Title(st.Title).
				Text(st.Description)
			if st.Placement != "" {
				sb.Placement(st.Placement)
			}
			if st.NextRoute != "" {
				sb.Navigate(nav, st.NextRoute)
			}
			if st.PrevRoute != "" {
				sb.NavigateBack(nav, st.PrevRoute)
			}
			if st.DisableTarget {
				sb.DisableTarget(handle)
			}
		}
		return b.Steps()
	}
}

// Register validates specs and registers them. Nothing is registered if
// any spec is invalid.
func Register(reg *registry.Registry, specs ...TourSpec) error {
	for _, spec := range specs {
		if err := Validate(spec); err != nil {
			return fmt.Errorf("tour %q: %w", spec.ID, err)
		}
	}
	for _, spec := range specs {
		reg.Register(spec.ID, Compile(spec))
	}
	return nil
}
