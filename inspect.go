package waypoint

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/schema"
)

// Inspect returns the declarative view of a registered tour, whether it was
// defined in code or as data. Routes and interaction toggles are discovered
// by running the step hooks against recording collaborators, so hooks must
// not act on anything else.
func (g *Guide) Inspect(id string) (schema.TourSpec, error) {
	probe := &probe{}
	tour, err := g.registry.Build(id, probe, probe)
	if err != nil {
		return schema.TourSpec{}, err
	}

	ctx := context.Background()
	spec := schema.TourSpec{ID: tour.ID(), Steps: make([]schema.StepSpec, 0, tour.Len())}
	for _, st := range tour.Steps() {
		out := schema.StepSpec{
			ID:          st.ID,
			Target:      string(st.Target),
			Title:       st.Title,
			Description: st.Description,
			Placement:   st.Placement.String(),
		}
		if st.OnAdvance != nil {
			probe.reset()
			_, _ = st.OnAdvance(ctx)
			out.NextRoute = probe.route
		}
		if st.OnRetreat != nil {
			probe.reset()
			_, _ = st.OnRetreat(ctx)
			out.PrevRoute = probe.route
		}
		if st.OnEnter != nil && st.Target != "" {
			probe.reset()
			_ = st.OnEnter(ctx)
			out.DisableTarget = probe.disabled[st.Target]
		}
		spec.Steps = append(spec.Steps, out)
	}
	return spec, nil
}

// probe records what hooks ask of their collaborators.
type probe struct {
	route    string
	disabled map[domain.Locator]bool
}

func (p *probe) reset() {
	p.route = ""
	p.disabled = make(map[domain.Locator]bool)
}

func (p *probe) GoTo(_ context.Context, route string) error {
	p.route = route
	return nil
}

func (p *probe) Session() domain.Session { return domain.IdleSession() }

func (p *probe) SetInteractive(_ context.Context, target domain.Locator, enabled bool) error {
	if !enabled {
		p.disabled[target] = true
	}
	return nil
}
