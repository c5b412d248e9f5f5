package schema_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw := map[string]any{
		"id":    "setup",
		"title": "First steps",
		"steps": []any{
			map[string]any{
				"id":             "students",
				"target":         "#student-list",
				"title":          "Students",
				"placement":      "right-start",
				"next_route":     "/appointments",
				"disable_target": "true",
			},
		},
	}

	spec, err := schema.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "setup", spec.ID)
	require.Len(t, spec.Steps, 1)
	st := spec.Steps[0]
	assert.Equal(t, "#student-list", st.Target)
	assert.Equal(t, "right-start", st.Placement)
	assert.Equal(t, "/appointments", st.NextRoute)
	assert.True(t, st.DisableTarget, "weakly typed input converts strings")
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := schema.Decode(map[string]any{
		"id":    "setup",
		"stesp": []any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stesp")
}

func TestValidate(t *testing.T) {
	valid := schema.TourSpec{
		ID: "setup",
		Steps: []schema.StepSpec{
			{ID: "a", Title: "A", Target: "#a", NextRoute: "/b"},
			{ID: "b", Title: "B", Target: "#b", PrevRoute: "/a", DisableTarget: true},
		},
	}

	tests := []struct {
		name string
		spec schema.TourSpec
		keys []string
	}{
		{"Valid", valid, nil},
		{"MissingID", schema.TourSpec{Steps: valid.Steps}, []string{"id"}},
		{"NoSteps", schema.TourSpec{ID: "x"}, []string{"steps"}},
		{
			name: "StepProblems",
			spec: schema.TourSpec{
				ID: "x",
				Steps: []schema.StepSpec{
					{ID: "a", Title: "A", PrevRoute: "/nowhere"},
					{ID: "a", Placement: "middle", DisableTarget: true, NextRoute: "/end"},
				},
			},
			keys: []string{
				"steps[0].prev_route",
				"steps[1].title",
				"steps[1].id",
				"steps[1].placement",
				"steps[1].disable_target",
				"steps[1].next_route",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.spec)
			if tt.keys == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var keys []string
			for _, e := range schema.ValidationErrors(err) {
				var ve *schema.ValidationError
				require.ErrorAs(t, e, &ve)
				keys = append(keys, ve.Key)
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

type recordingNav struct{ routes []string }

func (n *recordingNav) GoTo(_ context.Context, route string) error {
	n.routes = append(n.routes, route)
	return nil
}

type recordingHandle struct{ toggles []bool }

func (h *recordingHandle) Session() domain.Session { return domain.IdleSession() }

func (h *recordingHandle) SetInteractive(_ context.Context, _ domain.Locator, enabled bool) error {
	h.toggles = append(h.toggles, enabled)
	return nil
}

func TestCompile(t *testing.T) {
	spec := schema.TourSpec{
		ID: "setup",
		Steps: []schema.StepSpec{
			{ID: "a", Title: "A", Target: "#a", Placement: "top-end", NextRoute: "/b", DisableTarget: true},
			{Title: "B", Target: "#b", PrevRoute: "/a"},
		},
	}
	nav := &recordingNav{}
	handle := &recordingHandle{}

	steps, err := schema.Compile(spec)(nav, handle)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	a := steps[0]
	assert.Equal(t, domain.Placement{Side: domain.SideTop, Align: domain.AlignEnd}, a.Placement)
	require.NotNil(t, a.OnEnter)
	require.NotNil(t, a.OnExit)
	require.NotNil(t, a.OnAdvance)
	assert.Nil(t, a.OnRetreat)

	ctx := context.Background()
	require.NoError(t, a.OnEnter(ctx))
	await, err := a.OnAdvance(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AwaitTarget, await)
	require.NoError(t, a.OnExit(ctx))

	_, err = steps[1].OnRetreat(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"/b", "/a"}, nav.routes)
	assert.Equal(t, []bool{false, true}, handle.toggles)
}

func TestRegister(t *testing.T) {
	reg := registry.NewRegistry()

	err := schema.Register(reg,
		schema.TourSpec{ID: "ok", Steps: []schema.StepSpec{{Title: "Hi"}}},
		schema.TourSpec{ID: "bad"},
	)
	require.Error(t, err)
	assert.Empty(t, reg.IDs(), "nothing is registered when one spec is invalid")

	require.NoError(t, schema.Register(reg, schema.TourSpec{ID: "ok", Steps: []schema.StepSpec{{Title: "Hi"}}}))
	tour, err := reg.Build("ok", &recordingNav{}, &recordingHandle{})
	require.NoError(t, err)
	assert.Equal(t, "step-1", tour.Step(0).ID)
}
