package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Placement
		wantErr bool
	}{
		{in: "", want: domain.Placement{Side: domain.SideBottom, Align: domain.AlignStart}},
		{in: "right", want: domain.Placement{Side: domain.SideRight, Align: domain.AlignStart}},
		{in: "Top-Center", want: domain.Placement{Side: domain.SideTop, Align: domain.AlignCenter}},
		{in: " left-end ", want: domain.Placement{Side: domain.SideLeft, Align: domain.AlignEnd}},
		{in: "middle", wantErr: true},
		{in: "top-middle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParsePlacement(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlacement_String(t *testing.T) {
	assert.Equal(t, "bottom-start", domain.Placement{}.String())
	assert.Equal(t, "right-end", domain.Placement{Side: domain.SideRight, Align: domain.AlignEnd}.String())
}

func TestNewTour(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := domain.NewTour("empty", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTour)
	})

	t.Run("MissingID", func(t *testing.T) {
		_, err := domain.NewTour("", []domain.Step{{Title: "a"}})
		assert.Error(t, err)
	})

	t.Run("InvalidPlacement", func(t *testing.T) {
		_, err := domain.NewTour("bad", []domain.Step{{Placement: domain.Placement{Side: "inside"}}})
		assert.Error(t, err)
	})

	t.Run("FrozenCopy", func(t *testing.T) {
		steps := []domain.Step{{Title: "first"}, {ID: "second", Title: "second"}}
		tour, err := domain.NewTour("demo", steps)
		require.NoError(t, err)

		steps[0].Title = "changed"
		assert.Equal(t, "first", tour.Step(0).Title)
		assert.Equal(t, "step-1", tour.Step(0).ID)
		assert.Equal(t, "second", tour.Step(1).ID)
		assert.Equal(t, domain.SideBottom, tour.Step(0).Placement.Side)

		out := tour.Steps()
		out[1].Title = "mutated"
		assert.Equal(t, "second", tour.Step(1).Title)

		assert.Equal(t, 2, tour.Len())
		assert.False(t, tour.IsLast(0))
		assert.True(t, tour.IsLast(1))
	})
}

func TestReason_Status(t *testing.T) {
	assert.Equal(t, domain.StatusCompleted, domain.ReasonCompleted.Status())
	assert.Equal(t, domain.StatusCancelled, domain.ReasonUserCancelled.Status())
	assert.Equal(t, domain.StatusCancelled, domain.ReasonAborted.Status())
	assert.Equal(t, domain.StatusIdle, domain.ReasonUnknownTour.Status())
	assert.Equal(t, domain.StatusIdle, domain.ReasonRejected.Status())

	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.False(t, domain.StatusActive.IsTerminal())
}

func TestIdleSession(t *testing.T) {
	s := domain.IdleSession()
	assert.Equal(t, -1, s.StepIndex)
	assert.Equal(t, domain.StatusIdle, s.Status)
}

func TestView_Progress(t *testing.T) {
	v := domain.View{Index: 1, Total: 5}
	assert.Equal(t, "2 of 5", v.Progress())
}

func TestMerge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnTourStart: func(context.Context, *domain.TourEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnTourStart: func(context.Context, *domain.TourEvent) { calls = append(calls, "b") },
		OnTourEnd:   func(context.Context, *domain.EndEvent) { calls = append(calls, "end") },
	}

	merged := domain.Merge(a, domain.LifecycleHooks{}, b)
	require.NotNil(t, merged.OnTourStart)
	assert.Nil(t, merged.OnFault)

	merged.OnTourStart(context.Background(), &domain.TourEvent{})
	merged.OnTourEnd(context.Background(), &domain.EndEvent{})
	assert.Equal(t, []string{"a", "b", "end"}, calls)
}
