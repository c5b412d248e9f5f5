package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNav struct {
	routes []string
	err    error
}

func (n *fakeNav) GoTo(_ context.Context, route string) error {
	n.routes = append(n.routes, route)
	return n.err
}

type fakeHandle struct {
	calls []string
}

func (h *fakeHandle) Session() domain.Session { return domain.IdleSession() }

func (h *fakeHandle) SetInteractive(_ context.Context, target domain.Locator, enabled bool) error {
	state := "disable"
	if enabled {
		state = "enable"
	}
	h.calls = append(h.calls, state+":"+string(target))
	return nil
}

func TestBuilder_SimpleTour(t *testing.T) {
	nav := &fakeNav{}
	h := &fakeHandle{}

	b := New()
	b.Add("#dashboard").
		ID("welcome").
		Title("Welcome").
		Text("This is your *dashboard*.").
		Placement("bottom-center").
		Navigate(nav, "/students")
	b.Add("#students-new").
		Title("Add a student").
		Place(domain.SideLeft, domain.AlignEnd).
		DisableTarget(h)
	b.Add("").Title("Done")

	tour, err := b.Build("setup")
	require.NoError(t, err)
	require.Equal(t, 3, tour.Len())

	first := tour.Step(0)
	assert.Equal(t, "welcome", first.ID)
	assert.Equal(t, domain.Locator("#dashboard"), first.Target)
	assert.Equal(t, domain.Placement{Side: domain.SideBottom, Align: domain.AlignCenter}, first.Placement)

	await, err := first.OnAdvance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AwaitTarget, await)
	assert.Equal(t, []string{"/students"}, nav.routes)

	second := tour.Step(1)
	assert.Equal(t, "step-2", second.ID)
	require.NotNil(t, second.OnEnter)
	require.NotNil(t, second.OnExit)
	require.NoError(t, second.OnEnter(context.Background()))
	require.NoError(t, second.OnExit(context.Background()))
	assert.Equal(t, []string{"disable:#students-new", "enable:#students-new"}, h.calls)

	third := tour.Step(2)
	assert.Equal(t, domain.Locator(""), third.Target)
	assert.Equal(t, domain.Placement{Side: domain.SideBottom, Align: domain.AlignStart}, third.Placement)
}

func TestBuilder_InvalidPlacement(t *testing.T) {
	b := New()
	b.Add("#x").Placement("diagonal")

	_, err := b.Steps()
	assert.ErrorContains(t, err, "unknown side")
}

func TestBuilder_EmptyTour(t *testing.T) {
	_, err := New().Build("nothing")
	assert.ErrorIs(t, err, domain.ErrEmptyTour)
}

func TestNavigate_Error(t *testing.T) {
	nav := &fakeNav{err: errors.New("no route")}
	await, err := Navigate(nav, "/missing")(context.Background())
	assert.Error(t, err)
	assert.Equal(t, domain.AwaitNone, await)
}

func TestSequence(t *testing.T) {
	var order []string
	mk := func(name string, err error) domain.Hook {
		return func(context.Context) error {
			order = append(order, name)
			return err
		}
	}

	assert.Nil(t, Sequence(nil, nil))

	h := Sequence(mk("a", nil), nil, mk("b", errors.New("b failed")), mk("c", nil))
	err := h(context.Background())
	assert.ErrorContains(t, err, "b failed")
	assert.Equal(t, []string{"a", "b", "c"}, order, "every hook runs even after a failure")
}

func TestStepBuilder_ExitOrderUnwinds(t *testing.T) {
	var order []string
	mk := func(name string) domain.Hook {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	step := New().Add("#x").
		OnEnter(mk("enter-1")).OnExit(mk("exit-1")).
		OnEnter(mk("enter-2")).OnExit(mk("exit-2")).
		Build()

	require.NoError(t, step.OnEnter(context.Background()))
	require.NoError(t, step.OnExit(context.Background()))
	assert.Equal(t, []string{"enter-1", "enter-2", "exit-2", "exit-1"}, order)
}
