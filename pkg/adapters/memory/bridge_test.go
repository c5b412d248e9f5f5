package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_ResolveIsPermissiveUntilTargetsKnown(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	assert.True(t, b.Resolve(ctx, "#anything"))

	b.SetPresent("#a")
	assert.True(t, b.Resolve(ctx, "#a"))
	assert.False(t, b.Resolve(ctx, "#b"))

	b.Reveal("#b")
	assert.True(t, b.Resolve(ctx, "#b"))
}

func TestBridge_HighlightAndClear(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	view := domain.View{Step: domain.Step{ID: "a", Title: "A"}, Index: 0, Total: 2}
	require.NoError(t, b.Highlight(ctx, view))
	got, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "a", got.Step.ID)

	require.NoError(t, b.Clear(ctx))
	_, ok = b.Current()
	assert.False(t, ok)

	st := b.Snapshot()
	assert.Equal(t, 1, st.Highlights)
	assert.Equal(t, 1, st.Clears)
	assert.Nil(t, st.View)
}

func TestBridge_Screens(t *testing.T) {
	ctx := context.Background()
	b := memory.New(
		memory.WithPresent("#dashboard"),
		memory.WithScreens(map[string][]domain.Locator{
			"/students": {"#student-list", "#new-student"},
		}),
		memory.WithNavigationDelay(10*time.Millisecond),
	)

	require.NoError(t, b.GoTo(ctx, "/students"))
	assert.Equal(t, "/students", b.Route())
	assert.False(t, b.Resolve(ctx, "#dashboard"), "the old screen is gone")
	assert.False(t, b.Resolve(ctx, "#student-list"), "the new screen is still loading")

	assert.Eventually(t, func() bool { return b.Resolve(ctx, "#student-list") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.Locator{"#new-student", "#student-list"}, b.Snapshot().Present)

	// Unknown routes only record history.
	require.NoError(t, b.GoTo(ctx, "/elsewhere"))
	assert.Equal(t, []string{"/students", "/elsewhere"}, b.Snapshot().History)
}

func TestBridge_SetInteractive(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	require.NoError(t, b.SetInteractive(ctx, "#x", false))
	assert.Equal(t, []domain.Locator{"#x"}, b.Snapshot().Disabled)
	require.NoError(t, b.SetInteractive(ctx, "#x", true))
	assert.Empty(t, b.Snapshot().Disabled)
}

func TestBridge_Confirm(t *testing.T) {
	b := memory.New()
	ctx := context.Background()

	assert.ErrorIs(t, b.Answer(true), memory.ErrNoPendingConfirmation)

	result := make(chan bool, 1)
	go func() {
		ok, err := b.Confirm(ctx, "Leave?")
		assert.NoError(t, err)
		result <- ok
	}()

	require.NoError(t, b.Wait(ctx, func(s memory.State) bool { return s.Pending != "" }))
	msg, ok := b.Pending()
	require.True(t, ok)
	assert.Equal(t, "Leave?", msg)

	_, err := b.Confirm(ctx, "again?")
	assert.Error(t, err, "only one question at a time")

	require.NoError(t, b.Answer(true))
	assert.True(t, <-result)
	_, ok = b.Pending()
	assert.False(t, ok)
}

func TestBridge_ConfirmContextDone(t *testing.T) {
	b := memory.New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok, err := b.Confirm(ctx, "Leave?")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, pending := b.Pending()
	assert.False(t, pending)
}
