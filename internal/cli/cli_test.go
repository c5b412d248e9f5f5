package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/tours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetingYAML = `id: greeting
steps:
  - id: hello
    title: Hello
  - id: menu
    target: "#menu"
    title: Menu
    description: Open the **menu**.
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewGuide_TourFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeting.yaml"), []byte(greetingYAML), 0o644))

	cfg := testConfig(t)
	cfg.Tours.Dir = dir
	guide, cleanup, err := NewGuide(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, []string{tours.Dashboard, "greeting", tours.Setup}, guide.Tours())
}

func TestNewGuide_BadTourFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tours.Dir = filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err := NewGuide(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestNewGuide_RedisLease(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()

	first, cleanupFirst, err := NewGuide(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanupFirst()
	second, cleanupSecond, err := NewGuide(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanupSecond()

	ctx := context.Background()
	require.NoError(t, first.Start(ctx, tours.Dashboard))
	assert.ErrorIs(t, second.Start(ctx, tours.Dashboard), domain.ErrTourActive)

	first.Close(ctx)
	require.NoError(t, second.Start(ctx, tours.Dashboard))
	second.Close(ctx)
}

func TestCloseGuide_DeclinesPendingConfirmation(t *testing.T) {
	bridge := memory.New()
	finished := make(chan domain.Outcome, 1)
	guide, cleanup, err := NewGuide(testConfig(t), logging.NewNop(),
		waypoint.WithBridge(bridge),
		waypoint.WithCompletion(func(o domain.Outcome) { finished <- o }),
	)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, guide.Start(ctx, tours.Setup))

	cancelled := make(chan error, 1)
	go func() { cancelled <- guide.RequestCancel(ctx) }()
	require.Eventually(t, func() bool {
		return bridge.Snapshot().Pending != ""
	}, 2*time.Second, 5*time.Millisecond)

	CloseGuide(ctx, guide, bridge, logging.NewNop())

	select {
	case o := <-finished:
		assert.Equal(t, domain.ReasonAborted, o.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("completion never fired after shutdown")
	}
	require.NoError(t, <-cancelled)
	assert.Empty(t, bridge.Snapshot().Pending)
	assert.Equal(t, domain.IdleSession(), guide.Session())

	// Nothing pending: closing again is a no-op.
	CloseGuide(ctx, guide, bridge, logging.NewNop())
}

func TestRunTour(t *testing.T) {
	var out bytes.Buffer
	err := RunTour(context.Background(), testConfig(t), logging.NewNop(), tours.Dashboard, RunOptions{
		In:  strings.NewReader("\n\n\n"),
		Out: &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Tour 'dashboard' completed.")
}

func TestRunTour_Unknown(t *testing.T) {
	var out bytes.Buffer
	err := RunTour(context.Background(), testConfig(t), logging.NewNop(), "setpu", RunOptions{
		In:  strings.NewReader(""),
		Out: &out,
	})
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Contains(t, out.String(), "Did you mean 'setup'?")
}

func TestDescribeOutcome(t *testing.T) {
	assert.Equal(t, "Left tour 'setup' at step 3.", describeOutcome(domain.Outcome{TourID: "setup", Reason: domain.ReasonUserCancelled, StepIndex: 2}))
	assert.Equal(t, "Tour 'x' not started: unknown_tour.", describeOutcome(domain.Outcome{TourID: "x", Reason: domain.ReasonUnknownTour}))
}
