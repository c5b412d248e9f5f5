package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/tours"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*Server, *memory.Bridge) {
	t.Helper()
	bridge := memory.New()
	guide, err := waypoint.New(waypoint.WithBridge(bridge))
	require.NoError(t, err)
	t.Cleanup(func() { guide.Close(context.Background()) })
	return NewServer(guide, bridge, "test", nil), bridge
}

func TestStartAndWalk(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleStart(ctx, req, startArgs{TourID: "dashbord"})
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Contains(t, err.Error(), `did you mean "dashboard"`)

	resp, err := s.handleStart(ctx, req, startArgs{TourID: tours.Dashboard})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resp.Session.Status)
	require.NotNil(t, resp.Bridge.View)
	assert.Equal(t, "summary", resp.Bridge.View.Step.ID)

	resp, err = s.handleAdvance(ctx, req, noArgs{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Session.StepIndex)

	resp, err = s.handleRetreat(ctx, req, noArgs{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Session.StepIndex)
}

func TestCancelAndAnswer(t *testing.T) {
	s, bridge := newServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleStart(ctx, req, startArgs{TourID: tours.Setup})
	require.NoError(t, err)

	resp, err := s.handleCancel(ctx, req, noArgs{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Bridge.Pending)

	_, err = s.handleCancel(ctx, req, noArgs{})
	assert.ErrorIs(t, err, domain.ErrTransitionInFlight)

	_, err = s.handleAnswer(ctx, req, answerArgs{Accept: false})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return bridge.Snapshot().Pending == ""
	}, testTimeout, testTick)
	status, err := s.handleStatus(ctx, req, noArgs{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, status.Session.Status)

	_, err = s.handleAnswer(ctx, req, answerArgs{Accept: true})
	assert.ErrorIs(t, err, memory.ErrNoPendingConfirmation)
}

func TestReportTargets(t *testing.T) {
	s, _ := newServer(t)
	resp, err := s.handleTargets(context.Background(), mcp.CallToolRequest{}, targetsArgs{Present: "#b, #a,,"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Locator{"#a", "#b"}, resp.Bridge.Present)
}

const (
	testTimeout = time.Second
	testTick    = 5 * time.Millisecond
)
