package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/terminal"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/runner"
	"github.com/aretw0/waypoint/pkg/tours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, input io.Reader) (*runner.Runner, *bytes.Buffer, *[]domain.Outcome) {
	t.Helper()
	var out bytes.Buffer
	console := terminal.New(input, &out, terminal.WithWidth(0))
	outcomes := &[]domain.Outcome{}
	guide, err := waypoint.New(
		waypoint.WithNavigator(console),
		waypoint.WithRenderer(console),
		waypoint.WithConfirmationGate(console),
		waypoint.WithCompletion(func(o domain.Outcome) { *outcomes = append(*outcomes, o) }),
	)
	require.NoError(t, err)
	return runner.NewRunner(guide, console, runner.WithOutput(&out)), &out, outcomes
}

func TestRun_Completes(t *testing.T) {
	r, out, outcomes := setup(t, strings.NewReader("\nnext\n\n"))
	require.NoError(t, r.Run(context.Background(), tours.Dashboard))

	require.Len(t, *outcomes, 1)
	assert.Equal(t, domain.ReasonCompleted, (*outcomes)[0].Reason)
	assert.Contains(t, out.String(), "Recent activity")
}

func TestRun_NavigatesAndCancels(t *testing.T) {
	r, out, outcomes := setup(t, strings.NewReader("p\nn\nn\np\nq\ny\n"))
	require.NoError(t, r.Run(context.Background(), tours.Setup))

	require.Len(t, *outcomes, 1)
	assert.Equal(t, domain.ReasonUserCancelled, (*outcomes)[0].Reason)
	assert.Equal(t, 1, (*outcomes)[0].StepIndex)
	assert.Contains(t, out.String(), tours.RouteStudents)
	assert.Contains(t, out.String(), tours.RouteDashboard)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestRun_DeclineThenEOF(t *testing.T) {
	r, out, outcomes := setup(t, strings.NewReader("q\nn\nwat\nh\n"))
	require.NoError(t, r.Run(context.Background(), tours.Setup))

	require.Len(t, *outcomes, 1)
	assert.Equal(t, domain.ReasonAborted, (*outcomes)[0].Reason)
	assert.Contains(t, out.String(), `Unknown command "wat"`)
	assert.Contains(t, out.String(), "Commands:")
}

func TestRun_UnknownTour(t *testing.T) {
	r, _, outcomes := setup(t, strings.NewReader(""))
	err := r.Run(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	require.Len(t, *outcomes, 1)
	assert.Equal(t, domain.ReasonUnknownTour, (*outcomes)[0].Reason)
}

func TestRun_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r, _, outcomes := setup(t, pr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := r.Run(ctx, tours.Dashboard)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, *outcomes, 1)
	assert.Equal(t, domain.ReasonAborted, (*outcomes)[0].Reason)
}
