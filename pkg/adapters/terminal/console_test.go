package terminal_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/adapters/terminal"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	c := terminal.New(strings.NewReader("  next \np\nlast"), io.Discard)
	ctx := context.Background()

	for _, want := range []string{"next", "p", "last"} {
		got, err := c.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := c.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_ContextDone(t *testing.T) {
	r, w := io.Pipe()
	c := terminal.New(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = io.WriteString(w, "late\n") }()
	got, err := c.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	c := terminal.New(strings.NewReader("YES\nn\n\n"), &out)
	ctx := context.Background()

	ok, err := c.Confirm(ctx, "Leave?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Confirm(ctx, "Leave?")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Confirm(ctx, "Leave?")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, out.String(), "Leave? [y/N]")
}

func TestHighlight(t *testing.T) {
	var out bytes.Buffer
	upper := func(s string) (string, error) { return strings.ToUpper(s), nil }
	c := terminal.New(strings.NewReader(""), &out, terminal.WithRenderer(upper), terminal.WithWidth(0))
	ctx := context.Background()

	require.NoError(t, c.SetInteractive(ctx, "#new-student", false))
	require.NoError(t, c.Highlight(ctx, domain.View{
		Step: domain.Step{
			Target:      "#new-student",
			Title:       "Create a record",
			Description: "records hold notes",
			Placement:   domain.Placement{Side: domain.SideLeft, Align: domain.AlignCenter},
		},
		Index: 3,
		Total: 7,
	}))

	s := out.String()
	assert.Contains(t, s, "Create a record")
	assert.Contains(t, s, "4 of 7")
	assert.Contains(t, s, "#new-student")
	assert.Contains(t, s, "left-center")
	assert.Contains(t, s, "[locked]")
	assert.Contains(t, s, "RECORDS HOLD NOTES")
	assert.Contains(t, s, "[p] back")
}

func TestGoTo(t *testing.T) {
	var out bytes.Buffer
	c := terminal.New(strings.NewReader(""), &out)
	require.NoError(t, c.GoTo(context.Background(), "/students"))
	assert.Equal(t, "/students", c.Route())
	assert.Contains(t, out.String(), "/students")
	assert.True(t, c.Resolve(context.Background(), "#anything"))
}
