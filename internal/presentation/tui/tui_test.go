package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer(60)
	out, err := render("Every student is listed **here**.")
	require.NoError(t, err)
	assert.Contains(t, out, "here")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Greater(t, buf.Len(), 0)
}

func TestTarget(t *testing.T) {
	assert.Contains(t, tui.Target("#student-list"), "#student-list")
	assert.Contains(t, tui.Faint("2 of 7"), "2 of 7")
}
