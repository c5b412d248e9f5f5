package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "waypoint version")
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "setup")
	assert.Contains(t, out, "7 steps")
}

func TestGraph(t *testing.T) {
	out, err := execute(t, "graph", "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	_, err = execute(t, "graph", "stup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'setup'")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("id: ok\nsteps:\n  - title: One\n"), 0o644))

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ ok (1 steps)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("id: broken\nsteps:\n  - id: a\n    prev_route: /x\n"), 0o644))

	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "steps[0].title")
}
