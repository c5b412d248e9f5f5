// Package testutils holds helpers shared by tests that need a Markdown
// tour repository on disk.
package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SeedRepo initializes a Loam repository in a temporary directory and saves
// docs into it, keyed by document ID (e.g. "dashboard.md"). It returns the
// absolute path of the repository and the repository itself, and fails the
// test immediately on error.
func SeedRepo(t *testing.T, docs map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	ctx := context.Background()
	for id, content := range docs {
		require.NoError(t, repo.Save(ctx, core.Document{ID: id, Content: content}), "Failed to save %s", id)
	}
	return absPath, repo
}
