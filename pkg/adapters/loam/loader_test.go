package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/internal/testutils"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, docs map[string]string) *Loader {
	t.Helper()
	_, repo := testutils.SeedRepo(t, docs)
	return New(loam.NewTypedRepository[StepMetadata](repo))
}

func TestLoader_Tours(t *testing.T) {
	l := seed(t, map[string]string{
		"students.md": `---
tour: setup
order: 2
target: "#student-list"
title: Student records
placement: right-start
prev_route: /dashboard
---
Every student you follow is listed here.`,
		"dashboard.md": `---
tour: setup
order: 1
target: "#dashboard-summary"
title: Your dashboard
next_route: /students
disable_target: true
---
Open cases are summarised here.`,
		"README.md": `---
title: Not a step
---
Ignored.`,
	})

	specs, err := l.Tours(context.Background())
	require.NoError(t, err)
	require.Len(t, specs, 1)

	spec := specs[0]
	assert.Equal(t, "setup", spec.ID)
	require.Len(t, spec.Steps, 2)
	assert.Equal(t, schema.StepSpec{
		ID:            "dashboard",
		Target:        "#dashboard-summary",
		Title:         "Your dashboard",
		Description:   "Open cases are summarised here.",
		NextRoute:     "/students",
		DisableTarget: true,
	}, spec.Steps[0])
	assert.Equal(t, "students", spec.Steps[1].ID)
	assert.Equal(t, "right-start", spec.Steps[1].Placement)
	assert.Equal(t, "/dashboard", spec.Steps[1].PrevRoute)

	assert.NoError(t, schema.Validate(spec))
}

func TestLoader_Tours_OrderTieBreaksByID(t *testing.T) {
	l := seed(t, map[string]string{
		"b.md": "---\ntour: t\ntitle: B\n---\n",
		"a.md": "---\ntour: t\ntitle: A\n---\n",
	})

	specs, err := l.Tours(context.Background())
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "a", specs[0].Steps[0].ID)
	assert.Equal(t, "b", specs[0].Steps[1].ID)
}

func TestLoader_Tours_DetectsCollisions(t *testing.T) {
	l := seed(t, map[string]string{
		"one.md": "---\ntour: t\nid: same\ntitle: One\n---\n",
		"two.md": "---\ntour: t\nid: same\ntitle: Two\n---\n",
	})

	_, err := l.Tours(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
