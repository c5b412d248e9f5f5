package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func setupSpec() schema.TourSpec {
	return schema.TourSpec{
		ID: "setup",
		Steps: []schema.StepSpec{
			{ID: "welcome", Title: "Welcome"},
			{ID: "dashboard", Title: "Your \"dashboard\"", Target: "#dashboard-summary", NextRoute: "/students"},
			{ID: "new-student", Title: "Students", Target: "#student-list", PrevRoute: "/dashboard"},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(setupSpec(), nil)

	for _, want := range []string{
		"graph LR\n",
		`start(("setup"))`,
		`s0_welcome("Welcome")`,
		`s1_dashboard["Your 'dashboard'<br/><code>#dashboard-summary</code>"]`,
		"start --> s0_welcome",
		"s0_welcome --> s1_dashboard",
		`s1_dashboard -- "/students" --> s2_new_student`,
		`s2_new_student -. "/dashboard" .-> s1_dashboard`,
		"s2_new_student --> done",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(setupSpec(), &graph.GraphOverlay{CurrentIndex: 1})

	assert.Contains(t, out, "class s0_welcome visited;")
	assert.Contains(t, out, "class s1_dashboard current;")
	assert.NotContains(t, out, "class s2_new_student")

	idle := graph.GenerateMermaid(setupSpec(), &graph.GraphOverlay{CurrentIndex: -1})
	assert.False(t, strings.Contains(idle, "classDef"), "idle sessions have no overlay")
}
