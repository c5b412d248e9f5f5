package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/schema"
)

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	// CurrentIndex is the step being shown; steps before it are styled as visited.
	CurrentIndex int
}

// GenerateMermaid produces a Mermaid flowchart of a linear tour.
// Forward edges are solid and labelled with the route requested on advance;
// dotted edges show the route requested when going back.
func GenerateMermaid(spec schema.TourSpec, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    start((\"" + escape(spec.ID) + "\"))\n")

	ids := make([]string, len(spec.Steps))
	for i, st := range spec.Steps {
		ids[i] = nodeID(i, st.ID)

		label := escape(st.Title)
		if label == "" {
			label = escape(st.ID)
		}
		if st.Target != "" {
			label += "<br/><code>" + escape(st.Target) + "</code>"
		}
		opener, closer := "[", "]"
		if st.Target == "" {
			opener, closer = "(", ")" // floating popover
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", ids[i], opener, label, closer))
	}
	sb.WriteString("    done((\"done\"))\n")

	if len(ids) > 0 {
		sb.WriteString(fmt.Sprintf("    start --> %s\n", ids[0]))
	}
	for i, st := range spec.Steps {
		next := "done"
		if i+1 < len(ids) {
			next = ids[i+1]
		}
		if st.NextRoute != "" {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", ids[i], escape(st.NextRoute), next))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[i], next))
		}
		if st.PrevRoute != "" && i > 0 {
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", ids[i], escape(st.PrevRoute), ids[i-1]))
		}
	}

	if overlay != nil && overlay.CurrentIndex >= 0 && overlay.CurrentIndex < len(ids) {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for i := 0; i < overlay.CurrentIndex; i++ {
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", ids[i]))
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", ids[overlay.CurrentIndex]))
	}

	return sb.String()
}

// nodeID prefixes the position so that unnamed or oddly named steps still
// produce unique, valid Mermaid identifiers.
func nodeID(i int, id string) string {
	if id == "" {
		return fmt.Sprintf("s%d", i)
	}
	return fmt.Sprintf("s%d_%s", i, sanitizeMermaidID(id))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "#", "")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
