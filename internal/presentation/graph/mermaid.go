package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rpda/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart of the machine's states and
// transitions. It applies semantic styling:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Reject: {{Hexagon}}
// - Default: [Rectangle]
// Forward transitions are solid arrows, backward ones dotted. Edge labels use
// the "input, top/push" notation. With no dirs both halves are drawn.
func GenerateMermaid(m *domain.Machine, overlay *GraphOverlay, dirs ...domain.Direction) string {
	if len(dirs) == 0 {
		dirs = domain.Directions
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range m.Table.States() {
		opener, closer := "[", "]"
		switch {
		case state == m.Initial:
			opener, closer = "((", "))"
		case m.IsFinal(state):
			opener, closer = "(((", ")))"
		case m.IsReject(state):
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, escape(state), closer)
	}

	for _, dir := range dirs {
		for tr := range m.Table.Transitions(dir) {
			label := escape(Label(tr))
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if dir == domain.Backward {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(tr.State), arrow, sanitizeMermaidID(tr.To))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// Label renders a transition edge as "input, top/push".
func Label(tr domain.Transition) string {
	return fmt.Sprintf("%s, %s/%s", tr.Input, tr.StackTop, tr.Push)
}

// escape keeps quotes from closing a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
