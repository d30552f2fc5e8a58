package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rpda/internal/presentation/graph"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("failed to create renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// Report describes a machine as markdown: its designated states, then one
// table of transitions per direction. verdict is the validation outcome.
func Report(name string, m *domain.Machine, verdict error) string {
	var sb strings.Builder

	if name == "" {
		name = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "- **Initial:** `%s`\n", m.Initial)
	fmt.Fprintf(&sb, "- **Final:** %s\n", codeList(m.Final))
	fmt.Fprintf(&sb, "- **Reject:** %s\n", codeList(m.Reject))
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(m.Table.States()))
	if verdict == nil {
		sb.WriteString("- **Reversible:** yes\n")
	} else {
		fmt.Fprintf(&sb, "- **Reversible:** no (%s)\n", verdict)
	}

	for _, dir := range domain.Directions {
		fmt.Fprintf(&sb, "\n## %s\n\n", strings.ToUpper(dir.Name()[:1])+dir.Name()[1:])
		rows := 0
		for tr := range m.Table.Transitions(dir) {
			if rows == 0 {
				sb.WriteString("| From | Input | Stack top | To | Push |\n")
				sb.WriteString("|---|---|---|---|---|\n")
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", tr.State, tr.Input, tr.StackTop, tr.To, tr.Push)
			rows++
		}
		if rows == 0 {
			sb.WriteString("_No transitions._\n")
		}
	}

	sb.WriteString("\n## Diagram\n\n```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(m, nil))
	sb.WriteString("```\n")
	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}
