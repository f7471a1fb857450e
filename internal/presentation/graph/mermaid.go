package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
// A nondeterministic run can sit in several states at once.
type GraphOverlay struct {
	CurrentStates  []string
	AcceptedStates []string
}

// OverlayFromReport marks the states of the last generation of a run.
func OverlayFromReport(report *domain.RunReport) *GraphOverlay {
	if report == nil {
		return nil
	}
	o := &GraphOverlay{}
	for _, tl := range report.Timelines {
		switch tl.Status {
		case domain.StatusAccepted:
			o.AcceptedStates = append(o.AcceptedStates, tl.State)
		case domain.StatusRunning:
			o.CurrentStates = append(o.CurrentStates, tl.State)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a machine definition.
// It applies semantic styling:
// - Initial state: ((Circle))
// - PRINT: [/Parallelogram/]
// - READ/WRITE: [(Cylinder)]
// - MOVE_*: [[Subroutine]]
// - Default: [Rectangle]
// Terminal targets are drawn once, accept as a double circle.
func GenerateMermaid(def *domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if def == nil {
		return sb.String()
	}

	terminals := map[string]bool{}
	for i, st := range def.States {
		safeID := sanitizeMermaidID(st.Name)

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case st.Command == domain.CommandPrint:
			opener, closer = "[/", "/]"
		case st.Command == domain.CommandRead || st.Command == domain.CommandWrite:
			opener, closer = "[(", ")]"
		case st.Command.IsMove():
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s<br/>%s\"%s\n", safeID, opener, st.Name, commandLabel(st), closer)

		for _, t := range st.Transitions {
			if domain.IsTerminalName(t.To) {
				terminals[t.To] = true
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escapeLabel(t.Trigger), sanitizeMermaidID(t.To))
		}
	}

	if terminals[domain.AcceptState] {
		fmt.Fprintf(&sb, "    %s(((\"%s\")))\n", domain.AcceptState, domain.AcceptState)
	}
	if terminals[domain.RejectState] {
		fmt.Fprintf(&sb, "    %s{{\"%s\"}}\n", domain.RejectState, domain.RejectState)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		writeClass(&sb, "current", overlay.CurrentStates)
		writeClass(&sb, "accepted", overlay.AcceptedStates)
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, class string, states []string) {
	seen := make(map[string]bool)
	for _, s := range states {
		id := sanitizeMermaidID(s)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(sb, "    class %s %s;\n", id, class)
	}
}

func commandLabel(st domain.StateDecl) string {
	if st.Command == domain.CommandNone {
		return "-"
	}
	if st.Memory != "" {
		return fmt.Sprintf("%s(%s)", st.Command, st.Memory)
	}
	return string(st.Command)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
