package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ReportMarkdown renders a run report as markdown.
func ReportMarkdown(r *domain.RunReport) string {
	var sb strings.Builder
	title := r.MachineID
	if title == "" {
		title = "run"
	}
	fmt.Fprintf(&sb, "# %s %s\n\n", verdictEmoji(r.Result), title)
	fmt.Fprintf(&sb, "- **Input:** `%s`\n", r.Input)
	fmt.Fprintf(&sb, "- **Result:** %s\n", r.Result)
	fmt.Fprintf(&sb, "- **Steps:** %d\n", r.Steps)
	if !r.Halted {
		sb.WriteString("- **Interrupted** before a halting generation\n")
	}
	if r.ID != "" {
		fmt.Fprintf(&sb, "- **Report:** `%s`\n", r.ID)
	}

	if r.Accepted != nil {
		fmt.Fprintf(&sb, "\n## Accepted timeline\n\n- **State:** %s\n- **Output:** `%s`\n", r.Accepted.State, r.Accepted.Output)
		writeMemories(&sb, r.Accepted.Memories)
	}

	if len(r.Timelines) > 0 {
		sb.WriteString("\n## Timelines\n\n| # | State | Status | Input | Output |\n|---|---|---|---|---|\n")
		for _, tl := range r.Timelines {
			fmt.Fprintf(&sb, "| %d | %s | %s %s | `%s` | `%s` |\n",
				tl.Index, tl.State, tl.Status.Emoji(), tl.Status, cell(tl.Input), cell(tl.Output))
		}
	}
	return sb.String()
}

// TraceGeneration renders one generation as plain text lines, one per timeline.
func TraceGeneration(generation int, timelines []domain.TimelineSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "generation %d (%d timelines)\n", generation, len(timelines))
	for _, tl := range timelines {
		fmt.Fprintf(&sb, "  %s [%d] %-8s in=%s out=%s", tl.Status.Emoji(), tl.Index, tl.State, tl.Input, tl.Output)
		for _, name := range sortedKeys(tl.Memories) {
			fmt.Fprintf(&sb, " %s=%s", name, tl.Memories[name])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeMemories(sb *strings.Builder, mems map[string]string) {
	for _, name := range sortedKeys(mems) {
		fmt.Fprintf(sb, "- **%s:** `%s`\n", name, mems[name])
	}
}

func verdictEmoji(r domain.Result) string {
	if r == domain.ResultAccepted {
		return domain.StatusAccepted.Emoji()
	}
	return domain.StatusRejected.Emoji()
}

func cell(s string) string {
	if s == "" {
		return " "
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
