package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about a definition.
type Issue struct {
	Severity Severity
	State    string
	// Line is the 1-based source line of State, or 0 when unknown.
	Line    int
	Message string
}

func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Severity))
	if i.Line > 0 {
		fmt.Fprintf(&b, " line %d", i.Line)
	}
	if i.State != "" {
		fmt.Fprintf(&b, " state %s", i.State)
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	return b.String()
}

// ValidateGraph checks a definition for broken links, unreachable states and
// dead ends, crawling from the initial state. source is the definition-language
// text the definition was parsed from; when given, issues carry line numbers.
func ValidateGraph(def *domain.Definition, source []byte) []Issue {
	var issues []Issue
	add := func(sev Severity, state, format string, args ...any) {
		line := 0
		if state != "" && source != nil {
			line = compiler.StateLine(source, state)
		}
		issues = append(issues, Issue{Severity: sev, State: state, Line: line, Message: fmt.Sprintf(format, args...)})
	}

	if def == nil || len(def.States) == 0 {
		add(SeverityError, "", "%v", domain.ErrNoStates)
		return issues
	}

	decls := make(map[string]domain.StateDecl, len(def.States))
	seen := make(map[string]int, len(def.States))
	for _, s := range def.States {
		if n := seen[s.Name]; n > 0 {
			line := 0
			if lines := compiler.StateLines(source, s.Name); n < len(lines) {
				line = lines[n]
			}
			issues = append(issues, Issue{Severity: SeverityError, State: s.Name, Line: line, Message: domain.ErrDuplicateState.Error()})
		} else {
			decls[s.Name] = s
		}
		seen[s.Name]++
		if !s.Command.IsValid() {
			add(SeverityError, s.Name, "%v: %q", domain.ErrUnknownCommand, s.Command)
		}
	}

	// 1. Crawler
	start := def.States[0].Name
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := decls[queue[0]]
		queue = queue[1:]

		if len(current.Transitions) == 0 {
			switch current.Command {
			case domain.CommandPrint, domain.CommandWrite, domain.CommandNone:
				add(SeverityWarning, current.Name, "no transitions: timelines reaching it vanish")
			default:
				add(SeverityWarning, current.Name, "dead end: timelines reaching it are rejected")
			}
		}

		for _, t := range current.Transitions {
			if domain.IsTerminalName(t.To) {
				continue
			}
			if _, ok := decls[t.To]; !ok {
				add(SeverityError, current.Name, "transition (%s,%s): %v", t.Trigger, t.To, domain.ErrUnknownState)
				continue
			}
			if !visited[t.To] {
				visited[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}

	// 2. Leftovers
	for _, s := range def.States {
		if !visited[s.Name] {
			add(SeverityWarning, s.Name, "unreachable from %s", start)
		}
	}

	// 3. Memory bindings
	kinds := make(map[string]domain.MemoryKind, len(def.Memories))
	for _, m := range def.Memories {
		kinds[m.Name] = m.Kind
	}
	if k, ok := kinds[domain.InputMemory]; ok && !k.IsTape() {
		add(SeverityError, "", "memory %s: %v: reserved for the input tape, got %s", domain.InputMemory, domain.ErrMemoryKind, k)
	}
	for _, s := range def.States {
		if err := checkBinding(s, kinds); err != nil {
			add(SeverityError, s.Name, "%v", err)
		}
	}

	return issues
}

func checkBinding(s domain.StateDecl, kinds map[string]domain.MemoryKind) error {
	if !s.Command.RequiresMemory() {
		return nil
	}
	if s.Memory == "" {
		return fmt.Errorf("%s: %w", s.Command, domain.ErrMissingMemory)
	}
	kind, ok := kinds[s.Memory]
	if !ok || s.Memory == domain.InputMemory {
		return fmt.Errorf("%s(%s): %w", s.Command, s.Memory, domain.ErrUnknownMemory)
	}
	if s.Command.IsMove() != kind.IsTape() {
		return fmt.Errorf("%s(%s): %w: %s", s.Command, s.Memory, domain.ErrMemoryKind, kind)
	}
	return nil
}

// Err folds the error-severity issues into a single error, or returns nil.
func Err(issues []Issue) error {
	var errs []string
	for _, i := range issues {
		if i.Severity == SeverityError {
			errs = append(errs, i.String())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
}
