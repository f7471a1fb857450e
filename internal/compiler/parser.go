package compiler

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// SyntaxError points at the offending line of a definition source.
type SyntaxError struct {
	Line int
	Text string
	Msg  string

	// Err is the sentinel behind Msg, when there is one.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

const (
	sectionData  = ".DATA"
	sectionLogic = ".LOGIC"
)

var (
	stateRe      = regexp.MustCompile(`^(\w+)\]\s*(.*)$`)
	commandRe    = regexp.MustCompile(`^(?:(SCAN\s+RIGHT|SCAN\s+LEFT|SCAN|PRINT)|(READ|WRITE|RIGHT|LEFT|UP|DOWN)\((\w+)\))`)
	transitionRe = regexp.MustCompile(`^\(\s*(.+?)\s*,\s*(\w+)\s*\)`)
)

// Parser turns the text definition language into a Definition.
//
//	// comments run to the end of the line
//	.DATA
//	STACK s1
//	TAPE t1 #aab#
//	.LOGIC
//	A] WRITE(s1) (#,B)
//	B] SCAN (0,B), (1,C)
//	C] SCAN RIGHT (Ø,accept)
//
// The first state of .LOGIC is the initial state.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a whole source. Every malformed line is an error.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	def := &domain.Definition{}
	section := ""
	seenLogic := false
	declared := make(map[string]int)

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for n := 1; sc.Scan(); n++ {
		raw := sc.Text()
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		switch line {
		case sectionData:
			if section != "" {
				return nil, &SyntaxError{Line: n, Text: raw, Msg: ".DATA must come before .LOGIC"}
			}
			section = sectionData
			continue
		case sectionLogic:
			if seenLogic {
				return nil, &SyntaxError{Line: n, Text: raw, Msg: "duplicate .LOGIC section"}
			}
			section, seenLogic = sectionLogic, true
			continue
		}

		switch section {
		case sectionData:
			mem, err := parseMemory(line)
			if err != nil {
				return nil, &SyntaxError{Line: n, Text: raw, Msg: err.Error()}
			}
			def.Memories = append(def.Memories, mem)
		case sectionLogic:
			st, err := parseState(line)
			if err != nil {
				return nil, &SyntaxError{Line: n, Text: raw, Msg: err.Error()}
			}
			if first, ok := declared[st.Name]; ok {
				return nil, &SyntaxError{
					Line: n,
					Text: raw,
					Msg:  fmt.Sprintf("%v %s, first declared on line %d", domain.ErrDuplicateState, st.Name, first),
					Err:  domain.ErrDuplicateState,
				}
			}
			declared[st.Name] = n
			def.States = append(def.States, st)
		default:
			return nil, &SyntaxError{Line: n, Text: raw, Msg: "statement outside of a section"}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	if len(def.States) == 0 {
		return nil, fmt.Errorf("failed to parse definition: %w", domain.ErrNoStates)
	}
	return def, nil
}

// StateLine returns the 1-based line declaring state, or 0 when absent.
func StateLine(data []byte, state string) int {
	if lines := StateLines(data, state); len(lines) > 0 {
		return lines[0]
	}
	return 0
}

// StateLines returns every 1-based line that declares state.
func StateLines(data []byte, state string) []int {
	prefix := state + "]"
	var lines []int
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for n := 1; sc.Scan(); n++ {
		if strings.HasPrefix(strings.TrimSpace(sc.Text()), prefix) {
			lines = append(lines, n)
		}
	}
	return lines
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// parseMemory reads "KIND name [content]".
func parseMemory(line string) (domain.MemoryDecl, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return domain.MemoryDecl{}, fmt.Errorf("expected KIND name [content]")
	}
	kind, err := domain.ParseMemoryKind(fields[0])
	if err != nil {
		return domain.MemoryDecl{}, err
	}
	if !isWord(fields[1]) {
		return domain.MemoryDecl{}, fmt.Errorf("invalid memory name %q", fields[1])
	}
	decl := domain.MemoryDecl{Kind: kind, Name: fields[1]}
	if len(fields) == 3 {
		decl.Content = fields[2]
	}
	return decl, nil
}

// parseState reads "Name] COMMAND (trigger,Next), (trigger,Next)".
func parseState(line string) (domain.StateDecl, error) {
	m := stateRe.FindStringSubmatch(line)
	if m == nil {
		return domain.StateDecl{}, fmt.Errorf("expected \"Name] COMMAND (trigger,Next)...\"")
	}
	decl := domain.StateDecl{Name: m[1]}
	rest := m[2]

	cm := commandRe.FindStringSubmatch(rest)
	if cm == nil {
		return domain.StateDecl{}, fmt.Errorf("invalid command")
	}
	word := cm[1]
	if word == "" {
		word = cm[2]
		decl.Memory = cm[3]
	}
	cmd, err := domain.ParseCommand(word)
	if err != nil {
		return domain.StateDecl{}, err
	}
	decl.Command = cmd
	rest = rest[len(cm[0]):]

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		tm := transitionRe.FindStringSubmatch(rest)
		if tm == nil {
			return domain.StateDecl{}, fmt.Errorf("invalid transition near %q", rest)
		}
		decl.Transitions = append(decl.Transitions, domain.TransitionDecl{Trigger: tm[1], To: tm[2]})
		rest = strings.TrimLeft(rest[len(tm[0]):], " \t")
		rest = strings.TrimPrefix(rest, ",")
	}
	return decl, nil
}

func isWord(s string) bool {
	for _, r := range s {
		if r != '_' && (r < '0' || r > '9') && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
