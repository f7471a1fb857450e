package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

func parse(t *testing.T, src string) *domain.Definition {
	t.Helper()
	def, err := compiler.NewParser().Parse([]byte(src))
	require.NoError(t, err)
	return def
}

func TestValidateGraph(t *testing.T) {
	t.Run("Valid graph", func(t *testing.T) {
		src := `
.DATA
STACK s1

.LOGIC
A] WRITE(s1) (#,B)
B] SCAN (0,B), (Ø,C)
C] READ(s1) (#,accept)
`
		issues := ValidateGraph(parse(t, src), []byte(src))
		assert.Empty(t, issues)
		assert.NoError(t, Err(issues))
	})

	t.Run("Broken link", func(t *testing.T) {
		def := &domain.Definition{States: []domain.StateDecl{
			{Name: "start", Command: domain.CommandScan, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "ghost"}}},
		}}
		issues := ValidateGraph(def, nil)
		err := Err(issues)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
		assert.Contains(t, err.Error(), domain.ErrUnknownState.Error())
	})

	t.Run("Unreachable state with line", func(t *testing.T) {
		src := `.LOGIC
A] SCAN (1,A), (Ø,accept)
// orphan
B] PRINT (1,A)
`
		issues := ValidateGraph(parse(t, src), []byte(src))
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, "B", issues[0].State)
		assert.Equal(t, 4, issues[0].Line)
		assert.Equal(t, "warning line 4 state B: unreachable from A", issues[0].String())
		assert.NoError(t, Err(issues), "warnings are not errors")
	})

	t.Run("Dead ends", func(t *testing.T) {
		src := `.LOGIC
A] SCAN (1,B), (0,C)
B] PRINT
C] SCAN
`
		issues := ValidateGraph(parse(t, src), []byte(src))
		require.Len(t, issues, 2)
		assert.Equal(t, "B", issues[0].State)
		assert.Contains(t, issues[0].Message, "vanish")
		assert.Equal(t, "C", issues[1].State)
		assert.Contains(t, issues[1].Message, "rejected")
	})

	t.Run("Memory bindings", func(t *testing.T) {
		src := `.DATA
STACK s1
TAPE t1 #ab#

.LOGIC
A] READ(t1) (a,B)
B] RIGHT(s1) (a,C)
C] READ(q9) (a,accept)
`
		issues := ValidateGraph(parse(t, src), []byte(src))
		err := Err(issues)
		require.Error(t, err)
		msg := err.Error()
		assert.True(t, strings.HasPrefix(msg, "found 3 errors"), msg)
		assert.Contains(t, msg, "line 6 state A")
		assert.Contains(t, msg, domain.ErrMemoryKind.Error())
		assert.Contains(t, msg, domain.ErrUnknownMemory.Error())
	})

	t.Run("Input memory reserved", func(t *testing.T) {
		def := &domain.Definition{
			Memories: []domain.MemoryDecl{{Kind: domain.MemoryStack, Name: domain.InputMemory}},
			States: []domain.StateDecl{
				{Name: "A", Command: domain.CommandRead, Memory: domain.InputMemory, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "accept"}}},
			},
		}
		issues := ValidateGraph(def, nil)
		require.Len(t, issues, 2)
		assert.Contains(t, issues[0].Message, "reserved for the input tape")
		assert.Contains(t, issues[1].Message, domain.ErrUnknownMemory.Error())
	})

	t.Run("Duplicate state", func(t *testing.T) {
		src := ".LOGIC\nA] SCAN (0,accept)\nA] PRINT (1,accept)\n"
		def := &domain.Definition{States: []domain.StateDecl{
			{Name: "A", Command: domain.CommandScan, Transitions: []domain.TransitionDecl{{Trigger: "0", To: "accept"}}},
			{Name: "A", Command: domain.CommandPrint, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "accept"}}},
		}}
		issues := ValidateGraph(def, []byte(src))
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, "A", issues[0].State)
		assert.Equal(t, 3, issues[0].Line)
		assert.ErrorContains(t, Err(issues), domain.ErrDuplicateState.Error())

		issues = ValidateGraph(def, nil)
		require.Len(t, issues, 1)
		assert.Zero(t, issues[0].Line)
	})

	t.Run("Unknown command", func(t *testing.T) {
		def := &domain.Definition{States: []domain.StateDecl{
			{Name: "A", Command: domain.Command("SCNA"), Transitions: []domain.TransitionDecl{{Trigger: "0", To: "accept"}}},
		}}
		err := Err(ValidateGraph(def, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrUnknownCommand.Error())
		assert.Contains(t, err.Error(), "SCNA")
	})

	t.Run("No states", func(t *testing.T) {
		issues := ValidateGraph(&domain.Definition{}, nil)
		assert.ErrorContains(t, Err(issues), domain.ErrNoStates.Error())
	})
}
