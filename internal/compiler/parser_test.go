package compiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

const stackSource = `// accepts (001)^n (10)^n
.DATA
STACK s1

.LOGIC
A] WRITE(s1) (#,B)
B] SCAN (0,C), (1,F), (Ø,I)
C] SCAN (0,D)
D] SCAN (1,E)
E] WRITE(s1) (X,B)
F] SCAN (0,G)
G] READ(s1) (X,H)
H] SCAN (1,F) (Ø,I)
I] READ(s1) (#,accept)
`

func TestParser_Parse(t *testing.T) {
	t.Run("Memory declarations", func(t *testing.T) {
		def, err := NewParser().Parse([]byte(`
			//Hello World
			.DATA
			STACK S1
			QUEUE Q1
			TAPE t1 #ab#

			.LOGIC
			A] SCAN (1,B)
			B] PRINT (1,A)
		`))
		require.NoError(t, err)
		assert.Equal(t, []domain.MemoryDecl{
			{Kind: domain.MemoryStack, Name: "S1"},
			{Kind: domain.MemoryQueue, Name: "Q1"},
			{Kind: domain.MemoryTape, Name: "t1", Content: "#ab#"},
		}, def.Memories)
	})

	t.Run("Logic declarations", func(t *testing.T) {
		def, err := NewParser().Parse([]byte(`
			.LOGIC
			A] SCAN (1,B) (1,C)
			B] SCAN LEFT (1,A)
			C] RIGHT(t1) (a/#,C), (#,accept)
			D] PRINT
		`))
		require.NoError(t, err)
		assert.Equal(t, []domain.StateDecl{
			{Name: "A", Command: domain.CommandScan, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "B"}, {Trigger: "1", To: "C"}}},
			{Name: "B", Command: domain.CommandScanLeft, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "A"}}},
			{Name: "C", Command: domain.CommandMoveRight, Memory: "t1", Transitions: []domain.TransitionDecl{{Trigger: "a/#", To: "C"}, {Trigger: "#", To: "accept"}}},
			{Name: "D", Command: domain.CommandPrint},
		}, def.States)
	})

	t.Run("Comma trigger", func(t *testing.T) {
		def, err := NewParser().Parse([]byte(".LOGIC\nA] PRINT (,,B)\n"))
		require.NoError(t, err)
		assert.Equal(t, ",", def.States[0].Transitions[0].Trigger)
	})

	t.Run("No logic", func(t *testing.T) {
		_, err := NewParser().Parse([]byte(".DATA\nSTACK s1\n"))
		assert.ErrorIs(t, err, domain.ErrNoStates)
	})
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"Unknown memory kind", ".DATA\nHEAP h1\n.LOGIC\nA] SCAN\n", 2},
		{"Missing memory name", ".DATA\nSTACK\n", 2},
		{"Unknown command", ".LOGIC\nA] SCAN (1,B)\nB] JUMP (1,A)\n", 3},
		{"Missing bracket", ".LOGIC\nA SCAN (1,B)\n", 2},
		{"Broken transition", ".LOGIC\nA] SCAN (1 B)\n", 2},
		{"Outside of section", "A] SCAN (1,B)\n", 1},
		{"Data after logic", ".LOGIC\nA] SCAN\n.DATA\n", 3},
		{"Command without memory", ".LOGIC\nA] READ (1,B)\n", 2},
		{"Duplicate state", ".LOGIC\nA] SCAN (0,accept)\nA] PRINT (1,accept)\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tt.src))
			var syn *SyntaxError
			require.True(t, errors.As(err, &syn), "got %v", err)
			assert.Equal(t, tt.line, syn.Line)
		})
	}
}

func TestParser_DuplicateState(t *testing.T) {
	src := []byte(".LOGIC\nA] SCAN (0,accept)\nA] PRINT (1,accept)\n")

	_, err := NewParser().Parse(src)
	require.ErrorIs(t, err, domain.ErrDuplicateState)
	assert.ErrorContains(t, err, "first declared on line 2")

	_, m, err := Compile("dup.tm", src)
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
	assert.ErrorContains(t, err, "dup.tm")
	assert.Nil(t, m)
}

func TestStateLine(t *testing.T) {
	assert.Equal(t, 6, StateLine([]byte(stackSource), "A"))
	assert.Equal(t, 14, StateLine([]byte(stackSource), "I"))
	assert.Equal(t, 0, StateLine([]byte(stackSource), "Z"))
	assert.Equal(t, []int{2, 3}, StateLines([]byte(".LOGIC\nA] SCAN\n  A] PRINT\n"), "A"))
}

func TestCompile_RunsParsedMachine(t *testing.T) {
	def, m, err := Compile("stack.tm", []byte(stackSource))
	require.NoError(t, err)
	assert.Equal(t, "stack", def.ID)
	assert.Equal(t, "stack", m.Name())

	tests := map[string]domain.Result{
		"00110":      domain.ResultAccepted,
		"":           domain.ResultAccepted,
		"0010011010": domain.ResultAccepted,
		"010010":     domain.ResultRejected,
		"110":        domain.ResultRejected,
	}
	for input, want := range tests {
		ctx := context.Background()
		require.NoError(t, m.Start(ctx, input))
		got, err := m.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("Unknown successor", func(t *testing.T) {
		_, _, err := Compile("bad.tm", []byte(".LOGIC\nA] SCAN (1,B)\n"))
		assert.ErrorIs(t, err, domain.ErrUnknownState)
	})

	t.Run("Unknown memory", func(t *testing.T) {
		_, _, err := Compile("bad.tm", []byte(".LOGIC\nA] READ(s9) (1,accept)\n"))
		assert.ErrorIs(t, err, domain.ErrUnknownMemory)
	})

	t.Run("Duplicate state", func(t *testing.T) {
		def := &domain.Definition{ID: "dup", States: []domain.StateDecl{
			{Name: "A", Command: domain.CommandScan, Transitions: []domain.TransitionDecl{{Trigger: "0", To: "accept"}}},
			{Name: "A", Command: domain.CommandPrint, Transitions: []domain.TransitionDecl{{Trigger: "1", To: "accept"}}},
		}}
		_, err := Build(def)
		assert.ErrorIs(t, err, domain.ErrDuplicateState)
		assert.ErrorContains(t, err, "state A")
	})

	t.Run("Nil definition", func(t *testing.T) {
		_, err := Build(nil)
		assert.ErrorIs(t, err, domain.ErrNoStates)
	})
}
