package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

const flipYAML = `
id: flip
description: swaps zeros and ones
states:
  - name: A
    command: scan
    transitions:
      - {trigger: 1, to: B}
      - {trigger: 0, to: C}
      - {trigger: Ø, to: accept}
  - name: B
    command: PRINT
    transitions:
      - {trigger: 0, to: A}
  - name: C
    command: PRINT
    transitions:
      - {trigger: 1, to: A}
`

func TestDecodeDocument(t *testing.T) {
	def, err := DecodeDocument([]byte(flipYAML))
	require.NoError(t, err)

	assert.Equal(t, "flip", def.ID)
	assert.Equal(t, []string{"A", "B", "C"}, def.StateNames())
	assert.Equal(t, domain.CommandScan, def.States[0].Command)
	assert.Equal(t, "1", def.States[0].Transitions[0].Trigger, "numeric triggers become strings")

	m, err := Build(def)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Start(ctx, "0011"))
	result, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultAccepted, result)

	tl, ok := m.AcceptedTimeline()
	require.True(t, ok)
	assert.Equal(t, "1100", tl.OutputTape().Render(false))
}

func TestDecodeDocument_JSON(t *testing.T) {
	def, err := DecodeDocument([]byte(`{
		"memories": [{"kind": "stack", "name": "s1", "content": "ab"}],
		"states": [{"name": "A", "command": "READ", "memory": "s1", "transitions": [{"trigger": "b", "to": "accept"}]}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, domain.MemoryStack, def.Memories[0].Kind)

	m, err := Build(def)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, m.Start(ctx, ""))
	result, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultAccepted, result)
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"No states", "id: empty\n", domain.ErrNoStates},
		{"Unknown command", "states:\n  - {name: A, command: JUMP}\n", domain.ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.is)
		})
	}

	_, err := DecodeDocument([]byte("memories:\n  - {kind: HEAP, name: h}\nstates:\n  - {name: A, command: SCAN}\n"))
	assert.ErrorContains(t, err, "unknown memory kind")

	_, err = DecodeDocument([]byte("states: [unterminated"))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	def, err := ParseFile("machines/flip.yaml", []byte(flipYAML))
	require.NoError(t, err)
	assert.Equal(t, "flip", def.ID)

	def, err = ParseFile("machines/stack.tm", []byte(stackSource))
	require.NoError(t, err)
	assert.Equal(t, "stack", def.ID)

	_, err = ParseFile("broken.tm", []byte(".LOGIC\nA SCAN\n"))
	assert.ErrorContains(t, err, "broken.tm")

	def, err = ParseFile("dup.yaml", []byte("states:\n  - {name: A, command: SCAN}\n  - {name: A, command: PRINT}\n"))
	require.NoError(t, err, "documents are decoded as given")
	_, err = Build(def)
	assert.ErrorIs(t, err, domain.ErrDuplicateState)

	assert.True(t, IsDefinitionFile("a.TM"))
	assert.True(t, IsDefinitionFile("a.json"))
	assert.False(t, IsDefinitionFile("README.md"))
}
