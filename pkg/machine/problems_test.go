package machine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/memory"
)

// Mealy-style transducer: Y for the first symbol, then X when a symbol repeats
// its predecessor and Y otherwise.
func TestProblem_Transducer(t *testing.T) {
	m := build(t,
		[][2]string{
			{"A", "SCAN"}, {"B", "PRINT"}, {"C", "PRINT"}, {"D", "SCAN"}, {"E", "SCAN"},
			{"F", "PRINT"}, {"G", "PRINT"}, {"H", "PRINT"}, {"I", "PRINT"},
		},
		[][3]string{
			{"A", "0", "B"}, {"A", "1", "C"},
			{"B", "Y", "D"}, {"C", "Y", "E"},
			{"D", "0", "F"}, {"D", "1", "I"},
			{"E", "0", "G"}, {"E", "1", "H"},
			{"F", "X", "D"}, {"G", "Y", "D"}, {"H", "X", "E"}, {"I", "Y", "E"},
		},
		nil, nil)

	tests := []struct {
		input string
		want  string
	}{
		{"1101101", "YXYYXYY"},
		{"000111", "YXXYXX"},
		{"10011", "YYXYX"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, m.Start(ctx, tt.input))
			result, err := m.Run(ctx)
			require.NoError(t, err)

			assert.Equal(t, domain.ResultRejected, result)
			assert.Equal(t, tt.want, output(t, m.Timelines()[0]))
		})
	}
}

// Pushdown recogniser for (001)^n (10)^n, using the end of input as the marker.
func TestProblem_StackMachine(t *testing.T) {
	m := build(t,
		[][2]string{
			{"A", "WRITE"}, {"B", "SCAN"}, {"C", "SCAN"}, {"D", "SCAN"}, {"E", "WRITE"},
			{"F", "SCAN"}, {"G", "READ"}, {"H", "SCAN"}, {"I", "READ"},
		},
		[][3]string{
			{"A", "#", "B"},
			{"B", "0", "C"}, {"B", "1", "F"}, {"B", blank, "I"},
			{"C", "0", "D"}, {"D", "1", "E"}, {"E", "X", "B"},
			{"F", "0", "G"}, {"G", "X", "H"}, {"H", "1", "F"}, {"H", blank, "I"},
			{"I", "#", "accept"},
		},
		map[string]memory.Memory{"s1": memory.NewStack()},
		map[string]string{"A": "s1", "E": "s1", "G": "s1", "I": "s1"})

	tests := []struct {
		input string
		want  domain.Result
	}{
		{"00110", domain.ResultAccepted},
		{"", domain.ResultAccepted},
		{"0010011010", domain.ResultAccepted},
		{"010010", domain.ResultRejected},
		{"0", domain.ResultRejected},
		{"110", domain.ResultRejected},
	}
	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, m.Start(ctx, tt.input))
			result, err := m.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

// Turing machine for a^n b^m c^m d^n on a bounded tape (# at both ends).
func TestProblem_TuringMachine(t *testing.T) {
	states := [][2]string{
		{"A", "MOVE_RIGHT"}, {"B", "MOVE_RIGHT"}, {"C", "MOVE_RIGHT"}, {"D", "MOVE_LEFT"},
		{"E", "MOVE_LEFT"}, {"F", "MOVE_RIGHT"}, {"G", "MOVE_RIGHT"}, {"H", "MOVE_LEFT"},
		{"I", "MOVE_LEFT"}, {"J", "MOVE_RIGHT"},
	}
	bind := map[string]string{}
	for _, s := range states {
		bind[s[0]] = "t1"
	}
	transitions := [][3]string{
		{"A", "a/#", "B"},
		{"B", "a/a", "B"}, {"B", "b/b", "B"}, {"B", "c/c", "B"}, {"B", "d/d", "C"},
		{"C", "d/d", "C"}, {"C", "#/#", "D"},
		{"D", "d/#", "E"},
		{"E", "a/a", "E"}, {"E", "b/b", "E"}, {"E", "c/c", "E"}, {"E", "d/d", "E"}, {"E", "#", "F"},
		{"F", "a/#", "B"}, {"F", "b/#", "G"},
		{"G", "b/b", "G"}, {"G", "c/c", "G"}, {"G", "#/#", "H"},
		{"H", "c/#", "I"},
		{"I", "b/b", "I"}, {"I", "c/c", "I"}, {"I", "#/#", "J"},
		{"J", "b/#", "G"}, {"J", "#/#", "accept"},
	}

	tests := []struct {
		tape string
		want domain.Result
	}{
		{"#aabccdd#", domain.ResultAccepted},
		{"#aabccd#", domain.ResultRejected},
	}
	for _, tt := range tests {
		t.Run(tt.tape, func(t *testing.T) {
			m := build(t, states, transitions, map[string]memory.Memory{"t1": memory.NewTape(tt.tape)}, bind)
			ctx := context.Background()
			require.NoError(t, m.Start(ctx, ""))
			result, err := m.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)

			if tt.want == domain.ResultAccepted {
				tl, _ := m.AcceptedTimeline()
				tape, _ := tl.Memory("t1")
				assert.Equal(t, "#########"[:len(tt.tape)], tape.String())
			}
		})
	}
}

func TestSplitMoveTrigger(t *testing.T) {
	tests := []struct {
		trigger        string
		expected, want domain.Symbol
	}{
		{"a/b", "a", "b"},
		{"#", "#", "#"},
		{"a/b/c", "a", "b/c"},
		{"/x", "", "x"},
	}
	for _, tt := range tests {
		exp, wr := SplitMoveTrigger(tt.trigger)
		assert.Equal(t, tt.expected, exp, tt.trigger)
		assert.Equal(t, tt.want, wr, tt.trigger)
	}
}
