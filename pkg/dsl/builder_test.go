package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
)

func TestBuilder_Flip(t *testing.T) {
	// 1. Build the machine using DSL
	b := New("flip")

	b.State("A").Scan().
		On("1", "B").
		On("0", "C").
		OnEnd("accept")

	b.State("B").Print().On("0", "A")
	b.State("C").Print().On("1", "A")

	// 2. Compile
	m, err := b.Machine()
	if err != nil {
		t.Fatalf("Machine() failed: %v", err)
	}

	// 3. Run
	ctx := context.Background()
	if err := m.Start(ctx, "0011"); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	result, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if result != domain.ResultAccepted {
		t.Errorf("Expected accepted, got %s", result)
	}
	tl, _ := m.AcceptedTimeline()
	if got := tl.OutputTape().Render(false); got != "1100" {
		t.Errorf("Expected output '1100', got '%s'", got)
	}
}

func TestBuilder_Definition(t *testing.T) {
	b := New("pda")
	b.Stack("s1", "#")

	b.State("A").Read("s1").Accept("#").Reject("X")
	b.State("A").On("Y", "A", "A")

	def := b.Definition()
	if def.ID != "pda" {
		t.Errorf("Expected ID 'pda', got '%s'", def.ID)
	}
	if len(def.Memories) != 1 || def.Memories[0].Kind != domain.MemoryStack {
		t.Fatalf("Expected one stack memory, got %+v", def.Memories)
	}
	if len(def.States) != 1 {
		t.Fatalf("State() must reuse existing builders, got %d states", len(def.States))
	}
	st := def.States[0]
	if st.Command != domain.CommandRead || st.Memory != "s1" {
		t.Errorf("Expected READ(s1), got %s(%s)", st.Command, st.Memory)
	}
	if len(st.Transitions) != 4 {
		t.Fatalf("Expected 4 transitions, got %d", len(st.Transitions))
	}
	if st.Transitions[0].To != domain.AcceptState || st.Transitions[1].To != domain.RejectState {
		t.Errorf("Unexpected terminal wiring: %+v", st.Transitions)
	}
}

func TestBuilder_Loader(t *testing.T) {
	b := New("tm")
	b.Tape("t1", "#ab#")
	b.State("A").Right("t1").On("a/X", "A").On("b/Y", "A").On("#", "accept")

	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	ids, err := loader.ListDefinitions(context.Background())
	if err != nil {
		t.Fatalf("ListDefinitions() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "tm" {
		t.Errorf("Expected [tm], got %v", ids)
	}

	def, err := loader.GetDefinition(context.Background(), "tm")
	if err != nil {
		t.Fatalf("GetDefinition() failed: %v", err)
	}
	if def.States[0].Command != domain.CommandMoveRight {
		t.Errorf("Expected MOVE_RIGHT, got %s", def.States[0].Command)
	}
}

func TestBuilder_InvalidMachine(t *testing.T) {
	b := New("broken")
	b.State("A").Scan().On("1", "nowhere")

	if _, err := b.Machine(); err == nil {
		t.Fatal("Expected an error for an unknown successor")
	}
}
