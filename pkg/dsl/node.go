package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	decl domain.StateDecl
}

func (s *StateBuilder) command(cmd domain.Command, mem string) *StateBuilder {
	s.decl.Command = cmd
	s.decl.Memory = mem
	return s
}

// Scan reads the next input symbol to the right.
func (s *StateBuilder) Scan() *StateBuilder { return s.command(domain.CommandScan, "") }

// ScanLeft reads the next input symbol to the left.
func (s *StateBuilder) ScanLeft() *StateBuilder { return s.command(domain.CommandScanLeft, "") }

func (s *StateBuilder) ScanRight() *StateBuilder { return s.command(domain.CommandScanRight, "") }

// Print writes each trigger to the output tape, one branch per trigger.
func (s *StateBuilder) Print() *StateBuilder { return s.command(domain.CommandPrint, "") }

// Read pops a symbol from a stack or queue.
func (s *StateBuilder) Read(mem string) *StateBuilder { return s.command(domain.CommandRead, mem) }

// Write pushes each trigger to a stack or queue, one branch per trigger.
func (s *StateBuilder) Write(mem string) *StateBuilder { return s.command(domain.CommandWrite, mem) }

// Left, Right, Up and Down move the head of a tape memory.
// Their triggers have the form "expected/write".
func (s *StateBuilder) Left(mem string) *StateBuilder  { return s.command(domain.CommandMoveLeft, mem) }
func (s *StateBuilder) Right(mem string) *StateBuilder { return s.command(domain.CommandMoveRight, mem) }
func (s *StateBuilder) Up(mem string) *StateBuilder    { return s.command(domain.CommandMoveUp, mem) }
func (s *StateBuilder) Down(mem string) *StateBuilder  { return s.command(domain.CommandMoveDown, mem) }

// On adds one transition per successor for trigger.
func (s *StateBuilder) On(trigger string, next ...string) *StateBuilder {
	for _, n := range next {
		s.decl.Transitions = append(s.decl.Transitions, domain.TransitionDecl{Trigger: trigger, To: n})
	}
	return s
}

// Accept routes trigger to the accepting terminal.
func (s *StateBuilder) Accept(trigger string) *StateBuilder {
	return s.On(trigger, domain.AcceptState)
}

// Reject routes trigger to the rejecting terminal.
func (s *StateBuilder) Reject(trigger string) *StateBuilder {
	return s.On(trigger, domain.RejectState)
}

// OnEnd is On for the blank symbol met past the end of the input.
func (s *StateBuilder) OnEnd(next ...string) *StateBuilder {
	return s.On(string(domain.Blank), next...)
}

// Build returns the underlying declaration.
func (s *StateBuilder) Build() domain.StateDecl {
	d := s.decl
	d.Transitions = append([]domain.TransitionDecl(nil), s.decl.Transitions...)
	return d
}
