/*
Package memory implements the per-timeline carriers of the automata engine.

  - Tape: an auto-expanding 1D/2D grid of symbol cells with a movable head.
  - Stack: a LIFO sequence of symbols.
  - Queue: a FIFO sequence of symbols.

Every carrier can be cloned into a structurally independent copy; the engine relies on this
to keep sibling timelines from sharing mutable state.
*/
package memory
