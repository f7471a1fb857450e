/*
Package domain contains the core value types shared by every layer of the automata engine.

It is kept pure and free of I/O. Nothing here knows how a tape grows or how timelines branch;
it only names the things those layers exchange.

# Key Entities

  - Symbol / Blank: the contents of a tape cell, stack slot or queue slot.
  - Direction: one of the four orthogonal head movements of a tape.
  - Command: the single primitive operation a state performs (SCAN, PRINT, READ, ...).
  - Status / Result: the outcome of a timeline and of a whole run.
  - Definition: the declarative form of a machine, as produced by a parser or loader.
  - RunReport / TimelineSnapshot: read-only views of a finished (or interrupted) run.
*/
package domain
