/*
Package automata simulates nondeterministic automata: finite state machines,
pushdown and queue automata, and Turing machines on 1D or 2D tapes.

A machine is a table of states. Each state performs one command (SCAN, PRINT,
READ, WRITE or a head move on a named tape) and maps the resulting symbol to
one or more successor states. Every successor is a separate timeline with its
own copy of the tapes and memories, so a run explores all branches
generation by generation until one timeline reaches "accept" or none is
left running.

# Usage

Machines are usually written in the definition language:

	// accepts (001)^n (10)^n
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
	H] SCAN (1,F), (Ø,I)
	I] READ(s1) (#,accept)

and run through the Engine:

	eng, err := automata.New("./machines/stack.tm", automata.WithMaxSteps(10000))
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Run(ctx, "001001001101010")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Result) // accepted

Definitions can also be YAML/JSON documents, markdown documents in a Loam
vault, or built in Go with package dsl. The lower-level packages machine and
memory expose the engine itself.
*/
package automata
