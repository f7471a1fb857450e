package automata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/dsl"
)

// ExampleNew_library builds a machine in Go and runs it without touching the
// filesystem.
func ExampleNew_library() {
	// 1. Describe the machine
	b := dsl.New("flip")
	b.State("A").Scan().On("1", "B").On("0", "C").OnEnd("accept")
	b.State("B").Print().On("0", "A")
	b.State("C").Print().On("1", "A")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. The source is the machine ID when a loader is injected
	eng, err := automata.New("flip", automata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Run(context.Background(), "0011")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Result, report.Accepted.Output)
	// Output: accepted 1100
}

// ExampleEngine_Run_nondeterminism shows a machine that guesses: at every
// symbol it either keeps scanning or checks that the rest of the input is "ab".
func ExampleEngine_Run_nondeterminism() {
	b := dsl.New("ends-with-ab")
	b.State("S").Scan().On("a", "S", "A").On("b", "S")
	b.State("A").Scan().On("b", "E")
	b.State("E").Scan().OnEnd("accept")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := automata.New("ends-with-ab", automata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	for _, input := range []string{"abab", "abba"} {
		report, err := eng.Run(context.Background(), input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(input, report.Result)
	}
	// Output:
	// abab accepted
	// abba rejected
}
