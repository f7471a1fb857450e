/*
Package dsl provides a Go DSL for programmatically constructing automata.

It is the typed alternative to the text definition language and YAML documents: useful for
generated machines, unit tests and IDE autocompletion.

Example usage:

	b := dsl.New("flip")

	b.State("A").Scan().
		On("1", "B").
		On("0", "C").
		OnEnd("accept")

	b.State("B").Print().On("0", "A")
	b.State("C").Print().On("1", "A")

	m, err := b.Machine()
	// or: loader, err := b.Build() to serve it through a ports.DefinitionLoader
*/
package dsl
