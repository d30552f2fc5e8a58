/*
Package dsl provides a Go DSL for programmatically constructing reversible machines.

It is the code-first alternative to CSV and YAML machine files. Symbols are written
the way the record format writes them: a single character, or "ep" for epsilon.

Example usage:

	b := dsl.New().Initial("q0").Final("qacc")

	b.From("q0").Reversible("a", "ep", "q1", "X")
	b.From("q1").Reversible("b", "X", "qacc", "ep")

	loader, err := b.Build()
	if err != nil {
		return err
	}
	// loader is a ports.MachineLoader; pass it to rpda.New via rpda.WithLoader.
*/
package dsl
