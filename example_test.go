package rpda_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/pkg/dsl"
)

// ExampleNew_dsl builds a reversible machine in code, runs it forward and
// then undoes the run with the backward half.
func ExampleNew_dsl() {
	b := dsl.New().Initial("q0").Final("qacc")
	b.From("q0").Reversible("0", "ep", "q1", "1")
	b.From("q1").Reversible("1", "1", "qacc", "ep")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	m, err := rpda.New("", rpda.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Validate(); err == nil {
		fmt.Println("The machine is reversible.")
	}

	ctx := context.Background()
	res, err := m.Run(ctx, "01")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("forward: %s accepted=%t\n", res.State, res.Accepted)

	back, err := m.RunBackward(ctx, "01")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("backward: %s accepted=%t\n", back.State, back.Accepted)
	// Output:
	// The machine is reversible.
	// forward: qacc accepted=true
	// backward: q0 accepted=true
}
