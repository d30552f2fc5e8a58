/*
Package rpda is a reversible pushdown automaton engine.

A machine is a transition table split into a forward and a backward half, plus
its designated states. The engine checks whether the backward half exactly
undoes the forward one (reversibility), steps a single automaton one transition
at a time, and runs whole input strings in either direction.

# Usage

	m, err := rpda.New("machine.csv")
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Validate(); err != nil {
		fmt.Println(err) // e.g. missing mirror for 'q0' => 'q1' on input 'a'
	}

	res, err := m.Run(ctx, "0011")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.State, res.Accepted)

	// Undo: feed the reversed input through the backward half.
	back, _ := m.RunBackward(ctx, "0011")
	fmt.Println(back.Accepted)

# Machine files

Bare ".csv" files hold the six-field transition records and use the
conventional state names (q0, qacc/q_accept, qrej/q_reject). ".yaml" files
declare the states explicitly and either inline their transitions or point to a
CSV file. Machines can also be built in code with the dsl package and injected
with WithLoader.
*/
package rpda
