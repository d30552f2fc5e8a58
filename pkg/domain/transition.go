package domain

import "fmt"

// Key is the matching side of a transition.
// Input == Epsilon means no input is required.
// StackTop == Epsilon is a wildcard: it matches any stack, including an empty one.
type Key struct {
	Direction Direction `json:"direction"`
	State     string    `json:"state"`
	Input     Symbol    `json:"input"`
	StackTop  Symbol    `json:"stack_top"`
}

// Value is the effect of a transition.
// Push == Epsilon pushes nothing.
type Value struct {
	To   string `json:"to"`
	Push Symbol `json:"push"`
}

// Transition is one entry of the table.
type Transition struct {
	Key
	Value
}

// Matches reports whether the transition applies to the candidate input
// given the current stack top. hasTop is false for an empty stack.
func (k Key) Matches(candidate Symbol, top Symbol, hasTop bool) bool {
	inputOK := k.Input == candidate || k.Input.IsEpsilon()
	stackOK := k.StackTop.IsEpsilon() || (hasTop && k.StackTop == top)
	return inputOK && stackOK
}

// Mirror returns the backward transition that exactly undoes t.
// The mirror of a backward transition is its forward counterpart.
func (t Transition) Mirror() Transition {
	return Transition{
		Key: Key{
			Direction: t.Direction.Opposite(),
			State:     t.To,
			Input:     t.Input,
			StackTop:  t.Push,
		},
		Value: Value{
			To:   t.State,
			Push: t.StackTop,
		},
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("%s: %s --%s/%s->%s-- %s", t.Direction, t.State, t.Input, t.StackTop, t.Push, t.To)
}
