package dsl

import "github.com/aretw0/rpda/pkg/domain"

// StateBuilder provides a fluent API for the transitions of one source state.
type StateBuilder struct {
	state   string
	builder *Builder
}

// Forward adds (state, in, top) -> (to, push) to the forward half.
func (s *StateBuilder) Forward(in, top, to, push string) *StateBuilder {
	return s.add(domain.Forward, in, top, to, push)
}

// Backward adds (state, in, top) -> (to, push) to the backward half.
func (s *StateBuilder) Backward(in, top, to, push string) *StateBuilder {
	return s.add(domain.Backward, in, top, to, push)
}

// Reversible adds a forward transition together with its backward mirror
// (to, in, push) -> (state, top).
func (s *StateBuilder) Reversible(in, top, to, push string) *StateBuilder {
	s.add(domain.Forward, in, top, to, push)
	s.builder.records = append(s.builder.records, domain.Record{
		Direction:   string(domain.Backward),
		FromState:   to,
		InputChar:   in,
		StackChar:   push,
		ToState:     s.state,
		StackChange: top,
	})
	return s
}

func (s *StateBuilder) add(dir domain.Direction, in, top, to, push string) *StateBuilder {
	s.builder.records = append(s.builder.records, domain.Record{
		Direction:   string(dir),
		FromState:   s.state,
		InputChar:   in,
		StackChar:   top,
		ToState:     to,
		StackChange: push,
	})
	return s
}

// From switches to another source state on the same builder.
func (s *StateBuilder) From(state string) *StateBuilder {
	return s.builder.From(state)
}
