package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/rpda/pkg/adapters/memory"
	"github.com/aretw0/rpda/pkg/domain"
)

// Builder manages the machine construction.
// Records keep their insertion order, which is the match order at run time.
type Builder struct {
	records []domain.Record
	machine domain.Machine
	lenient *bool
}

// New creates a builder with the conventional state names.
func New() *Builder {
	return &Builder{
		machine: domain.Machine{
			Initial: domain.DefaultInitialState,
			Final:   slices.Clone(domain.DefaultFinalStates),
			Reject:  slices.Clone(domain.DefaultRejectStates),
		},
	}
}

// Initial sets the start state.
func (b *Builder) Initial(state string) *Builder {
	b.machine.Initial = state
	return b
}

// Final replaces the accepting states.
func (b *Builder) Final(states ...string) *Builder {
	b.machine.Final = states
	return b
}

// Reject replaces the rejecting states.
func (b *Builder) Reject(states ...string) *Builder {
	b.machine.Reject = states
	return b
}

// LenientReject sets whether reject states may be absent from the table.
// It defaults to true while the conventional reject names are in use.
func (b *Builder) LenientReject(lenient bool) *Builder {
	b.lenient = &lenient
	return b
}

// StepLimit caps the steps of a single run.
func (b *Builder) StepLimit(n int) *Builder {
	b.machine.StepLimit = n
	return b
}

// From starts a group of transitions leaving state.
func (b *Builder) From(state string) *StateBuilder {
	return &StateBuilder{state: state, builder: b}
}

// Records returns the records added so far.
func (b *Builder) Records() []domain.Record {
	return slices.Clone(b.records)
}

// Machine compiles the records into a machine.
func (b *Builder) Machine() (*domain.Machine, error) {
	table, err := domain.NewTable(b.records)
	if err != nil {
		return nil, err
	}

	m := b.machine
	m.Table = table
	if b.lenient != nil {
		m.LenientReject = *b.lenient
	} else {
		m.LenientReject = slices.Equal(m.Reject, domain.DefaultRejectStates)
	}
	return &m, nil
}

// Build compiles the machine into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	m, err := b.Machine()
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}
	return memory.NewLoader(m), nil
}
