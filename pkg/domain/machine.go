package domain

import "slices"

// Conventional state names used when a machine file declares none.
const (
	DefaultInitialState = "q0"
)

var (
	DefaultFinalStates  = []string{"q_accept", "qacc"}
	DefaultRejectStates = []string{"q_reject", "qrej"}
)

// Machine is a transition table together with its designated states.
type Machine struct {
	Table   *Table
	Initial string
	Final   []string
	Reject  []string

	// LenientReject lets reject states be implicit sinks that never appear in the table.
	LenientReject bool

	// StepLimit caps the number of steps of a single run. Zero means unbounded.
	StepLimit int
}

// NewMachine wraps a table with the conventional state names.
// The default reject states are implicit sinks, so LenientReject is set.
func NewMachine(table *Table) *Machine {
	return &Machine{
		Table:         table,
		Initial:       DefaultInitialState,
		Final:         slices.Clone(DefaultFinalStates),
		Reject:        slices.Clone(DefaultRejectStates),
		LenientReject: true,
	}
}

// IsFinal reports whether state is an accepting state.
func (m *Machine) IsFinal(state string) bool {
	return slices.Contains(m.Final, state)
}

// IsReject reports whether state is a rejecting state.
func (m *Machine) IsReject(state string) bool {
	return slices.Contains(m.Reject, state)
}

// AcceptState is the state a backward run starts from: the first final state
// present in the table, or the first declared one if none is.
func (m *Machine) AcceptState() string {
	for _, s := range m.Final {
		if m.Table != nil && m.Table.HasState(s) {
			return s
		}
	}
	if len(m.Final) > 0 {
		return m.Final[0]
	}
	return ""
}
