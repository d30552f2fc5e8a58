package domain

// Snapshot is the runtime configuration of an automaton.
// It is what session stores persist between interactive steps.
type Snapshot struct {
	State string   `json:"state"`
	Stack []Symbol `json:"stack"`

	// LastConsumed is the input symbol of the last matched transition.
	// Epsilon means the last step did not advance the input.
	LastConsumed Symbol `json:"last_consumed"`

	// Steps counts successful transitions since the snapshot's automaton was created.
	Steps int `json:"steps"`
}

// NewSnapshot creates the snapshot of a fresh automaton at state.
func NewSnapshot(state string) *Snapshot {
	return &Snapshot{
		State: state,
		Stack: []Symbol{},
	}
}

// Result is the outcome of a full-string run.
// Accepted == false with a nil error is a normal rejection.
type Result struct {
	State    string   `json:"state"`
	Stack    []Symbol `json:"stack"`
	Accepted bool     `json:"accepted"`
	Steps    int      `json:"steps"`
	Consumed int      `json:"consumed"`
}
