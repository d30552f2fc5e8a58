package domain

import "strings"

// Record is the raw six-field form of a transition, as found in machine files.
// Field names follow the CSV header of the record format.
type Record struct {
	Direction   string `json:"direction" yaml:"direction" mapstructure:"direction"`
	FromState   string `json:"fromState" yaml:"fromState" mapstructure:"fromState"`
	InputChar   string `json:"inputChar" yaml:"inputChar" mapstructure:"inputChar"`
	StackChar   string `json:"stackChar" yaml:"stackChar" mapstructure:"stackChar"`
	ToState     string `json:"toState" yaml:"toState" mapstructure:"toState"`
	StackChange string `json:"stackChange" yaml:"stackChange" mapstructure:"stackChange"`

	// Line is the source line the record was read from, 0 when unknown.
	Line int `json:"-" yaml:"-" mapstructure:"-"`
}

// RecordFields lists the record header in order.
var RecordFields = []string{"direction", "fromState", "inputChar", "stackChar", "toState", "stackChange"}

// Transition validates the record and converts it.
// Surrounding whitespace is ignored. The returned error is a *MalformedRecordError.
func (r Record) Transition() (Transition, error) {
	from := strings.TrimSpace(r.FromState)
	to := strings.TrimSpace(r.ToState)
	if from == "" {
		return Transition{}, &MalformedRecordError{Field: "fromState", Value: r.FromState, Reason: "state name is empty"}
	}
	if to == "" {
		return Transition{}, &MalformedRecordError{Field: "toState", Value: r.ToState, Reason: "state name is empty"}
	}

	dir, err := ParseDirection(strings.TrimSpace(r.Direction))
	if err != nil {
		return Transition{}, &MalformedRecordError{Field: "direction", Value: r.Direction, Reason: err.Error()}
	}

	symbols := [3]Symbol{}
	for i, f := range []struct{ name, raw string }{
		{"inputChar", r.InputChar},
		{"stackChar", r.StackChar},
		{"stackChange", r.StackChange},
	} {
		sym, err := ParseSymbol(strings.TrimSpace(f.raw))
		if err != nil {
			return Transition{}, &MalformedRecordError{Field: f.name, Value: f.raw, Reason: err.Error()}
		}
		symbols[i] = sym
	}

	return Transition{
		Key:   Key{Direction: dir, State: from, Input: symbols[0], StackTop: symbols[1]},
		Value: Value{To: to, Push: symbols[2]},
	}, nil
}

// RecordOf renders a transition back into its record form.
func RecordOf(t Transition) Record {
	return Record{
		Direction:   string(t.Direction),
		FromState:   t.State,
		InputChar:   t.Input.String(),
		StackChar:   t.StackTop.String(),
		ToState:     t.To,
		StackChange: t.Push.String(),
	}
}
