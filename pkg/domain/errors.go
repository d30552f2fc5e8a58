package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is returned when a transition record cannot be turned into a Transition.
var ErrMalformedRecord = errors.New("malformed transition record")

// ErrNotReversible is returned when a table fails the reversibility check.
var ErrNotReversible = errors.New("machine is not reversible")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrStepLimit is returned by Run when the configured step ceiling is reached.
var ErrStepLimit = errors.New("step limit exceeded")

// MalformedRecordError describes the first invalid field of a record.
type MalformedRecordError struct {
	Record int // 1-based position in the record sequence, 0 when unknown
	Line   int // source line, 0 when unknown
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	loc := ""
	switch {
	case e.Line > 0:
		loc = fmt.Sprintf("line %d: ", e.Line)
	case e.Record > 0:
		loc = fmt.Sprintf("record %d: ", e.Record)
	}
	return fmt.Sprintf("%s: %sfield %q: %s", ErrMalformedRecord, loc, e.Field, e.Reason)
}

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// ValidationKind names the reversibility check that failed.
type ValidationKind string

const (
	KindUndefinedInitial ValidationKind = "undefined-initial-state"
	KindNoReachableFinal ValidationKind = "no-reachable-final-state"
	KindUndefinedReject  ValidationKind = "undefined-reject-state"
	KindAmbiguous        ValidationKind = "ambiguous-transition"
	KindMissingMirror    ValidationKind = "missing-mirror"
)

// ValidationError is the structured reason a table is not reversible.
// Only the fields relevant to Kind are populated.
type ValidationError struct {
	Kind       ValidationKind `json:"kind"`
	State      string         `json:"state,omitempty"`
	States     []string       `json:"states,omitempty"`
	Transition *Transition    `json:"transition,omitempty"`
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindUndefinedInitial:
		return fmt.Sprintf("%s: initial state '%s' is not defined in transitions", e.Kind, e.State)
	case KindNoReachableFinal:
		return fmt.Sprintf("%s: none of the final states [%s] is defined in transitions", e.Kind, strings.Join(e.States, ", "))
	case KindUndefinedReject:
		return fmt.Sprintf("%s: reject state '%s' is not defined in transitions", e.Kind, e.State)
	case KindAmbiguous:
		t := e.Transition
		return fmt.Sprintf("%s: state '%s' has more than one %s transition on input '%s' with stack top '%s'",
			e.Kind, t.State, t.Direction.Name(), t.Input, t.StackTop)
	case KindMissingMirror:
		t := e.Transition
		return fmt.Sprintf("%s: no reverse transition for '%s' => '%s' on input '%s' with stack top '%s' and push '%s'",
			e.Kind, t.State, t.To, t.Input, t.StackTop, t.Push)
	}
	return string(e.Kind)
}

// Is lets errors.Is match ErrNotReversible.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNotReversible
}
