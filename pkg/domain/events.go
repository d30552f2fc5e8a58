package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep   EventType = "step"
	EventReject EventType = "reject"
	EventRun    EventType = "run_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent describes one attempted transition.
// For a rejection, To, Matched and Pushed are empty.
type StepEvent struct {
	EventBase
	Direction Direction `json:"direction"`
	From      string    `json:"from"`
	To        string    `json:"to,omitempty"`
	Candidate Symbol    `json:"candidate"`
	Matched   *Key      `json:"matched,omitempty"`
	Pushed    Symbol    `json:"pushed,omitempty"`
	Depth     int       `json:"depth"`
}

// RunEvent summarizes a completed run.
type RunEvent struct {
	EventBase
	Direction Direction `json:"direction"`
	Input     string    `json:"input"`
	Result    Result    `json:"result"`
}

// LifecycleHooks defines callbacks for automaton observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStep        func(context.Context, *StepEvent)
	OnReject      func(context.Context, *StepEvent)
	OnRunComplete func(context.Context, *RunEvent)
}
