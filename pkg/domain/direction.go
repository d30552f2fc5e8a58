package domain

import "fmt"

// Direction selects which half of the transition table is consulted.
type Direction string

const (
	Forward  Direction = "f"
	Backward Direction = "b"
)

// Directions lists both directions in table order.
var Directions = []Direction{Forward, Backward}

// ParseDirection accepts the record tags "f" and "b".
func ParseDirection(tag string) (Direction, error) {
	switch Direction(tag) {
	case Forward, Backward:
		return Direction(tag), nil
	}
	return "", fmt.Errorf("invalid direction %q (expected %q or %q)", tag, Forward, Backward)
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Name is the human readable label used in logs and metrics.
func (d Direction) Name() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "unknown"
}
