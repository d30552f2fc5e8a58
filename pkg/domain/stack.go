package domain

import (
	"slices"
	"strings"
)

// Stack is an unbounded LIFO of symbols. The zero value is an empty stack.
type Stack struct {
	items []Symbol
}

// NewStack creates a stack holding items, bottom first.
func NewStack(items ...Symbol) *Stack {
	return &Stack{items: slices.Clone(items)}
}

// Push adds a symbol to the top.
func (s *Stack) Push(sym Symbol) {
	s.items = append(s.items, sym)
}

// Pop removes and returns the top symbol.
func (s *Stack) Pop() (Symbol, bool) {
	if len(s.items) == 0 {
		return Epsilon, false
	}
	last := len(s.items) - 1
	top := s.items[last]
	s.items = s.items[:last]
	return top, true
}

// Peek returns the top symbol without removing it.
func (s *Stack) Peek() (Symbol, bool) {
	if len(s.items) == 0 {
		return Epsilon, false
	}
	return s.items[len(s.items)-1], true
}

// Len reports the stack depth.
func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the contents, bottom first.
func (s *Stack) Items() []Symbol {
	out := make([]Symbol, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack) String() string {
	parts := make([]string, len(s.items))
	for i, sym := range s.items {
		parts[i] = string(sym)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
