package domain

import (
	"fmt"
	"unicode/utf8"
)

// EpsilonMarker is the literal used in transition records for "no symbol".
const EpsilonMarker = "ep"

// Symbol is a single character of input or stack alphabet.
// The zero value is Epsilon.
type Symbol string

// Epsilon matches or produces nothing.
const Epsilon Symbol = ""

// ParseSymbol converts a record field into a Symbol.
// It accepts the epsilon marker or exactly one character.
func ParseSymbol(field string) (Symbol, error) {
	if field == EpsilonMarker {
		return Epsilon, nil
	}
	if utf8.RuneCountInString(field) != 1 {
		return Epsilon, fmt.Errorf("expected one character or %q, got %q", EpsilonMarker, field)
	}
	return Symbol(field), nil
}

// SymbolOf wraps a rune as a Symbol.
func SymbolOf(r rune) Symbol {
	return Symbol(string(r))
}

// IsEpsilon reports whether s is the no-symbol value.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

// String renders epsilon with the record marker so it stays visible in logs.
func (s Symbol) String() string {
	if s == Epsilon {
		return EpsilonMarker
	}
	return string(s)
}

// Symbols splits an input string into one Symbol per character.
func Symbols(input string) []Symbol {
	out := make([]Symbol, 0, utf8.RuneCountInString(input))
	for _, r := range input {
		out = append(out, SymbolOf(r))
	}
	return out
}
