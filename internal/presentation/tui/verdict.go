package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler colors verdict lines. The zero value prints plain text.
type Styler struct {
	profile termenv.Profile
	color   bool
}

// NewStyler colors output only when w is a terminal.
func NewStyler(w io.Writer) *Styler {
	if !IsTerminal(w) {
		return &Styler{profile: termenv.Ascii}
	}
	return &Styler{profile: termenv.ColorProfile(), color: true}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *Styler) paint(text, color string) string {
	if !s.color {
		return text
	}
	return termenv.String(text).Foreground(s.profile.Color(color)).Bold().String()
}

// Success colors text green.
func (s *Styler) Success(text string) string {
	return s.paint(text, "#22c55e")
}

// Failure colors text red.
func (s *Styler) Failure(text string) string {
	return s.paint(text, "#ef4444")
}

// Verdict writes a colored yes/no line such as "Accept state reached: true".
func (s *Styler) Verdict(w io.Writer, label string, ok bool) {
	value := s.Failure("false")
	if ok {
		value = s.Success("true")
	}
	fmt.Fprintf(w, "%s: %s\n", label, value)
}
