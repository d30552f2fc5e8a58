package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the rpda ASCII art banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _ __ _ __   __| | __ _ ", "#818cf8"},
		{" | '__| '_ \\ / _` |/ _` |", "#a78bfa"},
		{" | |  | |_) | (_| | (_| |", "#c084fc"},
		{" |_|  | .__/ \\__,_|\\__,_|", "#e879f9"},
		{"      |_|                ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  reversible pushdown automata "+version).Faint())
	}
	fmt.Fprintln(w)
}
