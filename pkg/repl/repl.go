// Package repl implements the interactive stepping loop: one line per step,
// read from any io.Reader and answered on any io.Writer.
//
// Each line is one of:
//
//	""        epsilon step forward
//	"f", "b"  epsilon step in that direction
//	"<c>f"    step forward on symbol c (likewise "<c>b")
//	"exit"    quit
//
// The loop also ends at EOF and as soon as the automaton sits in a final or
// reject state after a step.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/internal/runtime"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/session"
)

// DefaultPrompt is written before each line is read.
const DefaultPrompt = "Input: "

// Session drives one automaton from line input.
type Session struct {
	Input     io.Reader
	Output    io.Writer
	Prompt    string
	Machine   *domain.Machine
	Automaton *runtime.Automaton
	Logger    *slog.Logger
}

// New creates a session stepping a over m's states.
func New(m *domain.Machine, a *runtime.Automaton, in io.Reader, out io.Writer) *Session {
	return &Session{
		Input:     in,
		Output:    out,
		Prompt:    DefaultPrompt,
		Machine:   m,
		Automaton: a,
		Logger:    logging.NewNop(),
	}
}

// Run reads lines until exit, EOF, a halting state or ctx cancellation.
// It returns the status of the last state reached.
func (s *Session) Run(ctx context.Context) (session.Status, error) {
	out := s.Output
	fmt.Fprintln(out, "Enter characters and direction {'f' or 'b'} (e.g., '0f', '1b').")
	fmt.Fprintln(out, "Type 'exit' to quit.")

	scanner := bufio.NewScanner(s.Input)
	for {
		if err := ctx.Err(); err != nil {
			return s.status(), err
		}
		if s.Prompt != "" {
			fmt.Fprint(out, s.Prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return s.status(), fmt.Errorf("failed to read input: %w", err)
			}
			return s.status(), nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			return s.status(), nil
		}

		s.handle(ctx, line)

		switch st := s.status(); st {
		case session.StatusAccepted:
			fmt.Fprintln(out, "Accept state reached.")
			return st, nil
		case session.StatusRejected:
			fmt.Fprintln(out, "Reject state reached.")
			return st, nil
		}
	}
}

func (s *Session) handle(ctx context.Context, line string) {
	candidate, dir, ok := ParseLine(line)
	if !ok {
		fmt.Fprintln(s.Output, "Invalid input. Format: <char><f|b> (e.g., '0f', '1b')")
		return
	}

	switch {
	case line == "":
		fmt.Fprintln(s.Output, "assuming no input character, forward")
	case candidate.IsEpsilon():
		fmt.Fprintln(s.Output, "assuming no input character")
	}

	if !s.Automaton.StepContext(ctx, candidate, dir) {
		s.Logger.Debug("invalid transition", "input", candidate, "direction", dir.Name())
		fmt.Fprintln(s.Output, "Invalid transition.")
		return
	}

	suffix := ""
	if s.Automaton.LastConsumed() != candidate {
		suffix = ", input not consumed"
	}
	fmt.Fprintf(s.Output, "State: %s, Stack: %s%s\n",
		s.Automaton.State(), domain.NewStack(s.Automaton.Stack()...), suffix)
}

func (s *Session) status() session.Status {
	return session.StatusOf(s.Machine, s.Automaton.State())
}

// ParseLine decodes one protocol line into a step request.
func ParseLine(line string) (domain.Symbol, domain.Direction, bool) {
	if line == "" {
		return domain.Epsilon, domain.Forward, true
	}

	runes := []rune(line)
	switch len(runes) {
	case 1:
		dir, err := domain.ParseDirection(line)
		if err != nil {
			return domain.Epsilon, "", false
		}
		return domain.Epsilon, dir, true
	case 2:
		dir, err := domain.ParseDirection(string(runes[1]))
		if err != nil {
			return domain.Epsilon, "", false
		}
		return domain.SymbolOf(runes[0]), dir, true
	}
	return domain.Epsilon, "", false
}
