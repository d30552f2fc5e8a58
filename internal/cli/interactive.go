package cli

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/presentation/tui"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/repl"
	"github.com/aretw0/rpda/pkg/session"
)

// RunInteractive validates m and steps it from in, one line per transition.
// The banner is shown only when out is a terminal.
func RunInteractive(ctx context.Context, in io.Reader, out io.Writer, m *rpda.Machine) (session.Status, error) {
	if tui.IsTerminal(out) {
		tui.PrintBanner(out, rpda.Version)
	}
	if err := ReportValidation(out, m); err != nil && !errors.Is(err, domain.ErrNotReversible) {
		return session.StatusActive, err
	}

	def := m.Definition()
	s := repl.New(def, m.Automaton(def.Initial), in, out)
	s.Logger = m.Logger()

	status, err := s.Run(ctx)
	return status, handleExecutionError(err)
}

// handleExecutionError treats interruptions as a normal exit.
func handleExecutionError(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
