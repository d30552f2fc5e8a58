package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/presentation/tui"
	"github.com/aretw0/rpda/pkg/domain"
)

// ReportValidation prints the reversibility verdict. A non-reversible machine
// is reported, not returned: callers keep running it.
func ReportValidation(w io.Writer, m *rpda.Machine) error {
	err := m.Validate()
	if err == nil {
		fmt.Fprintln(w, "The machine is reversible.")
		return nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(w, "The machine is not reversible: %v\n", verr)
		return verr
	}
	return err
}

// RunBatch validates m, runs input in dir and prints the results.
// A backward run undoes a forward one (see rpda.Machine.RunBackward).
func RunBatch(ctx context.Context, w io.Writer, m *rpda.Machine, input string, dir domain.Direction) (domain.Result, error) {
	if err := ReportValidation(w, m); err != nil && !errors.Is(err, domain.ErrNotReversible) {
		return domain.Result{}, err
	}

	run := m.Run
	if dir == domain.Backward {
		run = m.RunBackward
	}
	res, err := run(ctx, input)
	if err != nil {
		return res, err
	}

	style := tui.NewStyler(w)
	fmt.Fprintln(w, "Simulation results:")
	fmt.Fprintf(w, "\tFinal state: %s\n", res.State)
	fmt.Fprintf(w, "\tStack content: %s\n", domain.NewStack(res.Stack...))
	fmt.Fprint(w, "\t")
	style.Verdict(w, "Accept state reached", res.Accepted)
	return res, nil
}
