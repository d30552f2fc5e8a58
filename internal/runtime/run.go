package runtime

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/rpda/pkg/domain"
)

// Run drives input through the automaton in dir, starting from its current
// configuration, and reports whether it halts in one of finals.
//
// The cursor only advances when a step consumes the symbol under it. The run
// halts once the input is exhausted and the current state has no epsilon
// transition in dir. A failed step halts immediately with Accepted == false;
// that is a rejection, not an error.
//
// A cyclic epsilon chain never halts unless a step limit is configured or ctx
// is canceled.
func (a *Automaton) Run(ctx context.Context, input string, dir domain.Direction, finals []string) (domain.Result, error) {
	symbols := domain.Symbols(input)
	i := 0
	taken := 0

	for i < len(symbols) || a.table.HasEpsilon(dir, a.state) {
		if err := ctx.Err(); err != nil {
			return a.result(false, i), err
		}
		if a.stepLimit > 0 && taken >= a.stepLimit {
			return a.result(false, i), fmt.Errorf("%w: %d steps in state %s", domain.ErrStepLimit, taken, a.state)
		}

		candidate := domain.Epsilon
		if i < len(symbols) {
			candidate = symbols[i]
		}

		if !a.StepContext(ctx, candidate, dir) {
			res := a.result(false, i)
			a.emitRun(ctx, input, dir, res)
			return res, nil
		}
		taken++

		if !a.lastConsumed.IsEpsilon() && a.lastConsumed == candidate {
			i++
		}
	}

	res := a.result(slices.Contains(finals, a.state), i)
	a.logger.Debug("run complete",
		"direction", dir.Name(),
		"state", res.State,
		"accepted", res.Accepted,
		"steps", taken)
	a.emitRun(ctx, input, dir, res)
	return res, nil
}

func (a *Automaton) result(accepted bool, consumed int) domain.Result {
	return domain.Result{
		State:    a.state,
		Stack:    a.stack.Items(),
		Accepted: accepted,
		Steps:    a.steps,
		Consumed: consumed,
	}
}

func (a *Automaton) emitRun(ctx context.Context, input string, dir domain.Direction, res domain.Result) {
	if a.hooks.OnRunComplete == nil {
		return
	}
	a.hooks.OnRunComplete(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRun},
		Direction: dir,
		Input:     input,
		Result:    res,
	})
}
