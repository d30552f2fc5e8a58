package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/pkg/domain"
)

// Automaton is a single simulation over a shared, read-only table.
// It owns its state and stack exclusively and is not safe for concurrent use;
// run independent simulations on independent Automatons.
type Automaton struct {
	table        *domain.Table
	state        string
	stack        *domain.Stack
	lastConsumed domain.Symbol
	steps        int

	stepLimit int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures an Automaton.
type Option func(*Automaton)

// WithLogger sets a structured logger. Steps are logged at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automaton) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Automaton) {
		a.hooks = hooks
	}
}

// WithStepLimit makes Run fail with domain.ErrStepLimit after n steps.
// Zero (the default) leaves runs unbounded.
func WithStepLimit(n int) Option {
	return func(a *Automaton) {
		a.stepLimit = n
	}
}

// New creates an automaton at initial with an empty stack.
func New(table *domain.Table, initial string, opts ...Option) *Automaton {
	a := &Automaton{
		table:  table,
		state:  initial,
		stack:  domain.NewStack(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current state.
func (a *Automaton) State() string {
	return a.state
}

// Stack returns a copy of the stack, bottom first.
func (a *Automaton) Stack() []domain.Symbol {
	return a.stack.Items()
}

// LastConsumed returns the input symbol of the last matched transition.
// Epsilon means the last step was a pure epsilon move.
func (a *Automaton) LastConsumed() domain.Symbol {
	return a.lastConsumed
}

// Steps counts successful transitions.
func (a *Automaton) Steps() int {
	return a.steps
}

// Snapshot captures the current configuration.
func (a *Automaton) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		State:        a.state,
		Stack:        a.stack.Items(),
		LastConsumed: a.lastConsumed,
		Steps:        a.steps,
	}
}

// Restore replaces the current configuration with snap.
func (a *Automaton) Restore(snap *domain.Snapshot) {
	a.state = snap.State
	a.stack = domain.NewStack(snap.Stack...)
	a.lastConsumed = snap.LastConsumed
	a.steps = snap.Steps
}

// Step performs one transition on candidate (which may be Epsilon) in dir.
// It reports false and leaves the automaton untouched when nothing matches.
func (a *Automaton) Step(candidate domain.Symbol, dir domain.Direction) bool {
	return a.StepContext(context.Background(), candidate, dir)
}

// StepContext is Step with a context passed through to the hooks.
func (a *Automaton) StepContext(ctx context.Context, candidate domain.Symbol, dir domain.Direction) bool {
	top, hasTop := a.stack.Peek()

	tr, ok := a.match(candidate, dir, top, hasTop)
	if !ok {
		a.logger.Debug("no matching transition",
			"state", a.state,
			"input", candidate,
			"stack_top", top,
			"direction", dir.Name())
		a.emitReject(ctx, candidate, dir)
		return false
	}

	if !tr.StackTop.IsEpsilon() {
		a.stack.Pop()
	}
	if !tr.Push.IsEpsilon() {
		a.stack.Push(tr.Push)
	}
	from := a.state
	a.state = tr.To
	a.lastConsumed = tr.Input
	a.steps++

	a.logger.Debug("step",
		"state", from,
		"input", candidate,
		"matched", tr.Input,
		"stack_top", tr.StackTop,
		"push", tr.Push,
		"direction", dir.Name(),
		"to", tr.To)
	a.emitStep(ctx, from, candidate, tr)
	return true
}

// match scans the entries of the current state in insertion order and
// returns the first one that applies. First match wins, even if a more
// specific entry follows.
func (a *Automaton) match(candidate domain.Symbol, dir domain.Direction, top domain.Symbol, hasTop bool) (domain.Transition, bool) {
	for tr := range a.table.Entries(dir, a.state) {
		if tr.Matches(candidate, top, hasTop) {
			return tr, true
		}
	}
	return domain.Transition{}, false
}

func (a *Automaton) emitStep(ctx context.Context, from string, candidate domain.Symbol, tr domain.Transition) {
	if a.hooks.OnStep == nil {
		return
	}
	key := tr.Key
	a.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
		Direction: tr.Direction,
		From:      from,
		To:        tr.To,
		Candidate: candidate,
		Matched:   &key,
		Pushed:    tr.Push,
		Depth:     a.stack.Len(),
	})
}

func (a *Automaton) emitReject(ctx context.Context, candidate domain.Symbol, dir domain.Direction) {
	if a.hooks.OnReject == nil {
		return
	}
	a.hooks.OnReject(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReject},
		Direction: dir,
		From:      a.state,
		Candidate: candidate,
		Depth:     a.stack.Len(),
	})
}
