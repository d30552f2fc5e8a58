package validator

import (
	"log/slog"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/pkg/domain"
)

// Config names the designated states a table is checked against.
type Config struct {
	Initial string
	Final   []string
	Reject  []string

	// LenientReject skips the reject-state existence check, treating
	// undeclared reject states as implicit sinks.
	LenientReject bool
}

// ConfigOf extracts the validation config from a machine.
func ConfigOf(m *domain.Machine) Config {
	return Config{
		Initial:       m.Initial,
		Final:         m.Final,
		Reject:        m.Reject,
		LenientReject: m.LenientReject,
	}
}

// Option configures a validation pass.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger logs the first violation found at Info level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Validate checks that table is a reversible machine for cfg.
// Checks run in order and stop at the first violation:
//
//  1. the initial state, at least one final state, and every reject state
//     (unless LenientReject) appear in the table;
//  2. no state has two transitions with an identical key in one direction;
//  3. every forward transition has an exact backward mirror.
//
// It returns nil or a *domain.ValidationError. The table is never modified.
func Validate(table *domain.Table, cfg Config, opts ...Option) error {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	err := firstViolation(table, cfg)
	if err != nil {
		o.logger.Info("machine is not reversible", "kind", err.Kind, "err", err)
		return err
	}
	o.logger.Debug("machine is reversible", "transitions", table.Len())
	return nil
}

func firstViolation(table *domain.Table, cfg Config) *domain.ValidationError {
	if err := checkStates(table, cfg); err != nil {
		return err
	}
	if err := checkDeterminism(table); err != nil {
		return err
	}
	return checkMirrors(table)
}

func checkStates(table *domain.Table, cfg Config) *domain.ValidationError {
	if !table.HasState(cfg.Initial) {
		return &domain.ValidationError{Kind: domain.KindUndefinedInitial, State: cfg.Initial}
	}

	// Only one final state has to be reachable.
	found := false
	for _, s := range cfg.Final {
		if table.HasState(s) {
			found = true
			break
		}
	}
	if !found {
		return &domain.ValidationError{Kind: domain.KindNoReachableFinal, States: cfg.Final}
	}

	if cfg.LenientReject {
		return nil
	}
	for _, s := range cfg.Reject {
		if !table.HasState(s) {
			return &domain.ValidationError{Kind: domain.KindUndefinedReject, State: s}
		}
	}
	return nil
}

// checkDeterminism reports exact duplicate keys. A Table holds at most one
// entry per key, so duplicates show up as the entries a later record
// overwrote while the table was built. Wildcard overlap is not detected here.
func checkDeterminism(table *domain.Table) *domain.ValidationError {
	if shadowed := table.Shadowed(); len(shadowed) > 0 {
		return &domain.ValidationError{Kind: domain.KindAmbiguous, Transition: &shadowed[0]}
	}
	return nil
}

// checkMirrors requires, for each forward (src, in, top) -> (dst, push),
// a backward (dst, in, push) -> (src, top).
func checkMirrors(table *domain.Table) *domain.ValidationError {
	for fwd := range table.Transitions(domain.Forward) {
		mirror := fwd.Mirror()
		v, ok := table.Lookup(mirror.Key)
		if !ok || v != mirror.Value {
			return &domain.ValidationError{Kind: domain.KindMissingMirror, Transition: &fwd}
		}
	}
	return nil
}
