package rpda

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/internal/runtime"
	"github.com/aretw0/rpda/internal/validator"
	"github.com/aretw0/rpda/pkg/adapters/csv"
	"github.com/aretw0/rpda/pkg/adapters/yaml"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/ports"
)

// Machine is the high-level entry point for the library.
// It holds a loaded definition and creates automata over it.
type Machine struct {
	def    *domain.Machine
	loader ports.MachineLoader
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	initial   string
	final     []string
	reject    []string
	lenient   *bool
	stepLimit *int

	Name string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks on every automaton.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLoader injects a custom MachineLoader, bypassing file loading.
func WithLoader(l ports.MachineLoader) Option {
	return func(m *Machine) {
		m.loader = l
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithInitialState overrides the loaded start state.
func WithInitialState(state string) Option {
	return func(m *Machine) {
		m.initial = state
	}
}

// WithFinalStates overrides the loaded accepting states.
func WithFinalStates(states ...string) Option {
	return func(m *Machine) {
		m.final = states
	}
}

// WithRejectStates overrides the loaded rejecting states. They must appear in
// the table unless WithLenientReject(true) is also given.
func WithRejectStates(states ...string) Option {
	return func(m *Machine) {
		m.reject = states
	}
}

// WithLenientReject overrides whether reject states may be absent from the table.
func WithLenientReject(lenient bool) Option {
	return func(m *Machine) {
		m.lenient = &lenient
	}
}

// WithStepLimit caps the steps of a single run. Zero means unbounded.
func WithStepLimit(n int) Option {
	return func(m *Machine) {
		m.stepLimit = &n
	}
}

// New loads a machine.
// The loader is picked by extension: ".yaml"/".yml" for definitions, anything
// else as a bare transition file. If WithLoader is given, path is only a label.
func New(path string, opts ...Option) (*Machine, error) {
	return NewContext(context.Background(), path, opts...)
}

// NewContext is New with a context for the load.
func NewContext(ctx context.Context, path string, opts ...Option) (*Machine, error) {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}

	if m.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			m.loader = yaml.New(path)
		default:
			m.loader = csv.New(path)
		}
	}
	if path != "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	def, err := m.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine: %w", err)
	}
	m.def = m.apply(def)

	m.logger.Debug("machine loaded",
		"transitions", m.def.Table.Len(),
		"initial", m.def.Initial,
		"final", m.def.Final)
	return m, nil
}

// apply returns a copy of def with the option overrides.
func (m *Machine) apply(def *domain.Machine) *domain.Machine {
	out := *def
	out.Final = slices.Clone(def.Final)
	out.Reject = slices.Clone(def.Reject)

	if m.initial != "" {
		out.Initial = m.initial
	}
	if len(m.final) > 0 {
		out.Final = slices.Clone(m.final)
	}
	if len(m.reject) > 0 {
		// Declared reject states must exist unless leniency is asked for.
		out.Reject = slices.Clone(m.reject)
		out.LenientReject = false
	}
	if m.lenient != nil {
		out.LenientReject = *m.lenient
	}
	if m.stepLimit != nil {
		out.StepLimit = *m.stepLimit
	}
	return &out
}

// Definition returns the loaded machine with overrides applied.
func (m *Machine) Definition() *domain.Machine {
	return m.def
}

// Table returns the transition table.
func (m *Machine) Table() *domain.Table {
	return m.def.Table
}

// Logger returns the machine's logger.
func (m *Machine) Logger() *slog.Logger {
	return m.logger
}

// Validate checks reversibility. It returns nil or a *domain.ValidationError.
func (m *Machine) Validate() error {
	return validator.Validate(m.def.Table, validator.ConfigOf(m.def), validator.WithLogger(m.logger))
}

// Automaton creates an automaton at state with the machine's hooks,
// logger and step limit.
func (m *Machine) Automaton(state string) *runtime.Automaton {
	return runtime.New(m.def.Table, state,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithStepLimit(m.def.StepLimit),
	)
}

// Run feeds input through the forward half from the initial state and
// accepts when the run halts in a final state.
func (m *Machine) Run(ctx context.Context, input string) (domain.Result, error) {
	return m.Automaton(m.def.Initial).Run(ctx, input, domain.Forward, m.def.Final)
}

// RunBackward undoes a forward run: it feeds the reversed input through the
// backward half, starting from the accept state, and accepts when the run
// halts back in the initial state.
func (m *Machine) RunBackward(ctx context.Context, input string) (domain.Result, error) {
	start := m.def.AcceptState()
	return m.Automaton(start).Run(ctx, Reverse(input), domain.Backward, []string{m.def.Initial})
}

// Reverse returns input with its symbols in reverse order.
func Reverse(input string) string {
	runes := []rune(input)
	slices.Reverse(runes)
	return string(runes)
}
