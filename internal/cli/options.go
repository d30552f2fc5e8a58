package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/logging"
)

// MachineOptions carries the flags shared by every command that loads a machine.
type MachineOptions struct {
	Path     string
	LogLevel string

	Initial string
	Final   []string
	Reject  []string

	// Nil pointers leave the loaded value untouched.
	LenientReject *bool
	StepLimit     *int
}

// createLogger configures the application logger from a level name.
// It writes to Stderr so simulation output on Stdout stays clean.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// LoadMachine initializes a machine with standard CLI conventions.
func LoadMachine(opts MachineOptions, extra ...rpda.Option) (*rpda.Machine, error) {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	machineOpts := []rpda.Option{rpda.WithLogger(logger)}
	if opts.Initial != "" {
		machineOpts = append(machineOpts, rpda.WithInitialState(opts.Initial))
	}
	if len(opts.Final) > 0 {
		machineOpts = append(machineOpts, rpda.WithFinalStates(opts.Final...))
	}
	if len(opts.Reject) > 0 {
		machineOpts = append(machineOpts, rpda.WithRejectStates(opts.Reject...))
	}
	if opts.LenientReject != nil {
		machineOpts = append(machineOpts, rpda.WithLenientReject(*opts.LenientReject))
	}
	if opts.StepLimit != nil {
		if *opts.StepLimit < 0 {
			return nil, fmt.Errorf("--step-limit must not be negative, got %d", *opts.StepLimit)
		}
		machineOpts = append(machineOpts, rpda.WithStepLimit(*opts.StepLimit))
	}
	machineOpts = append(machineOpts, extra...)

	m, err := rpda.New(opts.Path, machineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing machine: %w", err)
	}
	return m, nil
}
