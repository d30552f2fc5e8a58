package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/rpda/pkg/domain"
)

// Loader implements ports.MachineLoader over an already built machine.
// It is what the dsl package produces and what tests inject into the facade.
type Loader struct {
	machine *domain.Machine
}

// NewLoader wraps m.
func NewLoader(m *domain.Machine) *Loader {
	return &Loader{machine: m}
}

// NewFromRecords builds a machine with conventional state names from raw records.
func NewFromRecords(records ...domain.Record) (*Loader, error) {
	table, err := domain.NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return NewLoader(domain.NewMachine(table)), nil
}

// Load returns the wrapped machine.
func (l *Loader) Load(ctx context.Context) (*domain.Machine, error) {
	if l.machine == nil || l.machine.Table == nil {
		return nil, fmt.Errorf("memory loader has no machine")
	}
	return l.machine, nil
}
