package ports

import (
	"context"

	"github.com/aretw0/rpda/pkg/domain"
)

// MachineLoader defines how a machine definition is retrieved.
// This allows the source (CSV file, YAML file, memory) to be decoupled.
type MachineLoader interface {
	// Load builds the machine. Malformed records fail the whole load
	// with an error matching domain.ErrMalformedRecord.
	Load(ctx context.Context) (*domain.Machine, error)
}
