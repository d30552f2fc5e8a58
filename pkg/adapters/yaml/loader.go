// Package yaml loads machine definitions: the designated states, run options
// and transitions of a machine in one file.
//
//	initial: q0
//	final: [qacc]
//	reject: [qrej]
//	lenient_reject: false
//	step_limit: 1000
//	transitions_file: machine.csv
//	transitions:
//	  - {direction: f, fromState: q0, inputChar: "0", stackChar: ep, toState: q1, stackChange: "1"}
//
// Records from transitions_file (resolved relative to the definition) come
// first, followed by the inline ones.
package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/aretw0/rpda/pkg/adapters/csv"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/mitchellh/mapstructure"
	goyaml "gopkg.in/yaml.v3"
)

// Definition is the on-disk shape of a machine file.
type Definition struct {
	Initial         string           `yaml:"initial" json:"initial"`
	Final           []string         `yaml:"final" json:"final"`
	Reject          []string         `yaml:"reject" json:"reject"`
	LenientReject   *bool            `yaml:"lenient_reject" json:"lenient_reject"`
	StepLimit       int              `yaml:"step_limit" json:"step_limit"`
	TransitionsFile string           `yaml:"transitions_file" json:"transitions_file"`
	Transitions     []map[string]any `yaml:"transitions" json:"transitions"`

	// dir resolves TransitionsFile.
	dir string
}

// Load reads a definition from path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.dir = filepath.Dir(path)
	return def, nil
}

// Parse decodes a definition. A relative transitions_file is resolved
// against the working directory.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := goyaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse machine definition: %w", err)
	}
	return &def, nil
}

// Records returns the file records followed by the inline ones.
func (d *Definition) Records() ([]domain.Record, error) {
	var records []domain.Record
	if d.TransitionsFile != "" {
		path := d.TransitionsFile
		if !filepath.IsAbs(path) && d.dir != "" {
			path = filepath.Join(d.dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open transitions: %w", err)
		}
		defer f.Close()

		records, err = csv.ReadRecords(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	for i, raw := range d.Transitions {
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("transitions[%d]: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeRecord accepts unquoted scalars, so `inputChar: 0` reads as "0".
func decodeRecord(raw map[string]any) (domain.Record, error) {
	var rec domain.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return rec, err
	}
	if err := decoder.Decode(raw); err != nil {
		return rec, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	return rec, nil
}

// Machine builds the table and applies the designated states.
// Omitted states fall back to the conventional names; lenient_reject
// defaults to true only when reject is omitted.
func (d *Definition) Machine() (*domain.Machine, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}
	table, err := domain.NewTable(records)
	if err != nil {
		return nil, err
	}

	m := domain.NewMachine(table)
	if d.Initial != "" {
		m.Initial = d.Initial
	}
	if len(d.Final) > 0 {
		m.Final = slices.Clone(d.Final)
	}
	if len(d.Reject) > 0 {
		m.Reject = slices.Clone(d.Reject)
		m.LenientReject = false
	}
	if d.LenientReject != nil {
		m.LenientReject = *d.LenientReject
	}
	if d.StepLimit < 0 {
		return nil, fmt.Errorf("step_limit must not be negative, got %d", d.StepLimit)
	}
	m.StepLimit = d.StepLimit
	return m, nil
}

// Loader implements ports.MachineLoader for a definition file.
type Loader struct {
	Path string
}

// New creates a loader for path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads the definition and builds its machine.
func (l *Loader) Load(ctx context.Context) (*domain.Machine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, err := Load(l.Path)
	if err != nil {
		return nil, err
	}
	m, err := def.Machine()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return m, nil
}
