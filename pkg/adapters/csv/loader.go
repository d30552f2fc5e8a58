// Package csv reads transition tables in the six-field delimited record format.
//
// The first line is a header naming the fields; columns may appear in any order:
//
//	direction,fromState,inputChar,stackChar,toState,stackChange
//	f,q0,0,ep,q1,1
//	f,q1,1,1,qacc,ep
//
// Any malformed record fails the whole load.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/rpda/pkg/domain"
)

// Parse reads records from r and builds a table.
func Parse(r io.Reader) (*domain.Table, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	return domain.NewTable(records)
}

// ReadRecords reads raw records without validating their fields.
func ReadRecords(r io.Reader) ([]domain.Record, error) {
	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range domain.RecordFields {
		if _, ok := columns[name]; !ok {
			line, _ := reader.FieldPos(0)
			return nil, &domain.MalformedRecordError{Line: line, Field: name, Reason: "column missing from header"}
		}
	}

	var records []domain.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if isBlank(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		get := func(name string) string {
			if i := columns[name]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		records = append(records, domain.Record{
			Direction:   get("direction"),
			FromState:   get("fromState"),
			InputChar:   get("inputChar"),
			StackChar:   get("stackChar"),
			ToState:     get("toState"),
			StackChange: get("stackChange"),
			Line:        line,
		})
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// LoadTable reads a table from a file.
func LoadTable(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transitions: %w", err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Loader implements ports.MachineLoader for a bare transitions file.
// Designated states follow the conventional names (see domain.NewMachine).
type Loader struct {
	Path string
}

// New creates a loader for path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads the file and wraps the table in a machine with default states.
func (l *Loader) Load(ctx context.Context) (*domain.Machine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := LoadTable(l.Path)
	if err != nil {
		return nil, err
	}
	return domain.NewMachine(table), nil
}
