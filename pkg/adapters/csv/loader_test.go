package csv_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/aretw0/rpda/pkg/adapters/csv"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const machine = `direction,fromState,inputChar,stackChar,toState,stackChange
f,q0,0,1,q1,ep
f,q0,1,1,q1,ep
f,q1,0,1,qacc,ep
`

func TestParse(t *testing.T) {
	table, err := csv.Parse(strings.NewReader(machine))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	entries := slices.Collect(table.Entries(domain.Forward, "q0"))
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Symbol("0"), entries[0].Input)
	assert.Equal(t, domain.Symbol("1"), entries[0].StackTop)
	assert.Equal(t, domain.Epsilon, entries[0].Push)
	assert.Empty(t, table.Sources(domain.Backward))
}

func TestParse_ColumnOrderAndWhitespace(t *testing.T) {
	input := `toState, stackChange, direction, fromState, inputChar, stackChar
q1, X, f, q0, a, ep

q0, ep, b, q1, a, X
`
	table, err := csv.Parse(strings.NewReader(input))
	require.NoError(t, err)

	v, ok := table.Lookup(domain.Key{Direction: domain.Backward, State: "q1", Input: "a", StackTop: "X"})
	require.True(t, ok)
	assert.Equal(t, "q0", v.To)
}

func TestParse_Comments(t *testing.T) {
	input := "direction,fromState,inputChar,stackChar,toState,stackChange\n# push a marker\nf,q0,a,ep,q1,X\n"
	table, err := csv.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestParse_Empty(t *testing.T) {
	table, err := csv.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"Missing Column", "direction,fromState,inputChar,stackChar,toState\nf,q0,a,ep,q1\n", "stackChange"},
		{"Invalid Direction", "direction,fromState,inputChar,stackChar,toState,stackChange\nx,q0,a,ep,q1,ep\n", "direction"},
		{"Empty From State", "direction,fromState,inputChar,stackChar,toState,stackChange\nf,,a,ep,q1,ep\n", "fromState"},
		{"Long Input", "direction,fromState,inputChar,stackChar,toState,stackChange\nf,q0,ab,ep,q1,ep\n", "inputChar"},
		{"Short Row", "direction,fromState,inputChar,stackChar,toState,stackChange\nf,q0,a,ep,q1\n", "stackChange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := csv.Parse(strings.NewReader(tt.input))
			assert.Nil(t, table)
			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			var mre *domain.MalformedRecordError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, tt.field, mre.Field)
		})
	}
}

func TestParse_MalformedReportsFileLine(t *testing.T) {
	input := "direction,fromState,inputChar,stackChar,toState,stackChange\n" +
		"# marker\n" +
		"f,q0,a,ep,q1,X\n" +
		"\n" +
		"f,q1,bb,X,q2,ep\n"

	_, err := csv.Parse(strings.NewReader(input))
	var mre *domain.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, "inputChar", mre.Field)
	assert.Equal(t, 2, mre.Record)
	assert.Equal(t, 5, mre.Line)
	assert.Contains(t, err.Error(), "line 5: ")
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.csv")
	require.NoError(t, os.WriteFile(path, []byte(machine), 0644))

	m, err := csv.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInitialState, m.Initial)
	assert.True(t, m.LenientReject)
	assert.Equal(t, 3, m.Table.Len())

	_, err = csv.New(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	assert.Error(t, err)
}
