package yaml_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/aretw0/rpda/pkg/adapters/yaml"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Inline(t *testing.T) {
	path := write(t, t.TempDir(), "machine.yaml", `
initial: s
final: [done]
reject: [dead]
step_limit: 100
transitions:
  - {direction: f, fromState: s, inputChar: 0, stackChar: ep, toState: done, stackChange: 1}
  - {direction: b, fromState: done, inputChar: "0", stackChar: "1", toState: s, stackChange: ep}
`)

	m, err := yaml.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s", m.Initial)
	assert.Equal(t, []string{"done"}, m.Final)
	assert.Equal(t, []string{"dead"}, m.Reject)
	assert.False(t, m.LenientReject)
	assert.Equal(t, 100, m.StepLimit)

	v, ok := m.Table.Lookup(domain.Key{Direction: domain.Forward, State: "s", Input: "0", StackTop: domain.Epsilon})
	require.True(t, ok)
	assert.Equal(t, domain.Symbol("1"), v.Push)
}

func TestLoader_Defaults(t *testing.T) {
	path := write(t, t.TempDir(), "machine.yaml", `
transitions:
  - {direction: f, fromState: q0, inputChar: a, stackChar: ep, toState: qacc, stackChange: ep}
`)

	m, err := yaml.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInitialState, m.Initial)
	assert.Equal(t, domain.DefaultFinalStates, m.Final)
	assert.True(t, m.LenientReject)
	assert.Zero(t, m.StepLimit)
}

func TestLoader_TransitionsFileThenInline(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "table.csv", "direction,fromState,inputChar,stackChar,toState,stackChange\nf,q0,a,ep,q1,ep\n")
	path := write(t, dir, "machine.yaml", `
transitions_file: table.csv
lenient_reject: true
transitions:
  - {direction: f, fromState: q0, inputChar: b, stackChar: ep, toState: q2, stackChange: ep}
`)

	m, err := yaml.New(path).Load(context.Background())
	require.NoError(t, err)

	entries := slices.Collect(m.Table.Entries(domain.Forward, "q0"))
	require.Len(t, entries, 2)
	assert.Equal(t, "q1", entries[0].To)
	assert.Equal(t, "q2", entries[1].To)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		content   string
		malformed bool
	}{
		{"Bad YAML", "final: [", false},
		{"Unknown Field", "transitions:\n  - {direction: f, fromState: q0, inputChar: a, stackChar: ep, toState: q1, stackChange: ep, weight: 2}\n", true},
		{"Bad Direction", "transitions:\n  - {direction: x, fromState: q0, inputChar: a, stackChar: ep, toState: q1, stackChange: ep}\n", true},
		{"Missing File", "transitions_file: nowhere.csv\n", false},
		{"Negative Step Limit", "step_limit: -1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, "machine.yaml", tt.content)
			m, err := yaml.New(path).Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, m)
			if tt.malformed {
				assert.ErrorIs(t, err, domain.ErrMalformedRecord)
			}
		})
	}
}

func TestParse(t *testing.T) {
	def, err := yaml.Parse([]byte("initial: start\nfinal: [end]\n"))
	require.NoError(t, err)
	assert.Equal(t, "start", def.Initial)
	assert.Nil(t, def.LenientReject)
}
