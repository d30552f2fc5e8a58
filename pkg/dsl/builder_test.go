package dsl

import (
	"context"
	"slices"
	"testing"

	"github.com/aretw0/rpda/internal/validator"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ReversibleMachine(t *testing.T) {
	b := New().Initial("q0").Final("q2")

	b.From("q0").Reversible("a", "ep", "q1", "X").
		From("q1").Reversible("b", "X", "q2", "ep")

	loader, err := b.Build()
	require.NoError(t, err)

	m, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q0", m.Initial)
	assert.Equal(t, []string{"q2"}, m.Final)
	assert.True(t, m.LenientReject)
	assert.Equal(t, 4, m.Table.Len())

	v, ok := m.Table.Lookup(domain.Key{Direction: domain.Backward, State: "q1", Input: "a", StackTop: "X"})
	require.True(t, ok)
	assert.Equal(t, domain.Value{To: "q0", Push: domain.Epsilon}, v)

	assert.NoError(t, validator.Validate(m.Table, validator.ConfigOf(m)))
}

func TestBuilder_InsertionOrder(t *testing.T) {
	b := New()
	b.From("q0").
		Forward("ep", "ep", "q1", "ep").
		Forward("a", "ep", "q2", "ep")

	m, err := b.Machine()
	require.NoError(t, err)

	entries := slices.Collect(m.Table.Entries(domain.Forward, "q0"))
	require.Len(t, entries, 2)
	assert.Equal(t, "q1", entries[0].To)
	assert.Equal(t, "q2", entries[1].To)
}

func TestBuilder_OneWayIsNotReversible(t *testing.T) {
	b := New().Final("q1")
	b.From("q0").Forward("a", "ep", "q1", "X")

	m, err := b.Machine()
	require.NoError(t, err)
	assert.ErrorIs(t, validator.Validate(m.Table, validator.ConfigOf(m)), domain.ErrNotReversible)
}

func TestBuilder_StrictRejectWhenDeclared(t *testing.T) {
	b := New().Reject("dead").StepLimit(50)
	b.From("q0").Backward("a", "ep", "qacc", "ep")

	m, err := b.Machine()
	require.NoError(t, err)
	assert.False(t, m.LenientReject)
	assert.Equal(t, 50, m.StepLimit)

	m, err = b.LenientReject(true).Machine()
	require.NoError(t, err)
	assert.True(t, m.LenientReject)
}

func TestBuilder_MalformedSymbol(t *testing.T) {
	b := New()
	b.From("q0").Forward("ab", "ep", "q1", "ep")

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
