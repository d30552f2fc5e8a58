package repl_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/rpda/internal/runtime"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/repl"
	"github.com/aretw0/rpda/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func machine(t *testing.T) *domain.Machine {
	t.Helper()
	tbl, err := domain.NewTable([]domain.Record{
		{Direction: "f", FromState: "q0", InputChar: "a", StackChar: "ep", ToState: "q1", StackChange: "X"},
		{Direction: "f", FromState: "q1", InputChar: "ep", StackChar: "X", ToState: "q2", StackChange: "Y"},
		{Direction: "f", FromState: "q2", InputChar: "b", StackChar: "Y", ToState: "qacc", StackChange: "ep"},
		{Direction: "b", FromState: "q1", InputChar: "a", StackChar: "X", ToState: "q0", StackChange: "ep"},
		{Direction: "f", FromState: "q0", InputChar: "z", StackChar: "ep", ToState: "qrej", StackChange: "ep"},
	})
	require.NoError(t, err)
	return domain.NewMachine(tbl)
}

func run(t *testing.T, input string) (string, session.Status) {
	t.Helper()
	m := machine(t)
	var out bytes.Buffer
	s := repl.New(m, runtime.New(m.Table, m.Initial), strings.NewReader(input), &out)
	s.Prompt = ""

	status, err := s.Run(context.Background())
	require.NoError(t, err)
	return out.String(), status
}

func TestSession_Accepts(t *testing.T) {
	out, status := run(t, "af\n\nbf\n")

	assert.Equal(t, session.StatusAccepted, status)
	assert.Contains(t, out, "State: q1, Stack: [X]\n")
	assert.Contains(t, out, "assuming no input character, forward\nState: q2, Stack: [Y]\n")
	assert.Contains(t, out, "State: qacc, Stack: []\nAccept state reached.\n")
}

func TestSession_InputNotConsumed(t *testing.T) {
	// From q1 the epsilon transition matches whatever symbol is supplied.
	out, _ := run(t, "af\nbf\n")
	assert.Contains(t, out, "State: q2, Stack: [Y], input not consumed\n")
}

func TestSession_BackwardStep(t *testing.T) {
	out, status := run(t, "af\nab\nexit\nzf\n")
	assert.Contains(t, out, "State: q0, Stack: []\n")
	assert.NotContains(t, out, "Reject state reached.")
	assert.Equal(t, session.StatusActive, status)
}

func TestSession_Rejects(t *testing.T) {
	out, status := run(t, "zf\naf\n")
	assert.Equal(t, session.StatusRejected, status)
	assert.True(t, strings.HasSuffix(out, "Reject state reached.\n"))
}

func TestSession_InvalidLines(t *testing.T) {
	out, status := run(t, "bf\nabc\nax\nb\n")
	assert.Equal(t, session.StatusActive, status)
	assert.Equal(t, 2, strings.Count(out, "Invalid transition."))
	assert.Equal(t, 2, strings.Count(out, "Invalid input. Format: <char><f|b> (e.g., '0f', '1b')"))
	assert.Contains(t, out, "assuming no input character\nInvalid transition.")
}

func TestSession_Prompt(t *testing.T) {
	m := machine(t)
	var out bytes.Buffer
	s := repl.New(m, runtime.New(m.Table, m.Initial), strings.NewReader("exit\n"), &out)

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), repl.DefaultPrompt))
}

func TestSession_Canceled(t *testing.T) {
	m := machine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := repl.New(m, runtime.New(m.Table, m.Initial), strings.NewReader("af\n"), &bytes.Buffer{})
	_, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		sym  domain.Symbol
		dir  domain.Direction
		ok   bool
	}{
		{"", domain.Epsilon, domain.Forward, true},
		{"b", domain.Epsilon, domain.Backward, true},
		{"0f", "0", domain.Forward, true},
		{"éb", "é", domain.Backward, true},
		{"ff", "f", domain.Forward, true},
		{"x", domain.Epsilon, "", false},
		{"0x", domain.Epsilon, "", false},
		{"ep", domain.Epsilon, "", false},
	}
	for _, tt := range tests {
		sym, dir, ok := repl.ParseLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.sym, sym, tt.line)
			assert.Equal(t, tt.dir, dir, tt.line)
		}
	}
}
