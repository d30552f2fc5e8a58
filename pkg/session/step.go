package session

import (
	"context"

	"github.com/aretw0/rpda/internal/runtime"
	"github.com/aretw0/rpda/pkg/domain"
)

// Status tells a stepping client whether to keep going.
type Status string

const (
	StatusActive   Status = "active"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// StatusOf classifies a state of m.
func StatusOf(m *domain.Machine, state string) Status {
	switch {
	case m.IsFinal(state):
		return StatusAccepted
	case m.IsReject(state):
		return StatusRejected
	}
	return StatusActive
}

// Outcome is the result of one interactive step.
type Outcome struct {
	Snapshot *domain.Snapshot `json:"snapshot"`

	// OK is false when no transition matched; the snapshot is then unchanged.
	OK bool `json:"ok"`

	// Consumed is true when the matched transition consumed the supplied input.
	Consumed bool   `json:"consumed"`
	Status   Status `json:"status"`
}

// Step loads the session, applies one transition of m and persists the result.
// A failed step is not persisted. Unknown sessions yield domain.ErrSessionNotFound.
func (m *Manager) Step(ctx context.Context, sessionID string, machine *domain.Machine, input domain.Symbol, dir domain.Direction) (*Outcome, error) {
	var out *Outcome
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		snap, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		a := runtime.New(machine.Table, snap.State,
			runtime.WithLogger(m.logger.With("session_id", sessionID)),
			runtime.WithLifecycleHooks(m.hooks))
		a.Restore(snap)

		ok := a.StepContext(ctx, input, dir)
		next := a.Snapshot()
		out = &Outcome{
			Snapshot: next,
			OK:       ok,
			Consumed: ok && !input.IsEpsilon() && a.LastConsumed() == input,
			Status:   StatusOf(machine, next.State),
		}
		if !ok {
			return nil
		}
		return m.store.Save(ctx, sessionID, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
