package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/rpda"
	"github.com/aretw0/rpda/internal/observability"
	"github.com/aretw0/rpda/pkg/adapters/memory"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/dsl"
	"github.com/aretw0/rpda/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, reversible bool) *rpda.Machine {
	t.Helper()
	b := dsl.New()
	if reversible {
		b.From("q0").Reversible("a", "ep", "q1", "X")
		b.From("q1").Reversible("b", "X", "qacc", "ep")
	} else {
		b.From("q0").Forward("a", "ep", "qacc", "ep")
	}
	b.From("q2").Reversible("ep", "ep", "q2", "ep")

	loader, err := b.Build()
	require.NoError(t, err)
	m, err := rpda.New("", rpda.WithLoader(loader), rpda.WithStepLimit(20))
	require.NoError(t, err)
	return m
}

func newServer(t *testing.T, engine Engine, opts ...Option) http.Handler {
	t.Helper()
	return NewHandler(engine, session.NewManager(memory.NewStore()), opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndMachine(t *testing.T) {
	h := newServer(t, newEngine(t, true))

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/machine", "")
	require.Equal(t, http.StatusOK, w.Code)
	m := decode[MachineResponse](t, w)
	assert.Equal(t, "q0", m.Initial)
	assert.Equal(t, 20, m.StepLimit)
	assert.Equal(t, 6, m.Transitions)
	assert.Equal(t, []string{"q0", "q1", "q2", "qacc"}, m.States)
}

func TestValidate(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	w := do(t, newServer(t, newEngine(t, true), WithMetrics(metrics, reg)), "POST", "/validate", "")
	require.Equal(t, http.StatusOK, w.Code)
	ok := decode[ValidateResponse](t, w)
	assert.True(t, ok.Reversible)
	assert.Equal(t, "The machine is reversible.", ok.Message)

	w = do(t, newServer(t, newEngine(t, false), WithMetrics(metrics, reg)), "POST", "/validate", "")
	require.Equal(t, http.StatusOK, w.Code)
	bad := decode[ValidateResponse](t, w)
	assert.False(t, bad.Reversible)
	require.NotNil(t, bad.Violation)
	assert.Equal(t, domain.KindMissingMirror, bad.Violation.Kind)
	assert.Equal(t, "q0", bad.Violation.Transition.State)
}

func TestRun(t *testing.T) {
	h := newServer(t, newEngine(t, true))

	tests := []struct {
		name     string
		body     string
		code     int
		state    string
		accepted bool
	}{
		{"Forward Accepts", `{"input":"ab"}`, http.StatusOK, "qacc", true},
		{"Forward Rejects", `{"input":"b","direction":"f"}`, http.StatusOK, "q0", false},
		{"Backward Undoes", `{"input":"ab","direction":"b"}`, http.StatusOK, "q0", true},
		{"Bad Direction", `{"input":"ab","direction":"x"}`, http.StatusBadRequest, "", false},
		{"Bad Body", `{`, http.StatusBadRequest, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/run", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			res := decode[domain.Result](t, w)
			assert.Equal(t, tt.state, res.State)
			assert.Equal(t, tt.accepted, res.Accepted)
		})
	}
}

func TestRun_StepLimit(t *testing.T) {
	b := dsl.New()
	b.From("q0").Reversible("ep", "ep", "q0", "ep")
	loader, err := b.Build()
	require.NoError(t, err)
	m, err := rpda.New("", rpda.WithLoader(loader), rpda.WithStepLimit(3))
	require.NoError(t, err)

	w := do(t, newServer(t, m), "POST", "/run", `{"input":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGraph(t *testing.T) {
	h := newServer(t, newEngine(t, true))

	w := do(t, h, "GET", "/graph?direction=f", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `q0 -- "a, ep/X" --> q1`)
	assert.NotContains(t, w.Body.String(), ".->")

	w = do(t, h, "GET", "/graph?direction=z", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	h := newServer(t, newEngine(t, true))

	w := do(t, h, "POST", "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[SessionResponse](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "q0", created.Snapshot.State)
	assert.Equal(t, session.StatusActive, created.Status)

	base := "/sessions/" + created.ID

	w = do(t, h, "POST", base+"/step", `{"input":"a"}`)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[session.Outcome](t, w)
	assert.True(t, out.OK)
	assert.True(t, out.Consumed)
	assert.Equal(t, []domain.Symbol{"X"}, out.Snapshot.Stack)

	w = do(t, h, "POST", base+"/step", `{"input":"z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[session.Outcome](t, w).OK)

	w = do(t, h, "POST", base+"/step", `{"input":"b","direction":"f"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StatusAccepted, decode[session.Outcome](t, w).Status)

	w = do(t, h, "POST", base+"/step", `{"input":"b","direction":"b"}`)
	require.Equal(t, http.StatusOK, w.Code)
	out = decode[session.Outcome](t, w)
	assert.Equal(t, "q1", out.Snapshot.State)

	w = do(t, h, "GET", base, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[SessionResponse](t, w)
	assert.Equal(t, "q1", got.Snapshot.State)
	assert.Equal(t, 3, got.Snapshot.Steps)

	w = do(t, h, "GET", "/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{created.ID}, decode[map[string][]string](t, w)["sessions"])

	w = do(t, h, "DELETE", base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, "POST", base+"/step", `{"input":"a"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStep_InvalidInput(t *testing.T) {
	h := newServer(t, newEngine(t, true))
	w := do(t, h, "POST", "/sessions", "")
	id := decode[SessionResponse](t, w).ID

	w = do(t, h, "POST", "/sessions/"+id+"/step", `{"input":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/sessions/"+id+"/step", `{"input":"ep","direction":"q"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	engine := newEngine(t, true)
	mgr := session.NewManager(memory.NewStore(), session.WithLifecycleHooks(metrics.Hooks()))
	h := NewHandler(engine, mgr, WithMetrics(metrics, reg))

	w := do(t, h, "POST", "/sessions", "")
	id := decode[SessionResponse](t, w).ID
	do(t, h, "POST", "/sessions/"+id+"/step", `{"input":"a"}`)
	do(t, h, "POST", "/validate", "")

	w = do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `rpda_steps_total{direction="forward",outcome="matched"} 1`)
	assert.Contains(t, body, `rpda_validations_total{result="reversible"} 1`)

	// Without metrics the route is not mounted.
	w = do(t, newServer(t, engine), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newServer(t, newEngine(t, true)), "OPTIONS", "/run", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

var _ Engine = (*rpda.Machine)(nil)

func TestEngineInterface(t *testing.T) {
	_, err := newEngine(t, true).Run(context.Background(), "ab")
	assert.NoError(t, err)
}
