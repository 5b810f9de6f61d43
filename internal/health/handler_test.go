// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	up   = CheckerFunc(func(context.Context) error { return nil })
	down = CheckerFunc(func(context.Context) error { return errors.New("refused") })
)

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		deps   []Dependency
		code   int
		status string
	}{
		{
			name:   "all up",
			deps:   []Dependency{{Name: "database", Checker: up}, {Name: "redis", Checker: up}},
			code:   http.StatusOK,
			status: "ok",
		},
		{
			name:   "required down",
			deps:   []Dependency{{Name: "database", Checker: down}, {Name: "redis", Checker: up}},
			code:   http.StatusServiceUnavailable,
			status: "degraded",
		},
		{
			name:   "optional down",
			deps:   []Dependency{{Name: "database", Checker: up}, {Name: "broker", Checker: down, Optional: true}},
			code:   http.StatusOK,
			status: "ok",
		},
		{
			name:   "missing checker",
			deps:   []Dependency{{Name: "database"}},
			code:   http.StatusServiceUnavailable,
			status: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := readiness(t, NewHandler(tt.deps...))
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, body.Status)
			require.Len(t, body.Checks, len(tt.deps))
			for i, dep := range tt.deps {
				assert.Equal(t, dep.Name, body.Checks[i].Name)
			}
		})
	}
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := NewHandler(Dependency{Name: "database", Checker: up})
	h.SetShutdown(true)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "shutting_down")
	}
}

func TestNotReady(t *testing.T) {
	h := NewHandler()
	h.SetReady(false)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body.Status)
}
