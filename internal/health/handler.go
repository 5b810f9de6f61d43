// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

const (
	StatusOK           = "ok"
	StatusDegraded     = "degraded"
	StatusNotReady     = "not_ready"
	StatusShuttingDown = "shutting_down"

	probeTimeout = 5 * time.Second
)

type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a plain function, such as a blob store probe.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Dependency is one readiness probe. An optional dependency is reported but
// never takes the instance out of rotation.
type Dependency struct {
	Name     string
	Checker  Checker
	Optional bool
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Optional bool   `json:"optional,omitempty"`
	Latency  string `json:"latency,omitempty"`
	Message  string `json:"message,omitempty"`
}

type Handler struct {
	deps     []Dependency
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(deps ...Dependency) *Handler {
	h := &Handler{deps: deps}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) SetReady(ready bool)       { h.ready.Store(ready) }
func (h *Handler) SetShutdown(shutdown bool) { h.shutdown.Store(shutdown) }

func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	if h.shutdown.Load() {
		write(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusShuttingDown})
		return
	}
	write(w, http.StatusOK, StatusResponse{Status: StatusOK})
}

// Readiness pings every dependency concurrently. Only a failing required
// dependency marks the instance degraded.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	switch {
	case h.shutdown.Load():
		write(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusShuttingDown})
		return
	case !h.ready.Load():
		write(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusNotReady})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: StatusOK, Checks: h.probeAll(ctx)}
	code := http.StatusOK
	for _, c := range resp.Checks {
		if !c.Healthy && !c.Optional {
			resp.Status, code = StatusDegraded, http.StatusServiceUnavailable
			break
		}
	}
	write(w, code, resp)
}

func (h *Handler) probeAll(ctx context.Context) []HealthCheck {
	results := make([]HealthCheck, len(h.deps))
	var g errgroup.Group
	for i := range h.deps {
		g.Go(func() error {
			results[i] = probe(ctx, h.deps[i])
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // failures are carried in results
	return results
}

func probe(ctx context.Context, dep Dependency) HealthCheck {
	hc := HealthCheck{Name: dep.Name, Optional: dep.Optional}
	if dep.Checker == nil {
		hc.Message = "checker not configured"
		return hc
	}

	started := time.Now()
	err := dep.Checker.Ping(ctx)
	hc.Latency = time.Since(started).Round(time.Microsecond).String()
	hc.Healthy = err == nil
	if err != nil {
		hc.Message = "ping failed"
	}
	return hc
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Cache-Control", "no-store")
	core.JSON(w, status, body)
}
