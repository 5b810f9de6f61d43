// AngelaMos | 2026
// handler.go

package visitor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Handler struct {
	counter *Counter
}

func NewHandler(counter *Counter) *Handler {
	return &Handler{counter: counter}
}

type TrackRequest struct {
	VisitorID string `json:"visitorId"`
}

// RegisterRoutes mounts the public counters. limiter may be nil.
func (h *Handler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Get("/visitor-stats", h.Stats)
	if limiter != nil {
		r.With(limiter).Post("/track-visitor", h.Track)
	} else {
		r.Post("/track-visitor", h.Track)
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.counter.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, stats)
}

func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	stats, err := h.counter.Track(r.Context(), req.VisitorID)
	if errors.Is(err, ErrMissingVisitor) {
		core.BadRequest(w, "visitorId is required")
		return
	}
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, stats)
}
