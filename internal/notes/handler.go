// AngelaMos | 2026
// handler.go

package notes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Route("/notes", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{noteID}", h.Update)
		r.Delete("/{noteID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, NotesResponse{Notes: items})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, n)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "noteID"),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, n)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "noteID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		core.BadRequest(w, "title is required")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "note")
	default:
		core.InternalServerError(w, err)
	}
}
