// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	authed := r.With(authenticator)
	authed.Get("/profile", h.GetProfile)
	authed.Put("/profile", h.UpdateProfile)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router, authenticator, adminOnly func(http.Handler) http.Handler) {
	r.With(authenticator, adminOnly).Get("/admin/users", h.ListUsers)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, user)
}

// ListUsers answers the admin user search. An unknown category filter is
// rejected rather than silently matching nothing.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListUsersParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "limit", 20),
		Search:   q.Get("search"),
	}

	if raw := q.Get("category"); raw != "" {
		c, err := category.Parse(raw)
		if err != nil {
			core.BadRequest(w, "unknown category")
			return
		}
		params.Category = string(c)
	}

	page, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, page)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "address and bio are required")
	default:
		core.InternalServerError(w, err)
	}
}
