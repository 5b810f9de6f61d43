// AngelaMos | 2026
// handler.go

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the credential endpoints. limiter guards them against
// password guessing and may be nil.
func (h *Handler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/login", issue(h.service.Login, http.StatusOK))
		r.Post("/admin/login", issue(h.service.AdminLogin, http.StatusOK))
		r.Post("/register", issue(h.service.Register, http.StatusCreated))
	})
}

// issue adapts a credential operation that answers with a token.
func issue[Req any](
	op func(context.Context, Req) (*model.AuthResponse, error),
	status int,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if !core.DecodeJSON(w, r, &req) {
			return
		}
		resp, err := op(r.Context(), req)
		if err != nil {
			core.JSONError(w, toAppError(err))
			return
		}
		core.JSON(w, status, resp)
	}
}

func toAppError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return core.UnauthorizedError("Invalid email or password")
	case errors.Is(err, ErrNotAdmin):
		return core.ForbiddenError("Admin access required")
	case errors.Is(err, ErrEmailExists):
		return core.DuplicateError("email")
	case errors.Is(err, ErrUnknownCategory):
		return core.ValidationError("unknown category")
	default:
		slog.Error("auth request failed", "error", err)
		return err
	}
}
