// AngelaMos | 2026
// handler.go

package feedback

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

// RegisterRoutes mounts feedback and contact routes. contactLimiter guards
// the anonymous contact form and may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly, contactLimiter func(http.Handler) http.Handler,
) {
	if contactLimiter != nil {
		r.With(contactLimiter).Post("/contact", h.SubmitMessage)
	} else {
		r.Post("/contact", h.SubmitMessage)
	}

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/feedback", h.SubmitFeedback)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/feedback", h.ListFeedback)
			r.Get("/contact", h.ListMessages)
			r.Post("/contact/{messageID}/reply", h.Reply)
		})
	})
}

func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFeedback(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, FeedbackResponse{Feedback: items})
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	f, err := h.service.SubmitFeedback(r.Context(), middleware.GetUserID(r.Context()), req.FeedbackText)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, f)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMessages(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, MessagesResponse{Messages: items})
}

func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	m, err := h.service.SubmitMessage(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, m)
}

func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	m, err := h.service.Reply(r.Context(), chi.URLParam(r, "messageID"), req.Reply)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, m)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmpty):
		core.BadRequest(w, "text is required")
	case errors.Is(err, core.ErrConflict):
		core.JSONError(w, core.ConflictError("message already has a reply"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "message")
	default:
		core.InternalServerError(w, err)
	}
}
