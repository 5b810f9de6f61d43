// AngelaMos | 2026
// handler.go

package minerals

import (
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

type MineralsResponse struct {
	Minerals []model.Mineral `json:"minerals"`
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.With(authenticator).Get("/minerals", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, MineralsResponse{Minerals: items})
}
