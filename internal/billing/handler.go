// AngelaMos | 2026
// handler.go

package billing

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
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/createOrder", h.CreateOrder)
		r.Post("/payment/verify", h.VerifyPayment)
		r.Post("/payment/verify-subscription", h.VerifySubscription)
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, order)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, false)
}

func (h *Handler) VerifySubscription(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, true)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, subscription bool) {
	var req VerifyRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Verify(r.Context(), middleware.GetUserID(r.Context()), req, subscription)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadSignature):
		core.JSONError(w, core.PaymentError("Payment verification failed"))
	case errors.Is(err, ErrUnknownOrder):
		core.JSONError(w, core.PaymentError("Order not found or expired"))
	case errors.Is(err, ErrPurposeMismatch):
		core.JSONError(w, core.PaymentError("Payment does not match the order"))
	case errors.Is(err, ErrAmountMismatch):
		core.BadRequest(w, "amount does not match the current price")
	case errors.Is(err, ErrAlreadyPaid):
		core.JSONError(w, core.ConflictError("already paid"))
	case errors.Is(err, ErrNotPayable):
		core.JSONError(w, core.ConflictError("case is not awaiting payment"))
	case errors.Is(err, category.ErrNotFound), errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "cannot price this purchase")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "case")
	default:
		core.InternalServerError(w, err)
	}
}
