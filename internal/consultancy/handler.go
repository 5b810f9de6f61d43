// AngelaMos | 2026
// handler.go

package consultancy

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
)

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/cases", h.ListCases)
		r.Post("/cases", h.CreateCase)
		r.With(adminOnly).Put("/cases/{caseID}", h.UpdateCase)
	})
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cases, err := h.service.List(ctx, middleware.GetUserID(ctx), middleware.IsAdmin(ctx))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, CasesResponse{Cases: cases})
}

// CreateCase takes multipart/form-data with an "issue" field and an optional
// "document" part, or a JSON body without attachment.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var (
		req    CreateCaseRequest
		upload *Upload
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")) //nolint:errcheck // empty on failure
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			core.BadRequest(w, "invalid or oversized upload")
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup

		req.Issue = r.FormValue("issue")

		file, header, err := r.FormFile("document")
		switch {
		case err == nil:
			defer file.Close() //nolint:errcheck // read-only
			name := r.FormValue("documentName")
			if name == "" {
				name = header.Filename
			}
			upload = &Upload{FileName: name, Body: file}
		case !errors.Is(err, http.ErrMissingFile):
			core.BadRequest(w, "invalid document part")
			return
		}
		if !core.CheckValid(w, req) {
			return
		}
	} else if !core.DecodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req, upload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, c)
}

func (h *Handler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	var req UpdateCaseRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "caseID"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, c)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrConsultancyLocked):
		core.Forbidden(w, "Consultancy is available to professional categories only")
	case errors.Is(err, ErrEmptyIssue):
		core.BadRequest(w, "issue is required")
	case errors.Is(err, ErrInvalidCase):
		core.BadRequest(w, "a solution and a positive fee are required")
	case errors.Is(err, ErrCasePaid):
		core.JSONError(w, core.ConflictError("case is already paid"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "case")
	default:
		core.InternalServerError(w, err)
	}
}
