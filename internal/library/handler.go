// AngelaMos | 2026
// handler.go

package library

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

		r.Get("/library/access", h.GetAccess)
		r.Get("/documents", h.ListDocuments)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Post("/documents", h.CreateDocument)
			r.Put("/documents/{documentID}", h.UpdateDocument)
			r.Delete("/documents/{documentID}", h.DeleteDocument)
		})
	})
}

func (h *Handler) GetAccess(w http.ResponseWriter, r *http.Request) {
	access, err := h.service.Access(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, access)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.Documents(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, DocumentsResponse{Documents: docs})
}

// CreateDocument accepts JSON, or multipart/form-data carrying the same
// fields plus an optional "file" part.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var (
		req    DocumentRequest
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

		req = DocumentRequest{
			Type:        r.FormValue("type"),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Content:     r.FormValue("content"),
		}

		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close() //nolint:errcheck // read-only
			name := r.FormValue("fileName")
			if name == "" {
				name = header.Filename
			}
			upload = &Upload{FileName: name, Body: file}
		case !errors.Is(err, http.ErrMissingFile):
			core.BadRequest(w, "invalid file part")
			return
		}
		if !core.CheckValid(w, req) {
			return
		}
	} else if !core.DecodeJSON(w, r, &req) {
		return
	}

	doc, err := h.service.Create(r.Context(), req, upload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.Created(w, doc)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	doc, err := h.service.Update(r.Context(), chi.URLParam(r, "documentID"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, doc)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "documentID")); err != nil {
		h.writeError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, ErrInvalidDocument):
		core.BadRequest(w, "document type and title are required")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "document")
	default:
		core.InternalServerError(w, err)
	}
}
