// AngelaMos | 2026
// dto.go

package library

import (
	"strings"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type DocumentRequest struct {
	Type        string `json:"type"        validate:"required"`
	Title       string `json:"title"       validate:"required,max=300"`
	Description string `json:"description" validate:"max=2000"`
	Content     string `json:"content"`
}

func (r *DocumentRequest) normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *DocumentRequest) valid() bool {
	return model.DocumentType(r.Type).Valid() && r.Title != ""
}

type DocumentsResponse struct {
	Documents []model.Document `json:"documents"`
}
