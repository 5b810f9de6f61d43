// AngelaMos | 2026
// dto.go

package notes

import (
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type NoteRequest struct {
	Title   string `json:"title"   validate:"required,max=300"`
	Content string `json:"content" validate:"max=20000"`
}

type NotesResponse struct {
	Notes []model.Note `json:"notes"`
}
