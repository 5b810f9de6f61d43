// AngelaMos | 2026
// entity.go

package library

import (
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Document struct {
	ID          string    `db:"id"`
	Type        string    `db:"type"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Content     string    `db:"content"`
	FileURL     string    `db:"file_url"`
	FileName    string    `db:"file_name"`
	FileKey     string    `db:"file_key"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (d *Document) ToModel() model.Document {
	return model.Document{
		ID:          d.ID,
		Type:        model.DocumentType(d.Type),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Content:     d.Content,
		FileURL:     d.FileURL,
		FileName:    d.FileName,
	}
}

func toModels(docs []Document) []model.Document {
	out := make([]model.Document, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].ToModel())
	}
	return out
}
