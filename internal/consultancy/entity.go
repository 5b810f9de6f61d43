// AngelaMos | 2026
// entity.go

package consultancy

import (
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Case struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	UserEmail    string    `db:"user_email"`
	Issue        string    `db:"issue"`
	DocumentURL  string    `db:"document_url"`
	DocumentName string    `db:"document_name"`
	DocumentKey  string    `db:"document_key"`
	Status       string    `db:"status"`
	Solution     string    `db:"solution"`
	Fee          int64     `db:"fee"`
	IsPaid       bool      `db:"is_paid"`
	Date         time.Time `db:"date"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (c *Case) ToModel() model.Case {
	return model.Case{
		ID:           c.ID,
		Date:         c.Date,
		Issue:        c.Issue,
		DocumentURL:  c.DocumentURL,
		DocumentName: c.DocumentName,
		Status:       model.CaseStatus(c.Status),
		Solution:     c.Solution,
		Fee:          c.Fee,
		IsPaid:       c.IsPaid,
		UserName:     c.UserName,
		UserEmail:    c.UserEmail,
	}
}
