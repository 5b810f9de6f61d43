// AngelaMos | 2026
// entity.go

package feedback

import (
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Feedback struct {
	ID           string    `db:"id"`
	UserName     string    `db:"user_name"`
	UserEmail    string    `db:"user_email"`
	FeedbackText string    `db:"feedback_text"`
	Date         time.Time `db:"date"`
}

func (f *Feedback) ToModel() model.Feedback {
	return model.Feedback{
		ID:           f.ID,
		Date:         f.Date,
		UserName:     f.UserName,
		UserEmail:    f.UserEmail,
		FeedbackText: f.FeedbackText,
	}
}

type ContactMessage struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Message   string     `db:"message"`
	Reply     string     `db:"reply"`
	RepliedAt *time.Time `db:"replied_at"`
	Date      time.Time  `db:"date"`
}

func (m *ContactMessage) ToModel() model.ContactMessage {
	return model.ContactMessage{
		ID:        m.ID,
		Date:      m.Date,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Reply:     m.Reply,
		RepliedAt: m.RepliedAt,
	}
}
