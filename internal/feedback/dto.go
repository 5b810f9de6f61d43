// AngelaMos | 2026
// dto.go

package feedback

import (
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type FeedbackRequest struct {
	FeedbackText string `json:"feedbackText" validate:"required,max=5000"`
}

type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=5000"`
}

type FeedbackResponse struct {
	Feedback []model.Feedback `json:"feedback"`
}

type MessagesResponse struct {
	Messages []model.ContactMessage `json:"messages"`
}
