// AngelaMos | 2026
// support.go

package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

type SupportAPI interface {
	SubmitFeedback(ctx context.Context, text string) (model.Feedback, error)
	SubmitContact(ctx context.Context, in client.ContactInput) (model.ContactMessage, error)
}

// Support sends feedback from signed-in users and contact messages from
// anyone.
type Support struct {
	api      SupportAPI
	notifier notify.Notifier
	validate *validator.Validate
}

func NewSupport(api SupportAPI, notifier notify.Notifier) *Support {
	return &Support{
		api:      api,
		notifier: orDiscard(notifier),
		validate: validator.New(),
	}
}

func (s *Support) SubmitFeedback(ctx context.Context, text string) (model.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Feedback{}, invalid(s.notifier, "Please enter your feedback.")
	}
	fb, err := s.api.SubmitFeedback(ctx, text)
	if err != nil {
		report(s.notifier, err, "Failed to submit feedback.")
		return model.Feedback{}, fmt.Errorf("submit feedback: %w", err)
	}
	s.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Thank you for your feedback!"})
	return fb, nil
}

func (s *Support) SubmitContact(ctx context.Context, in client.ContactInput) (model.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	switch {
	case in.Name == "" || in.Email == "" || in.Message == "":
		return model.ContactMessage{}, invalid(s.notifier, "Please fill in all fields.")
	case s.validate.Var(in.Email, "email") != nil:
		return model.ContactMessage{}, invalid(s.notifier, "Please enter a valid email address.")
	}

	msg, err := s.api.SubmitContact(ctx, in)
	if err != nil {
		report(s.notifier, err, "Failed to send message.")
		return model.ContactMessage{}, fmt.Errorf("submit contact: %w", err)
	}
	s.notifier.Notify(notify.Notice{
		Kind:    notify.Success,
		Message: "Message sent. We will get back to you soon.",
	})
	return msg, nil
}
