// AngelaMos | 2026
// service.go

package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var ErrEmpty = errors.New("text is required")

type Accounts interface {
	GetProfile(ctx context.Context, userID string) (model.User, error)
}

type Service struct {
	repo      Repository
	accounts  Accounts
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	accounts Accounts,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, accounts: accounts, publisher: publisher, logger: logger}
}

func (s *Service) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	rows, err := s.repo.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Feedback, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToModel())
	}
	return out, nil
}

// SubmitFeedback signs the entry with the caller's profile name and email.
func (s *Service) SubmitFeedback(ctx context.Context, userID, text string) (model.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Feedback{}, fmt.Errorf("submit feedback: %w", ErrEmpty)
	}

	u, err := s.accounts.GetProfile(ctx, userID)
	if err != nil {
		return model.Feedback{}, err
	}

	f := &Feedback{
		ID:           uuid.New().String(),
		UserName:     u.Name,
		UserEmail:    u.Email,
		FeedbackText: text,
	}
	if err := s.repo.CreateFeedback(ctx, f); err != nil {
		return model.Feedback{}, err
	}
	return f.ToModel(), nil
}

func (s *Service) ListMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ContactMessage, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToModel())
	}
	return out, nil
}

func (s *Service) SubmitMessage(ctx context.Context, req ContactRequest) (model.ContactMessage, error) {
	m := &ContactMessage{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}
	if m.Name == "" || m.Message == "" {
		return model.ContactMessage{}, fmt.Errorf("submit contact: %w", ErrEmpty)
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return model.ContactMessage{}, err
	}
	return m.ToModel(), nil
}

func (s *Service) Reply(ctx context.Context, id, reply string) (model.ContactMessage, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return model.ContactMessage{}, fmt.Errorf("reply: %w", ErrEmpty)
	}

	m, err := s.repo.Reply(ctx, id, reply)
	if err != nil {
		return model.ContactMessage{}, err
	}

	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type: events.ContactReplied,
		Payload: map[string]string{
			"messageId": m.ID,
			"email":     m.Email,
			"name":      m.Name,
			"reply":     m.Reply,
		},
	})

	return m.ToModel(), nil
}
