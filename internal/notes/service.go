// AngelaMos | 2026
// service.go

package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var ErrEmptyTitle = errors.New("title is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]model.Note, error) {
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Note, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToModel())
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, userID string, req NoteRequest) (model.Note, error) {
	n := &Note{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if n.Title == "" {
		return model.Note{}, fmt.Errorf("create note: %w", ErrEmptyTitle)
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return model.Note{}, err
	}
	return n.ToModel(), nil
}

func (s *Service) Update(ctx context.Context, userID, id string, req NoteRequest) (model.Note, error) {
	n := &Note{
		ID:      id,
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if n.Title == "" {
		return model.Note{}, fmt.Errorf("update note: %w", ErrEmptyTitle)
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return model.Note{}, err
	}
	return n.ToModel(), nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
