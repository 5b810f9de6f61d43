// AngelaMos | 2026
// service.go

package consultancy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/blob"
	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var (
	ErrConsultancyLocked = errors.New("consultancy requires a premium category")
	ErrInvalidCase       = errors.New("invalid case")
	ErrEmptyIssue        = errors.New("issue is required")
	ErrCasePaid          = errors.New("case already paid")
)

type Accounts interface {
	GetProfile(ctx context.Context, userID string) (model.User, error)
}

type Upload struct {
	FileName string
	Body     io.Reader
}

type Service struct {
	repo      Repository
	accounts  Accounts
	store     blob.Store
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	accounts Accounts,
	store blob.Store,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		accounts:  accounts,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every case to admins and only the caller's own cases to
// everyone else.
func (s *Service) List(ctx context.Context, userID string, isAdmin bool) ([]model.Case, error) {
	var (
		cases []Case
		err   error
	)
	if isAdmin {
		cases, err = s.repo.List(ctx)
	} else {
		cases, err = s.repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.Case, 0, len(cases))
	for i := range cases {
		out = append(out, cases[i].ToModel())
	}
	return out, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateCaseRequest,
	upload *Upload,
) (model.Case, error) {
	issue := strings.TrimSpace(req.Issue)
	if issue == "" {
		return model.Case{}, fmt.Errorf("create case: %w", ErrEmptyIssue)
	}

	u, err := s.accounts.GetProfile(ctx, userID)
	if err != nil {
		return model.Case{}, err
	}
	if !category.CanAccessConsultancy(u.Category) {
		return model.Case{}, fmt.Errorf("create case: %w", ErrConsultancyLocked)
	}

	c := &Case{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		UserName:  u.Name,
		UserEmail: u.Email,
		Issue:     issue,
		Status:    string(model.CasePending),
	}

	if upload != nil {
		obj, err := s.store.Put(ctx, "cases", upload.FileName, upload.Body)
		if err != nil {
			return model.Case{}, fmt.Errorf("store case document: %w", err)
		}
		c.DocumentURL = obj.URL
		c.DocumentName = obj.FileName
		c.DocumentKey = obj.Key
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if c.DocumentKey != "" {
			if delErr := s.store.Delete(ctx, c.DocumentKey); delErr != nil {
				s.logger.WarnContext(ctx, "remove case document failed", "key", c.DocumentKey, "error", delErr)
			}
		}
		return model.Case{}, err
	}

	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:    events.CaseSubmitted,
		Payload: map[string]string{"caseId": c.ID, "userId": c.UserID},
	})

	return c.ToModel(), nil
}

// Update applies an admin's answer. A solution without an explicit status
// moves the case to SOLUTION_READY, which needs a positive fee.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCaseRequest,
) (model.Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Case{}, err
	}
	if c.IsPaid {
		return model.Case{}, fmt.Errorf("update case: %w", ErrCasePaid)
	}

	if sol := strings.TrimSpace(req.Solution); sol != "" {
		c.Solution = sol
	}
	if req.Fee > 0 {
		c.Fee = req.Fee
	}

	status := req.Status
	if status == "" && req.Solution != "" {
		status = string(model.CaseSolutionReady)
	}
	if status != "" {
		c.Status = status
	}

	if c.Status == string(model.CaseSolutionReady) && (c.Solution == "" || c.Fee <= 0) {
		return model.Case{}, fmt.Errorf("update case: solution and fee required: %w", ErrInvalidCase)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return model.Case{}, err
	}

	if c.Status == string(model.CaseSolutionReady) {
		events.Emit(ctx, s.publisher, s.logger, events.Event{
			Type: events.CaseSolved,
			Payload: map[string]any{
				"caseId":    c.ID,
				"userEmail": c.UserEmail,
				"fee":       c.Fee,
			},
		})
	}

	return c.ToModel(), nil
}

// Get is used by billing to price a case payment for its owner.
func (s *Service) Get(ctx context.Context, id string) (model.Case, string, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Case{}, "", err
	}
	return c.ToModel(), c.UserID, nil
}
