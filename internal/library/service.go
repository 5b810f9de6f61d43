// AngelaMos | 2026
// service.go

package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/blob"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var (
	ErrNoAccess        = errors.New("library access required")
	ErrInvalidDocument = errors.New("invalid document")
)

const (
	ReasonTrialEnded    = "Your free trial has ended. Subscribe to continue reading."
	ReasonNotSubscribed = "Subscribe to unlock the Digital Library."
)

type Accounts interface {
	GetProfile(ctx context.Context, userID string) (model.User, error)
}

// Upload is a file attached to a document create request.
type Upload struct {
	FileName string
	Body     io.Reader
}

type Service struct {
	repo     Repository
	accounts Accounts
	store    blob.Store
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	accounts Accounts,
	store blob.Store,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		accounts: accounts,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// AccessFor decides library access from the account alone. Admins always
// have access.
func AccessFor(u model.User, now time.Time) model.LibraryAccess {
	access := model.LibraryAccess{
		HasAccess:             u.IsAdmin() || u.HasLibraryAccess(now),
		HasActiveSubscription: u.HasActiveSubscription,
		TrialEndsAt:           u.TrialEndsAt,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
	}
	if !access.HasAccess {
		access.Reason = ReasonNotSubscribed
		if u.TrialEndsAt != nil {
			access.Reason = ReasonTrialEnded
		}
	}
	return access
}

func (s *Service) Access(ctx context.Context, userID string) (model.LibraryAccess, error) {
	u, err := s.accounts.GetProfile(ctx, userID)
	if err != nil {
		return model.LibraryAccess{}, err
	}
	return AccessFor(u, s.now()), nil
}

func (s *Service) Documents(ctx context.Context, userID string) ([]model.Document, error) {
	access, err := s.Access(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !access.HasAccess {
		return nil, core.NewAppError(
			ErrNoAccess,
			access.Reason,
			http.StatusForbidden,
			"SUBSCRIPTION_REQUIRED",
		)
	}

	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toModels(docs), nil
}

func (s *Service) Create(
	ctx context.Context,
	req DocumentRequest,
	upload *Upload,
) (model.Document, error) {
	req.normalize()
	if !req.valid() {
		return model.Document{}, fmt.Errorf("create document: %w", ErrInvalidDocument)
	}

	doc := &Document{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	}

	if upload != nil {
		obj, err := s.store.Put(ctx, "documents", upload.FileName, upload.Body)
		if err != nil {
			return model.Document{}, fmt.Errorf("store document file: %w", err)
		}
		doc.FileURL = obj.URL
		doc.FileName = obj.FileName
		doc.FileKey = obj.Key
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if doc.FileKey != "" {
			s.removeFile(ctx, doc.FileKey)
		}
		return model.Document{}, err
	}

	return doc.ToModel(), nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req DocumentRequest,
) (model.Document, error) {
	req.normalize()
	if !req.valid() {
		return model.Document{}, fmt.Errorf("update document: %w", ErrInvalidDocument)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Document{}, err
	}

	doc.Type = req.Type
	doc.Title = req.Title
	doc.Description = req.Description
	doc.Content = req.Content

	if err := s.repo.Update(ctx, doc); err != nil {
		return model.Document{}, err
	}
	return doc.ToModel(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if doc.FileKey != "" {
		s.removeFile(ctx, doc.FileKey)
	}
	return nil
}

func (s *Service) removeFile(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "remove document file failed", "key", key, "error", err)
	}
}
