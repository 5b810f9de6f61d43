// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/auth"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Service struct {
	repo        Repository
	trialPeriod time.Duration
	now         func() time.Time
}

func NewService(repo Repository, trialPeriod time.Duration) *Service {
	return &Service{
		repo:        repo,
		trialPeriod: trialPeriod,
		now:         time.Now,
	}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	return s.toUserInfo(user), nil
}

// Create opens an account. Regular users start their library trial at
// registration; admins are never on trial.
func (s *Service) Create(
	ctx context.Context,
	acct auth.NewAccount,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(acct.Email)),
		PasswordHash: acct.PasswordHash,
		Name:         strings.TrimSpace(acct.Name),
		Phone:        strings.TrimSpace(acct.Phone),
		Organization: strings.TrimSpace(acct.Organization),
		Category:     acct.Category,
		Role:         acct.Role,
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	if user.Role == RoleUser && s.trialPeriod > 0 {
		ends := s.now().Add(s.trialPeriod)
		user.TrialEndsAt = &ends
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.toUserInfo(user), nil
}

func (s *Service) GetProfile(
	ctx context.Context,
	userID string,
) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	return user.ToModel(s.now()), nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("update profile: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Organization != nil {
		user.Organization = strings.TrimSpace(*req.Organization)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*req.ProfilePicture)
	}
	user.Address = strings.TrimSpace(req.Address)
	user.Bio = strings.TrimSpace(req.Bio)

	if user.Address == "" || user.Bio == "" {
		return model.User{}, fmt.Errorf(
			"update profile: address and bio required: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return model.User{}, err
	}

	return user.ToModel(s.now()), nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) (model.UserPage, error) {
	params.Normalize()

	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return model.UserPage{}, err
	}

	now := s.now()
	out := make([]model.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToModel(now))
	}

	return model.UserPage{
		Users:    out,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}, nil
}

func (s *Service) toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Category:     u.Category,
		Profile:      u.ToModel(s.now()),
	}
}

var _ auth.UserProvider = (*Service)(nil)
