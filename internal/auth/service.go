// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("account is not an admin")
	ErrEmailExists        = errors.New("email already exists")
	ErrUnknownCategory    = errors.New("unknown category")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Category     string
	Profile      model.User
}

type NewAccount struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Organization string
	Category     string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(ctx context.Context, acct NewAccount) (*UserInfo, error)
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	publisher    events.Publisher
}

// NewService wires the login and registration flows. publisher may be nil.
func NewService(jwt *JWTManager, userProvider UserProvider, publisher events.Publisher) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		publisher:    publisher,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*model.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.createAuthResponse(user)
}

// AdminLogin authenticates first so a wrong password and a non-admin account
// are distinguishable only after the credentials check out.
func (s *Service) AdminLogin(
	ctx context.Context,
	req LoginRequest,
) (*model.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return s.createAuthResponse(user)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*model.AuthResponse, error) {
	cat, err := category.Parse(req.Category)
	if err != nil {
		return nil, fmt.Errorf("register: %w", ErrUnknownCategory)
	}

	user, err := s.createAccount(ctx, NewAccount{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Organization: req.Organization,
		Category:     string(cat),
		Role:         model.RoleUser,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, nil, events.Event{
		Type: events.UserRegistered,
		Payload: map[string]string{
			"userId":   user.ID,
			"email":    user.Email,
			"category": user.Category,
		},
	})

	return s.createAuthResponse(user)
}

// CreateAdmin provisions an operator account from the command line.
func (s *Service) CreateAdmin(
	ctx context.Context,
	name, email, password string,
) (*UserInfo, error) {
	return s.createAccount(ctx, NewAccount{
		Email: email,
		Name:  name,
		Role:  model.RoleAdmin,
	}, password)
}

func (s *Service) createAccount(
	ctx context.Context,
	acct NewAccount,
	password string,
) (*UserInfo, error) {
	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct.PasswordHash = passwordHash

	user, err := s.userProvider.Create(ctx, acct)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *Service) authenticate(
	ctx context.Context,
	req LoginRequest,
) (*UserInfo, error) {
	user, err := s.userProvider.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*model.AuthResponse, error) {
	claims := AccessTokenClaims{
		UserID: user.ID,
		Role:   user.Role,
	}
	if user.Role != model.RoleAdmin {
		claims.Category = user.Category
	}

	accessToken, err := s.jwt.CreateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &model.AuthResponse{
		Token: accessToken,
		User:  user.Profile,
	}, nil
}
