// AngelaMos | 2026
// store.go

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var ErrMalformedToken = errors.New("malformed session token")

// Claims are read from the bearer token without verifying its signature.
// The server remains the authority; the client only needs expiry and role
// to decide what to render.
type Claims struct {
	Subject   string
	Role      string
	Category  string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type Snapshot struct {
	Token         string
	Claims        Claims
	User          model.User
	Authenticated bool
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	mu        sync.RWMutex
	persister Persister
	now       func() time.Time

	token  string
	claims Claims
	user   model.User
}

func NewStore(persister Persister, opts ...Option) *Store {
	if persister == nil {
		persister = NewMemoryPersister()
	}
	s := &Store{
		persister: persister,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func DecodeClaims(token string) (Claims, error) {
	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", ErrMalformedToken)
	}

	var c Claims
	if sub, ok := parsed.Subject(); ok {
		c.Subject = sub
	}
	if exp, ok := parsed.Expiration(); ok {
		c.ExpiresAt = exp
	}
	_ = parsed.Get("role", &c.Role)         //nolint:errcheck // optional claim
	_ = parsed.Get("category", &c.Category) //nolint:errcheck // optional claim

	return c, nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	s.claims = claims
	return nil
}

// SetSession installs a token and its user in one step, as after login.
func (s *Store) SetSession(ctx context.Context, token string, user model.User) error {
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	s.claims = claims
	s.user = user
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Claims() Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims
}

func (s *Store) CurrentUser() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) SetUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticatedLocked()
}

func (s *Store) authenticatedLocked() bool {
	return s.token != "" && !s.claims.Expired(s.now())
}

func (s *Store) IsFullyOnboarded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsOnboarded()
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims.Role == model.RoleAdmin || s.user.IsAdmin()
}

func (s *Store) HasLibraryAccess(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasLibraryAccess(now)
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.claims = Claims{}
	s.user = model.User{}

	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}
	return nil
}

// Load restores a persisted token. A token that cannot be decoded or has
// already expired is discarded.
func (s *Store) Load(ctx context.Context) error {
	token, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil || claims.Expired(s.now()) {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Token:         s.token,
		Claims:        s.claims,
		User:          s.user,
		Authenticated: s.authenticatedLocked(),
	}
}
