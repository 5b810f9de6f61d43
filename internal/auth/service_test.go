// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type fakeUsers struct {
	mu    sync.Mutex
	byKey map[string]*UserInfo
	next  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byKey: map[string]*UserInfo{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byKey[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUsers) Create(_ context.Context, acct NewAccount) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(acct.Email)
	if _, ok := f.byKey[key]; ok {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	f.next++
	u := &UserInfo{
		ID:           fmt.Sprintf("user-%d", f.next),
		Email:        acct.Email,
		Name:         acct.Name,
		PasswordHash: acct.PasswordHash,
		Role:         acct.Role,
		Category:     acct.Category,
	}
	u.Profile = model.User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	f.byKey[key] = u
	return u, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *fakeUsers, *recordingPublisher) {
	t.Helper()
	users := newFakeUsers()
	pub := &recordingPublisher{}
	return NewService(newTestJWTManager(t), users, pub), users, pub
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9999999999",
		Password: "secret1",
		Category: "mining dealer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)

	claims, err := svc.jwt.VerifyAccessToken(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "MINERAL_DEALER", claims.Category)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.UserRegistered, pub.events[0].Type)

	login, err := svc.Login(ctx, LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterRejections(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name: "X", Email: "x@example.com", Password: "secret1", Category: "ASTRONAUT",
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	req := RegisterRequest{Name: "Y", Email: "y@example.com", Password: "secret1", Category: "STUDENT"}
	_, err = svc.Register(ctx, req)
	require.NoError(t, err)
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginWrongPasswordAndUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name: "Z", Email: "z@example.com", Password: "secret1", Category: "FIRM",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "z@example.com", Password: "wrong-pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "Root", "root@example.com", "rootpass")
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{
		Name: "U", Email: "u@example.com", Password: "userpass", Category: "COMPANY",
	})
	require.NoError(t, err)

	resp, err := svc.AdminLogin(ctx, LoginRequest{Email: "root@example.com", Password: "rootpass"})
	require.NoError(t, err)
	claims, err := svc.jwt.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Empty(t, claims.Category)

	_, err = svc.AdminLogin(ctx, LoginRequest{Email: "u@example.com", Password: "userpass"})
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = svc.AdminLogin(ctx, LoginRequest{Email: "root@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
