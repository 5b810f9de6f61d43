// AngelaMos | 2026
// service_test.go

package feedback

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type memRepo struct {
	feedback []Feedback
	messages map[string]*ContactMessage
}

func newMemRepo() *memRepo {
	return &memRepo{messages: map[string]*ContactMessage{}}
}

func (m *memRepo) ListFeedback(context.Context) ([]Feedback, error) { return m.feedback, nil }

func (m *memRepo) CreateFeedback(_ context.Context, f *Feedback) error {
	m.feedback = append(m.feedback, *f)
	return nil
}

func (m *memRepo) ListMessages(context.Context) ([]ContactMessage, error) {
	out := make([]ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, nil
}

func (m *memRepo) CreateMessage(_ context.Context, msg *ContactMessage) error {
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *memRepo) Reply(_ context.Context, id, reply string) (*ContactMessage, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("reply: %w", core.ErrNotFound)
	}
	if msg.Reply != "" {
		return nil, fmt.Errorf("reply: %w", core.ErrConflict)
	}
	now := time.Now()
	msg.Reply = reply
	msg.RepliedAt = &now
	cp := *msg
	return &cp, nil
}

type accounts map[string]model.User

func (a accounts) GetProfile(_ context.Context, id string) (model.User, error) {
	u, ok := a[id]
	if !ok {
		return model.User{}, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	return u, nil
}

type recordingPublisher struct{ events []events.Event }

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestSubmitFeedbackUsesProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, accounts{"u1": {ID: "u1", Name: "Meera", Email: "meera@example.com"}}, nil, nil)
	ctx := context.Background()

	f, err := svc.SubmitFeedback(ctx, "u1", "  Great library  ")
	require.NoError(t, err)
	assert.Equal(t, "Meera", f.UserName)
	assert.Equal(t, "meera@example.com", f.UserEmail)
	assert.Equal(t, "Great library", f.FeedbackText)

	_, err = svc.SubmitFeedback(ctx, "u1", "   ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReplyOnceAndNotify(t *testing.T) {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, accounts{}, pub, nil)
	ctx := context.Background()

	msg, err := svc.SubmitMessage(ctx, ContactRequest{
		Name:    " Ravi ",
		Email:   "Ravi@Example.com",
		Message: "How do I renew a lease?",
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", msg.Email)

	replied, err := svc.Reply(ctx, msg.ID, "Use form J")
	require.NoError(t, err)
	assert.Equal(t, "Use form J", replied.Reply)
	assert.NotNil(t, replied.RepliedAt)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.ContactReplied, pub.events[0].Type)

	_, err = svc.Reply(ctx, msg.ID, "again")
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Len(t, pub.events, 1)

	_, err = svc.Reply(ctx, "missing", "hello")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func withRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: "u1",
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestHandlerRouting(t *testing.T) {
	repo := newMemRepo()
	repo.messages["m1"] = &ContactMessage{ID: "m1", Name: "A", Email: "a@example.com", Message: "hi"}
	svc := NewService(repo, accounts{"u1": {ID: "u1", Name: "U"}}, nil, nil)

	serve := func(role, method, path, body string) int {
		r := chi.NewRouter()
		NewHandler(svc).RegisterRoutes(r, withRole(role), middleware.RequireAdmin, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, serve("", http.MethodPost, "/contact",
		`{"name":"B","email":"b@example.com","message":"question"}`))
	assert.Equal(t, http.StatusBadRequest, serve("", http.MethodPost, "/contact",
		`{"name":"B","email":"not-an-email","message":"question"}`))
	assert.Equal(t, http.StatusCreated, serve("user", http.MethodPost, "/feedback", `{"feedbackText":"nice"}`))
	assert.Equal(t, http.StatusForbidden, serve("user", http.MethodGet, "/feedback", ""))
	assert.Equal(t, http.StatusOK, serve("admin", http.MethodGet, "/contact", ""))
	assert.Equal(t, http.StatusOK, serve("admin", http.MethodPost, "/contact/m1/reply", `{"reply":"done"}`))
	assert.Equal(t, http.StatusConflict, serve("admin", http.MethodPost, "/contact/m1/reply", `{"reply":"again"}`))
	assert.Equal(t, http.StatusNotFound, serve("admin", http.MethodPost, "/contact/nope/reply", `{"reply":"x"}`))
}
