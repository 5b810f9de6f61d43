// AngelaMos | 2026
// service_test.go

package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
)

type memRepo struct {
	notes map[string]Note
}

func (m *memRepo) List(_ context.Context, userID string) ([]Note, error) {
	var out []Note
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memRepo) Create(_ context.Context, n *Note) error {
	m.notes[n.ID] = *n
	return nil
}

func (m *memRepo) Update(_ context.Context, n *Note) error {
	cur, ok := m.notes[n.ID]
	if !ok || cur.UserID != n.UserID {
		return fmt.Errorf("update note: %w", core.ErrNotFound)
	}
	m.notes[n.ID] = *n
	return nil
}

func (m *memRepo) Delete(_ context.Context, userID, id string) error {
	cur, ok := m.notes[id]
	if !ok || cur.UserID != userID {
		return fmt.Errorf("delete note: %w", core.ErrNotFound)
	}
	delete(m.notes, id)
	return nil
}

// asUser stands in for the bearer authenticator.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: r.Header.Get("X-Test-User"),
			Role:   "user",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRouter() (*chi.Mux, *memRepo) {
	repo := &memRepo{notes: map[string]Note{}}
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, asUser)
	return r, repo
}

func do(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Test-User", user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNotesAreOwnerScoped(t *testing.T) {
	r, _ := newRouter()

	rec := do(r, http.MethodPost, "/notes/", "alice", `{"title":" Lease dates ","content":"renew by March"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Lease dates", created.Title)

	rec = do(r, http.MethodGet, "/notes/", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list NotesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list.Notes)

	rec = do(r, http.MethodPut, "/notes/"+created.ID, "bob", `{"title":"mine now"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodDelete, "/notes/"+created.ID, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodPut, "/notes/"+created.ID, "alice", `{"title":"Lease dates","content":"done"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodDelete, "/notes/"+created.ID, "alice", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNoteTitleRequired(t *testing.T) {
	r, repo := newRouter()

	rec := do(r, http.MethodPost, "/notes/", "alice", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := NewService(repo).Create(context.Background(), "alice", NoteRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, repo.notes)
}
