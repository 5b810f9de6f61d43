// AngelaMos | 2026
// admin_test.go

package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

func adminSession() *fakeSession {
	return &fakeSession{authn: true, admin: true, user: model.User{Role: model.RoleAdmin}}
}

func seededAdminAPI() *fakeAPI {
	api := newFakeAPI()
	api.users = model.UserPage{Users: []model.User{{ID: "u1"}, {ID: "u2"}}, Page: 1, PageSize: 20, Total: 2}
	api.documents = libraryDocs()
	api.cases = seededCases()
	api.feedback = []model.Feedback{{ID: "f1", FeedbackText: "great"}}
	api.contacts = []model.ContactMessage{{ID: "m1", Message: "hello"}}
	return api
}

func TestAdminRequiresAdminRole(t *testing.T) {
	api := seededAdminAPI()
	sessions := []*fakeSession{
		{authn: true, user: model.User{Role: model.RoleUser}},
		{authn: false, admin: true},
	}
	for _, sess := range sessions {
		a := NewAdmin(api, sess, nil)
		assert.ErrorIs(t, a.Mount(context.Background()), ErrForbidden)
		_, err := a.SolveCase(context.Background(), "c1", "answer", 100)
		assert.ErrorIs(t, err, ErrForbidden)
	}
	assert.Zero(t, api.count("users"))
	assert.Zero(t, api.count("update-case"))
}

func TestAdminMountLoadsEverything(t *testing.T) {
	api := seededAdminAPI()
	a := NewAdmin(api, adminSession(), nil)

	require.NoError(t, a.Mount(context.Background()))

	assert.Equal(t, 2, a.Users().Total)
	assert.Len(t, a.Documents(), 3)
	assert.Len(t, a.Cases(), 4)
	assert.Len(t, a.Feedback(), 1)
	assert.Len(t, a.Contacts(), 1)
	assert.Equal(t, client.UserQuery{Page: 1, Limit: 20}, api.userQuery)
}

func TestAdminMountFailure(t *testing.T) {
	api := seededAdminAPI()
	api.err["feedback"] = errors.New("boom")
	rec := &notify.Recorder{}

	a := NewAdmin(api, adminSession(), rec)
	err := a.Mount(context.Background())

	require.Error(t, err)
	last, _ := rec.Last()
	assert.Equal(t, notify.Notice{Kind: notify.Error, Message: "Failed to load admin data."}, last)
}

func TestAdminSearchUsers(t *testing.T) {
	api := seededAdminAPI()
	a := NewAdmin(api, adminSession(), nil)

	require.NoError(t, a.SearchUsers(context.Background(), client.UserQuery{
		Search:   "ravi",
		Category: category.Firm,
	}))
	assert.Equal(t, client.UserQuery{Page: 1, Search: "ravi", Category: category.Firm}, api.userQuery)
}

func TestAdminDocumentLifecycle(t *testing.T) {
	api := newFakeAPI()
	a := NewAdmin(api, adminSession(), nil)
	ctx := context.Background()

	doc, err := a.AddDocument(ctx, client.DocumentInput{
		Type:  model.Circular,
		Title: "Circular 12",
	}, &client.Upload{Name: "c12.pdf", Content: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "c12.pdf", doc.FileName)
	assert.Equal(t, 1, api.count("documents"))
	require.Len(t, a.Documents(), 1)

	_, err = a.UpdateDocument(ctx, doc.ID, client.DocumentInput{Type: model.Circular, Title: "Circular 12A"})
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("documents"))
	assert.Equal(t, "Circular 12A", a.Documents()[0].Title)

	require.NoError(t, a.DeleteDocument(ctx, doc.ID))
	assert.Equal(t, 3, api.count("documents"))
	assert.Empty(t, a.Documents())
}

func TestAdminAddDocumentValidation(t *testing.T) {
	api := newFakeAPI()
	a := NewAdmin(api, adminSession(), nil)

	_, err := a.AddDocument(context.Background(), client.DocumentInput{Type: "MEMO", Title: "x"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = a.AddDocument(context.Background(), client.DocumentInput{Type: model.Judgement, Title: " "}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, api.count("create-document"))
}

func TestAdminSolveCase(t *testing.T) {
	api := seededAdminAPI()
	a := NewAdmin(api, adminSession(), nil)

	cs, err := a.SolveCase(context.Background(), "c1", "File a revision petition.", 3000)
	require.NoError(t, err)

	assert.Equal(t, model.CaseSolutionReady, cs.Status)
	assert.Equal(t, int64(3000), cs.Fee)
	assert.True(t, cs.Payable())
	assert.Equal(t, 1, api.count("cases"))

	_, err = a.SolveCase(context.Background(), "c1", "answer", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = a.SolveCase(context.Background(), "c1", "", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, api.count("update-case"))
}

func TestAdminReplyContact(t *testing.T) {
	api := seededAdminAPI()
	rec := &notify.Recorder{}
	a := NewAdmin(api, adminSession(), rec)

	msg, err := a.ReplyContact(context.Background(), "m1", " Thanks, we will call you. ")
	require.NoError(t, err)
	assert.Equal(t, "Thanks, we will call you.", msg.Reply)
	assert.Equal(t, 1, api.count("contacts"))
	assert.Equal(t, "Thanks, we will call you.", a.Contacts()[0].Reply)

	_, err = a.ReplyContact(context.Background(), "missing", "hi")
	require.Error(t, err)
	last, _ := rec.Last()
	assert.Equal(t, notify.Notice{Kind: notify.Error, Message: "Message not found"}, last)
}
