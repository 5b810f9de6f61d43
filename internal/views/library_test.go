// AngelaMos | 2026
// library_test.go

package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

func libraryDocs() []model.Document {
	return []model.Document{
		{ID: "1", Type: model.BareAct, Title: "Mines and Minerals Act", Description: "Central act"},
		{ID: "2", Type: model.Notification, Title: "Concession Rules", Description: "State rules on leases"},
		{ID: "3", Type: model.BareAct, Title: "Forest Act", Description: "Clearances"},
	}
}

func TestLibraryMountDenied(t *testing.T) {
	api := newFakeAPI()
	api.access = model.LibraryAccess{HasAccess: false, Reason: "Your free trial has ended."}
	api.documents = libraryDocs()
	rec := &notify.Recorder{}

	lib := NewLibrary(api, &fakeSession{}, nil, rec)
	err := lib.Mount(context.Background())

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, api.count("documents"))
	assert.Empty(t, lib.Documents())

	last, _ := rec.Last()
	assert.Equal(t, notify.Notice{Kind: notify.Info, Message: "Your free trial has ended."}, last)
}

func TestLibraryMountGranted(t *testing.T) {
	api := newFakeAPI()
	api.access = model.LibraryAccess{HasAccess: true, HasActiveSubscription: true}
	api.documents = libraryDocs()

	lib := NewLibrary(api, &fakeSession{}, nil, nil)
	require.NoError(t, lib.Mount(context.Background()))

	assert.Len(t, lib.Documents(), 3)
	assert.True(t, lib.Access().HasActiveSubscription)
}

func TestLibraryMountUnauthorizedIsQuiet(t *testing.T) {
	api := newFakeAPI()
	api.err["access"] = &client.HTTPError{Status: 401, Message: "token expired"}
	rec := &notify.Recorder{}

	lib := NewLibrary(api, &fakeSession{}, nil, rec)
	err := lib.Mount(context.Background())

	assert.True(t, client.IsUnauthorized(err))
	assert.Empty(t, rec.Notices())
}

func TestLibraryFilter(t *testing.T) {
	api := newFakeAPI()
	api.access = model.LibraryAccess{HasAccess: true}
	api.documents = libraryDocs()

	lib := NewLibrary(api, &fakeSession{}, nil, nil)
	require.NoError(t, lib.Mount(context.Background()))

	ids := func(docs []model.Document) []string {
		out := make([]string, 0, len(docs))
		for _, d := range docs {
			out = append(out, d.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(lib.Filter("", "")))
	assert.Equal(t, []string{"1", "3"}, ids(lib.Filter(model.BareAct, "")))
	assert.Equal(t, []string{"1"}, ids(lib.Filter(model.BareAct, "  MINERALS ")))
	assert.Equal(t, []string{"2"}, ids(lib.Filter("", "leases")))
	assert.Empty(t, lib.Filter(model.Notification, "forest"))
}

func TestLibrarySubscribePricedByCategory(t *testing.T) {
	pay := &fakePayments{}
	sess := &fakeSession{user: model.User{Category: category.Student}}

	lib := NewLibrary(newFakeAPI(), sess, pay, nil)
	_, err := lib.Subscribe(context.Background())
	require.NoError(t, err)

	require.Len(t, pay.requests, 1)
	assert.Equal(t, payment.PurposeSubscription, pay.requests[0].Purpose)
	assert.Equal(t, int64(6000), pay.requests[0].Amount)
}

func TestLibrarySubscribeUnknownCategory(t *testing.T) {
	pay := &fakePayments{}
	rec := &notify.Recorder{}
	lib := NewLibrary(newFakeAPI(), &fakeSession{}, pay, rec)

	_, err := lib.Subscribe(context.Background())
	require.ErrorIs(t, err, category.ErrNotFound)
	assert.Empty(t, pay.requests)
}

func TestLibraryRemountsAfterSubscription(t *testing.T) {
	api := newFakeAPI()
	api.access = model.LibraryAccess{HasAccess: false}
	pay := &fakePayments{}

	lib := NewLibrary(api, &fakeSession{}, pay, nil)
	require.ErrorIs(t, lib.Mount(context.Background()), ErrAccessDenied)

	api.mu.Lock()
	api.access = model.LibraryAccess{HasAccess: true, HasActiveSubscription: true}
	api.documents = libraryDocs()
	api.mu.Unlock()

	pay.verified(context.Background(), payment.PurposeCase, "c1")
	assert.Zero(t, api.count("documents"))

	pay.verified(context.Background(), payment.PurposeSubscription, "")
	assert.Equal(t, 1, api.count("documents"))
	assert.Len(t, lib.Documents(), 3)
}
