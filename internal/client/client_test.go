// AngelaMos | 2026
// client_test.go

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

func staticToken(tok string) TokenProvider {
	return TokenFunc(func() string { return tok })
}

func TestDoAttachesBearerAndJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "A", in["address"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","address":"A","bio":"B"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-1"))
	user, err := c.UpdateProfile(context.Background(), ProfileUpdate{Address: "A", Bio: "B"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "B", user.Bio)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/profile", nil, nil))
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"Email already registered"}`, "Email already registered"},
		{"error string", `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"error object", `{"error":{"code":"X","message":"nested"}}`, "nested"},
		{"message wins", `{"error":{"message":"nested"},"message":"top"}`, "top"},
		{"empty object", `{}`, "request failed"},
		{"not json", `<html>bad gateway</html>`, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL, nil).Do(context.Background(), http.MethodGet, "/x", nil, nil)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Message)
			assert.Equal(t, http.StatusBadRequest, StatusOf(err))
		})
	}
}

func TestUnauthorizedHookFiresOncePerAuthenticatedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	var calls atomic.Int32
	c := New(srv.URL, staticToken("stale"), WithUnauthorizedHandler(func(context.Context) {
		calls.Add(1)
	}))

	_, err := c.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load(), "credential endpoints never trip the hook")
}

func TestNetworkErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, nil).Do(context.Background(), http.MethodGet, "/profile", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.Zero(t, StatusOf(err))
}

func TestCreateDocumentMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "BARE_ACT", r.FormValue("type"))
		assert.Equal(t, "Mines Act", r.FormValue("title"))
		assert.Equal(t, "act.pdf", r.FormValue("fileName"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "act.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.7", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"d1","type":"BARE_ACT","title":"Mines Act"}`))
	}))
	defer srv.Close()

	doc, err := New(srv.URL, staticToken("t")).CreateDocument(context.Background(), DocumentInput{
		Type:  model.BareAct,
		Title: "Mines Act",
	}, &Upload{Name: "act.pdf", Content: strings.NewReader("%PDF-1.7")})
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)
}

func TestCreateDocumentJSONWithoutFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id":"d2"}`))
	}))
	defer srv.Close()

	doc, err := New(srv.URL, staticToken("t")).CreateDocument(
		context.Background(),
		DocumentInput{Type: model.Circular, Title: "C"},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "d2", doc.ID)
}

func TestGetListAcceptsEnvelopeOrArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notes", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"notes":[{"_id":"n1","title":"one"},{"id":"n2","title":"two"}]}`))
	})
	mux.HandleFunc("/feedback", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"f1","feedbackText":"great"}]`))
	})
	mux.HandleFunc("/minerals", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"minerals":null}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	ctx := context.Background()

	notes, err := c.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "n2", notes[1].ID)

	fb, err := c.GetFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, fb, 1)
	assert.Equal(t, "great", fb[0].FeedbackText)

	minerals, err := c.GetMinerals(ctx)
	require.NoError(t, err)
	assert.Empty(t, minerals)
}

func TestListUsersQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "FIRM", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"users":[{"_id":"u1"}],"page":2,"pageSize":10,"total":11}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL, staticToken("t")).ListUsers(context.Background(), UserQuery{
		Page:     2,
		Category: "FIRM",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "u1", page.Users[0].ID)
}

func TestVerifyPaymentBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/verify", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pay_1", body["razorpay_payment_id"])
		assert.Equal(t, "order_1", body["razorpay_order_id"])
		assert.Equal(t, "sig", body["razorpay_signature"])
		assert.Equal(t, "c1", body["case_id"])
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	err := New(srv.URL, staticToken("t")).VerifyPayment(context.Background(), Verification{
		PaymentID: "pay_1",
		OrderID:   "order_1",
		Signature: "sig",
		CaseID:    "c1",
	})
	require.NoError(t, err)
}

func TestRouteOf(t *testing.T) {
	assert.Equal(t, "/documents/{id}", routeOf("/documents/abc"))
	assert.Equal(t, "/contact/{id}/reply", routeOf("/contact/42/reply"))
	assert.Equal(t, "/admin/users", routeOf("/admin/users?page=2"))
	assert.Equal(t, "/profile", routeOf("/profile"))
}
