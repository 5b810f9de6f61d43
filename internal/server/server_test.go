// AngelaMos | 2026
// server_test.go

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

func TestUnknownRoutesAnswerJSON(t *testing.T) {
	s := New(Config{})
	s.Router().Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		core.OK(w, map[string]string{"pong": "ok"})
	})

	tests := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{http.MethodGet, "/nope", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodPost, "/ping", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code)

		var body core.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tt.code, body.Error.Code)
	}
}
