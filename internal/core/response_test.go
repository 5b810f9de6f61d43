// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONErrorCarriesMessageTwice(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("load case: %w", NotFoundError("case")))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "case not found", body.Error.Message)
	assert.Equal(t, "case not found", body.Message)
}

func TestJSONErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("verify: %w", PaymentError("signature mismatch"))
	assert.ErrorIs(t, err, ErrPaymentInvalid)
	assert.True(t, IsAppError(err))
}

func TestFormatValidationError(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := validator.New().Struct(form{Email: "nope"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "name is required")
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name    string
		payload string
		ok      bool
		message string
	}{
		{name: "valid", payload: `{"email":"a@b.in"}`, ok: true},
		{name: "malformed", payload: `{"email":`, message: "invalid request body"},
		{name: "invalid field", payload: `{"email":"nope"}`, message: "email must be a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))

			var dst body
			assert.Equal(t, tt.ok, DecodeJSON(rec, req, &dst))
			if tt.ok {
				assert.Equal(t, "a@b.in", dst.Email)
				return
			}

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=-1&x=abc", nil)
	assert.Equal(t, 3, QueryInt(req, "page", 1))
	assert.Equal(t, 20, QueryInt(req, "limit", 20))
	assert.Equal(t, 7, QueryInt(req, "x", 7))
	assert.Equal(t, 9, QueryInt(req, "missing", 9))
}
