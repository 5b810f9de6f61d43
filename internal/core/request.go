// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const maxJSONBody = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate applies the struct's validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// DecodeJSON reads a JSON body into dst and validates it. On failure it has
// already written a 400 and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return CheckValid(w, dst)
}

// CheckValid validates v, writing a 400 that names the failing fields.
func CheckValid(w http.ResponseWriter, v any) bool {
	if err := Validate(v); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}
	return true
}

// QueryInt reads a positive integer query parameter, falling back to def.
func QueryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
