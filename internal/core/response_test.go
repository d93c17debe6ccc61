// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Message)
}

func TestUnprocessableEntityEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	UnprocessableEntity(rec, FieldErrors{"email": "email is required"})

	assert.Equal(t, 422, rec.Code)

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "email is required", env.Errors["email"])
}

func TestNotFoundEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "snippet")

	assert.Equal(t, 404, rec.Code)

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "snippet not found", env.Message)
}

func TestJSONErrorUsesAppErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, ConflictError("still referenced"))

	assert.Equal(t, 409, rec.Code)

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "still referenced", env.Message)
}

func TestJSONErrorWritesFieldMap(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, DuplicateError("email"))

	assert.Equal(t, 422, rec.Code)

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "email already taken", env.Errors["email"])
}

func TestJSONErrorFallsBackTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, assert.AnError)

	assert.Equal(t, 500, rec.Code)

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 2, 15, 31)

	assert.Equal(t, 2, page.Meta.Page)
	assert.Equal(t, 15, page.Meta.PerPage)
	assert.Equal(t, 31, page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage([]int{}, 1, 15, 0)

	assert.Equal(t, 0, page.Meta.Total)
	assert.Equal(t, 0, page.Meta.TotalPages)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 15},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"caps per_page", "per_page=500", 1, 100},
		{"ignores garbage", "page=abc&per_page=-2", 1, 15},
		{"ignores zero page", "page=0", 1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/snippets?"+tt.query, nil)
			page, perPage := ParsePagination(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=1,max=100"`
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(payload{Email: "not-an-email"})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "name is required", fields["name"])
}

func TestFormatValidationErrorsNonValidator(t *testing.T) {
	fields := FormatValidationErrors(assert.AnError)
	assert.Equal(t, "invalid request", fields["request"])
}
