// AngelaMos | 2026
// handler_test.go

package snippet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/middleware"
)

func newTestRouter(repo *fakeRepo) chi.Router {
	handler := NewHandler(newTestService(repo))

	identity := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(
				r.Context(), middleware.UserIDKey, "user-1",
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	handler.RegisterRoutes(r, identity)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, target string) (
	int, core.Envelope,
) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

// Route IDs that cannot be UUIDs must read as absent rows, not as driver
// errors surfacing through a 500.
func TestMalformedPathIDsReadAsNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	tests := []struct {
		name    string
		method  string
		target  string
		message string
	}{
		{
			"get snippet", http.MethodGet,
			"/snippets/not-a-uuid", "snippet not found",
		},
		{
			"update snippet", http.MethodPut,
			"/snippets/12345", "snippet not found",
		},
		{
			"delete snippet", http.MethodDelete,
			"/snippets/12345", "snippet not found",
		},
		{
			"favorite snippet", http.MethodPost,
			"/favorites/zzz", "snippet not found",
		},
		{
			"unfavorite snippet", http.MethodDelete,
			"/favorites/zzz", "snippet not found",
		},
		{
			"list by language", http.MethodGet,
			"/languages/go/snippets", "language not found",
		},
		{
			"list by tag", http.MethodGet,
			"/tags/sorting/snippets", "tag not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, router, tt.method, tt.target)

			assert.Equal(t, http.StatusNotFound, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestSearchRequiresMinimumQueryLength(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	for _, query := range []string{"", "x"} {
		status, env := doRequest(
			t, router, http.MethodGet, "/snippets/search?query="+query,
		)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.False(t, env.Success)
		assert.Contains(t, env.Errors, "query")
	}
}

func TestSearchAcceptsTwoCharacterQuery(t *testing.T) {
	repo := newFakeRepo()
	seedSnippet(repo, "snip-1", "user-1")
	router := newTestRouter(repo)

	status, env := doRequest(
		t, router, http.MethodGet, "/snippets/search?query=qu",
	)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}
