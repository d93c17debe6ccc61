// AngelaMos | 2026
// authz_test.go

package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/snipvault/internal/middleware"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"regular", "regular", http.StatusForbidden},
		{"manager", "manager", http.StatusForbidden},
		{"unknown role", "superuser", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/v1/admin/stats", nil)

			if tt.role != "" {
				ctx := context.WithValue(
					r.Context(), middleware.UserIDKey, "user-1",
				)
				ctx = context.WithValue(
					ctx, middleware.UserRoleKey, tt.role,
				)
				r = r.WithContext(ctx)
			}

			RequireAdmin(next).ServeHTTP(rec, r)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
