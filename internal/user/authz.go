// AngelaMos | 2026
// authz.go

package user

import (
	"net/http"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/middleware"
)

// RequireAdmin gates taxonomy management. Anonymous callers get 401;
// authenticated callers whose role cannot manage taxonomy get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roleStr, ok := middleware.GetUserRole(r.Context())
		if !ok {
			core.JSONError(
				w,
				core.UnauthorizedError("authentication required"),
			)
			return
		}

		role, err := ParseRole(roleStr)
		if err != nil || !role.CanManageTaxonomy() {
			core.JSONError(
				w,
				core.ForbiddenError("insufficient permissions"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}
