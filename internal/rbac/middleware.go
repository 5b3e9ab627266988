package rbac

import (
	"log/slog"
	"net/http"

	"github.com/jurisgestao/jurisgestao/internal/platform/httpx"
)

// Middleware wires RBAC authorization helpers for HTTP handlers. It only
// gates route visibility; the service layer remains the enforcement of
// record and re-checks every operation through the guard.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAny ensures the request principal holds at least one of the
// required permissions.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(perms) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			decision := Authorize(principal.Permissions, AnyOf(perms))
			if !decision.Allowed {
				if m.Logger != nil {
					m.Logger.Warn("route denied",
						slog.String("path", r.URL.Path),
						slog.Int64("user_id", principal.UserID))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
