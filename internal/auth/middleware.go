package auth

import (
	"log/slog"
	"net/http"

	"github.com/jurisgestao/jurisgestao/internal/platform/httpx"
	"github.com/jurisgestao/jurisgestao/internal/rbac"
)

// Authenticator turns request credentials into a context principal. Each
// request is authenticated on its own and gets a permission set resolved
// from durable state at that moment; nothing is stored between requests.
type Authenticator struct {
	Service *Service
	Logger  *slog.Logger
	Realm   string
}

// Middleware rejects requests without valid Basic credentials and stores
// the resulting principal in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		if !ok {
			a.challenge(w)
			return
		}
		principal, err := a.Service.Authenticate(r.Context(), login, password)
		if err != nil {
			if a.Logger != nil {
				a.Logger.Warn("authentication failed", slog.String("login", login))
			}
			a.challenge(w)
			return
		}
		ctx := rbac.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) challenge(w http.ResponseWriter) {
	realm := a.Realm
	if realm == "" {
		realm = "jurisgestao"
	}
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "valid credentials required")
}
