package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jurisgestao/jurisgestao/internal/agenda"
	"github.com/jurisgestao/jurisgestao/internal/auth"
	"github.com/jurisgestao/jurisgestao/internal/clients"
	"github.com/jurisgestao/jurisgestao/internal/observability"
	"github.com/jurisgestao/jurisgestao/internal/platform/httpx"
	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/roles"
	"github.com/jurisgestao/jurisgestao/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Authenticator  *auth.Authenticator
	UsersHandler   *users.Handler
	ClientsHandler *clients.Handler
	AgendaHandler  *agenda.Handler
	RolesHandler   *roles.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router. Health and metrics stay public;
// everything else sits behind authentication.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(params.Authenticator.Middleware)

		r.Get("/me", meHandler)

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/clients", params.ClientsHandler.MountRoutes)
		r.Route("/agenda", params.AgendaHandler.MountRoutes)
	})

	return r
}

type meResponse struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// meHandler returns the caller's identity and effective permissions so a
// client can decide which actions to expose.
func meHandler(w http.ResponseWriter, r *http.Request) {
	principal := rbac.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	httpx.JSON(w, http.StatusOK, meResponse{
		UserID:      principal.UserID,
		Username:    principal.Username,
		Permissions: principal.Permissions.Names(),
	})
}
