package roles

import (
	"context"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// Service exposes the role catalog. Role membership is edited through the
// users module; this service only ensures and lists the roles themselves.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// EnsureDefaults creates the standard office roles when missing. Called at
// startup before default grants are bound.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	return s.repo.EnsureDefaults(ctx, shared.DefaultRoles())
}

// List returns all roles for actors allowed to manage users.
func (s *Service) List(ctx context.Context, actor *rbac.Principal) ([]Role, error) {
	decision := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersView))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
