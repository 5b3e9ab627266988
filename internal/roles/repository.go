package roles

import (
	"context"

	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// RepositoryPort is the storage contract for roles.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	EnsureDefaults(ctx context.Context, defs []shared.RoleDefinition) error
}
