package roles

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jurisgestao/jurisgestao/internal/platform/db"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns every role ordered by name.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description
		FROM roles
		ORDER BY name`)
	if err != nil {
		return nil, shared.NewStorageError("list roles", err)
	}
	defer rows.Close()
	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, shared.NewStorageError("scan role", err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list roles", err)
	}
	return out, nil
}

// EnsureDefaults inserts any of the given roles that do not exist yet.
// Existing rows are left untouched, including edited descriptions.
func (r *Repository) EnsureDefaults(ctx context.Context, defs []shared.RoleDefinition) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, def := range defs {
			_, err := tx.Exec(ctx, `
				INSERT INTO roles (name, description)
				VALUES ($1, $2)
				ON CONFLICT (name) DO NOTHING`,
				def.Name, def.Description)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.NewStorageError("ensure roles", err)
	}
	return nil
}
