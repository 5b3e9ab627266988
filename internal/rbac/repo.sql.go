package rbac

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jurisgestao/jurisgestao/internal/platform/db"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListPermissions returns the full catalog ordered by name.
func (r *PGRepository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM permissions ORDER BY name`)
	if err != nil {
		return nil, shared.NewStorageError("list permissions", err)
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, shared.NewStorageError("scan permission", err)
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list permissions", err)
	}
	return perms, nil
}

// InsertPermissions creates the given catalog entries in one transaction.
// Entries that already exist by name are left untouched.
func (r *PGRepository) InsertPermissions(ctx context.Context, defs []PermissionDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, def := range defs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permissions (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				def.Name, def.Description,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return shared.NewStorageError("insert permissions", err)
}

// ListRoles returns all roles ordered by name.
func (r *PGRepository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, shared.NewStorageError("list roles", err)
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, shared.NewStorageError("scan role", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list roles", err)
	}
	return roles, nil
}

// RolePermissionNames returns the permission names attached to a role.
func (r *PGRepository) RolePermissionNames(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name`, roleID)
	if err != nil {
		return nil, shared.NewStorageError("role permissions", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, shared.NewStorageError("scan role permission", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("role permissions", err)
	}
	return names, nil
}

// AttachPermissions links permissions to a role in one transaction.
// Already-attached pairs are left untouched.
func (r *PGRepository) AttachPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, permID := range permissionIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				roleID, permID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return shared.NewStorageError("attach permissions", err)
}

// UserPermissionNames returns the deduplicated permission names granted to a
// user through all of their roles, read fresh from storage.
func (r *PGRepository) UserPermissionNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, shared.NewStorageError("user permissions", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, shared.NewStorageError("scan user permission", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("user permissions", err)
	}
	return names, nil
}

var _ Repository = (*PGRepository)(nil)
