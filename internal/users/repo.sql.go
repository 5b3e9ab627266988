package users

import (
	"context"
	"errors"
	"fmt"

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

// ListUsers returns all users with their role names.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.email, u.is_active, u.created_at,
		       COALESCE(array_agg(ro.name ORDER BY ro.name) FILTER (WHERE ro.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles ro ON ro.id = ur.role_id
		GROUP BY u.id
		ORDER BY u.id`)
	if err != nil {
		return nil, shared.NewStorageError("list users", err)
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.IsActive, &user.CreatedAt, &user.Roles); err != nil {
			return nil, shared.NewStorageError("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list users", err)
	}
	return users, nil
}

// GetUser fetches one user with role names.
func (r *Repository) GetUser(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.email, u.is_active, u.created_at,
		       COALESCE(array_agg(ro.name ORDER BY ro.name) FILTER (WHERE ro.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles ro ON ro.id = ur.role_id
		WHERE u.id = $1
		GROUP BY u.id`, id)

	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.IsActive, &user.CreatedAt, &user.Roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("get user", err)
	}
	return &user, nil
}

// CreateUser inserts the user row and its role links in one transaction.
func (r *Repository) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			user.Username, user.Email, user.PasswordHash, user.IsActive)
		if err := row.Scan(&id); err != nil {
			return err
		}
		return replaceRoles(ctx, tx, id, user.Roles)
	})
	if err != nil {
		return nil, translateWriteError("create user", err)
	}
	return r.GetUser(ctx, id)
}

// UpdateUser applies a partial update and replaces role links when provided,
// all in one transaction.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE users SET
				username      = COALESCE($2, username),
				email         = COALESCE($3, email),
				password_hash = COALESCE($4, password_hash),
				is_active     = COALESCE($5, is_active)
			WHERE id = $1`,
			id, patch.Username, patch.Email, patch.PasswordHash, patch.IsActive)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if patch.Roles != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
				return err
			}
			return replaceRoles(ctx, tx, id, *patch.Roles)
		}
		return nil
	})
	if err != nil {
		return nil, translateWriteError("update user", err)
	}
	return r.GetUser(ctx, id)
}

// DeleteUser removes a user; role links cascade, client ownership
// references are set null by the schema.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return shared.NewStorageError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func replaceRoles(ctx context.Context, tx pgx.Tx, userID int64, roleNames []string) error {
	for _, name := range roleNames {
		tag, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			ON CONFLICT DO NOTHING`, userID, name)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("role %q: %w", name, shared.ErrNotFound)
		}
	}
	return nil
}

func translateWriteError(op string, err error) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return err
	case db.IsUniqueViolation(err):
		return shared.ErrConflict
	default:
		return shared.NewStorageError(op, err)
	}
}

var _ RepositoryPort = (*Repository)(nil)
