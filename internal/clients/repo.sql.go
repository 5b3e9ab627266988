package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jurisgestao/jurisgestao/internal/platform/db"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

const clientColumns = `id, name, email, phone, document, notes, created_at, updated_at, created_by_id, responsible_id`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll returns every client, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id DESC`)
	if err != nil {
		return nil, shared.NewStorageError("list clients", err)
	}
	return scanClients(rows)
}

// ListByResponsible returns the clients the given user is responsible for.
func (r *Repository) ListByResponsible(ctx context.Context, userID int64) ([]Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE responsible_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, shared.NewStorageError("list clients by responsible", err)
	}
	return scanClients(rows)
}

// Get fetches one client.
func (r *Repository) Get(ctx context.Context, id int64) (*Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("get client", err)
	}
	return client, nil
}

// Create inserts a client row.
func (r *Repository) Create(ctx context.Context, client NewClient) (*Client, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO clients (name, email, phone, document, notes, created_by_id, responsible_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			client.Name, client.Email, client.Phone, client.Document, client.Notes,
			client.CreatedByID, client.ResponsibleID)
		return row.Scan(&id)
	})
	if err != nil {
		return nil, shared.NewStorageError("create client", err)
	}
	return r.Get(ctx, id)
}

// Update applies a partial update in one transaction.
func (r *Repository) Update(ctx context.Context, id int64, patch ClientPatch) (*Client, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE clients SET
				name           = COALESCE($2, name),
				email          = COALESCE($3, email),
				phone          = COALESCE($4, phone),
				document       = COALESCE($5, document),
				notes          = COALESCE($6, notes),
				responsible_id = COALESCE($7, responsible_id),
				updated_at     = now()
			WHERE id = $1`,
			id, patch.Name, patch.Email, patch.Phone, patch.Document, patch.Notes, patch.ResponsibleID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.NewStorageError("update client", err)
	}
	return r.Get(ctx, id)
}

// Delete removes a client row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return shared.NewStorageError("delete client", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanClients(rows pgx.Rows) ([]Client, error) {
	defer rows.Close()
	var out []Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, shared.NewStorageError("scan client", err)
		}
		out = append(out, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list clients", err)
	}
	return out, nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt, &c.CreatedByID, &c.ResponsibleID); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ RepositoryPort = (*Repository)(nil)
