package agenda

import (
	"context"
	"errors"
	"time"

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

// ListRange returns a user's appointments starting within [from, to).
func (r *Repository) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, client_id, starts_at, ends_at, kind, notes, created_at
		FROM appointments
		WHERE user_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at`, userID, from, to)
	if err != nil {
		return nil, shared.NewStorageError("list appointments", err)
	}
	defer rows.Close()
	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ClientID, &a.StartsAt, &a.EndsAt, &a.Kind, &a.Notes, &a.CreatedAt); err != nil {
			return nil, shared.NewStorageError("scan appointment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.NewStorageError("list appointments", err)
	}
	return out, nil
}

// Get fetches one appointment.
func (r *Repository) Get(ctx context.Context, id int64) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, client_id, starts_at, ends_at, kind, notes, created_at
		FROM appointments WHERE id = $1`, id)
	var a Appointment
	if err := row.Scan(&a.ID, &a.UserID, &a.ClientID, &a.StartsAt, &a.EndsAt, &a.Kind, &a.Notes, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("get appointment", err)
	}
	return &a, nil
}

// Create inserts an appointment row.
func (r *Repository) Create(ctx context.Context, appt NewAppointment) (*Appointment, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO appointments (user_id, client_id, starts_at, ends_at, kind, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			appt.UserID, appt.ClientID, appt.StartsAt, appt.EndsAt, appt.Kind, appt.Notes)
		return row.Scan(&id)
	})
	if err != nil {
		return nil, shared.NewStorageError("create appointment", err)
	}
	return r.Get(ctx, id)
}

// Delete removes an appointment row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return shared.NewStorageError("delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IsAvailable reports whether the user marked the day as available.
func (r *Repository) IsAvailable(ctx context.Context, userID int64, day time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM availability WHERE user_id = $1 AND day = $2)`,
		userID, day).Scan(&exists)
	if err != nil {
		return false, shared.NewStorageError("availability lookup", err)
	}
	return exists, nil
}

// SetAvailability marks or clears a user's availability for a day.
func (r *Repository) SetAvailability(ctx context.Context, userID int64, day time.Time, available bool) error {
	var err error
	if available {
		_, err = r.pool.Exec(ctx,
			`INSERT INTO availability (user_id, day) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, day)
	} else {
		_, err = r.pool.Exec(ctx,
			`DELETE FROM availability WHERE user_id = $1 AND day = $2`, userID, day)
	}
	return shared.NewStorageError("set availability", err)
}

var _ RepositoryPort = (*Repository)(nil)
