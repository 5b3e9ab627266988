package agenda

import (
	"context"
	"time"
)

// RepositoryPort defines data access methods for the agenda.
type RepositoryPort interface {
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]Appointment, error)
	Get(ctx context.Context, id int64) (*Appointment, error)
	Create(ctx context.Context, appt NewAppointment) (*Appointment, error)
	Delete(ctx context.Context, id int64) error

	IsAvailable(ctx context.Context, userID int64, day time.Time) (bool, error)
	SetAvailability(ctx context.Context, userID int64, day time.Time, available bool) error
}
