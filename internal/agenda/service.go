package agenda

import (
	"context"
	"time"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// Service applies the ownership policy to agenda operations. Appointments
// are owned by the user whose agenda they sit on; the "all" permissions let
// reception staff view and manage other people's agendas.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new appointment. A zero UserID books
// on the actor's own agenda.
type CreateInput struct {
	UserID   int64
	ClientID *int64
	StartsAt time.Time
	EndsAt   time.Time
	Kind     string
	Notes    string
}

// ListDay returns the appointments on a user's agenda for one day.
func (s *Service) ListDay(ctx context.Context, actor *rbac.Principal, userID int64, day time.Time) ([]Appointment, error) {
	if err := s.authorizeView(actor, userID); err != nil {
		return nil, err
	}
	from := day.Truncate(24 * time.Hour)
	return s.repo.ListRange(ctx, userID, from, from.AddDate(0, 0, 1))
}

// ListMonth returns the appointments on a user's agenda for one month.
func (s *Service) ListMonth(ctx context.Context, actor *rbac.Principal, userID int64, year int, month time.Month) ([]Appointment, error) {
	if err := s.authorizeView(actor, userID); err != nil {
		return nil, err
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.repo.ListRange(ctx, userID, from, from.AddDate(0, 1, 0))
}

// Create books an appointment. Booking on someone else's agenda requires
// the manage-all permission.
func (s *Service) Create(ctx context.Context, actor *rbac.Principal, input CreateInput) (*Appointment, error) {
	userID := input.UserID
	if userID == 0 {
		userID = actor.UserID
	}
	decision := rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermAgendaManageAll,
		Own:     shared.PermAgendaManageOwn,
		IsOwner: userID == actor.UserID,
	})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, NewAppointment{
		UserID:   userID,
		ClientID: input.ClientID,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Kind:     input.Kind,
		Notes:    input.Notes,
	})
}

// Delete removes an appointment the actor may manage.
func (s *Service) Delete(ctx context.Context, actor *rbac.Principal, id int64) error {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	decision := rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermAgendaManageAll,
		Own:     shared.PermAgendaManageOwn,
		IsOwner: appt.OwnedBy(actor.UserID),
	})
	if err := decision.Err(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// IsAvailable reports whether a user marked a day as available.
func (s *Service) IsAvailable(ctx context.Context, actor *rbac.Principal, userID int64, day time.Time) (bool, error) {
	if err := s.authorizeView(actor, userID); err != nil {
		return false, err
	}
	return s.repo.IsAvailable(ctx, userID, day.Truncate(24*time.Hour))
}

// ToggleAvailability flips the actor's own availability for a day.
func (s *Service) ToggleAvailability(ctx context.Context, actor *rbac.Principal, day time.Time) (bool, error) {
	decision := rbac.Authorize(actor.Permissions, rbac.AnyOf{
		shared.PermAgendaManageOwn,
		shared.PermAgendaManageAll,
	})
	if err := decision.Err(); err != nil {
		return false, err
	}
	day = day.Truncate(24 * time.Hour)
	current, err := s.repo.IsAvailable(ctx, actor.UserID, day)
	if err != nil {
		return false, err
	}
	if err := s.repo.SetAvailability(ctx, actor.UserID, day, !current); err != nil {
		return false, err
	}
	return !current, nil
}

func (s *Service) authorizeView(actor *rbac.Principal, userID int64) error {
	return rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermAgendaViewAll,
		Own:     shared.PermAgendaViewOwn,
		IsOwner: userID == actor.UserID,
	}).Err()
}
