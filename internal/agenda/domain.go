package agenda

import "time"

// Appointment is a scheduled engagement on a user's agenda. ClientID is
// optional and set null when the client is deleted.
type Appointment struct {
	ID        int64
	UserID    int64
	ClientID  *int64
	StartsAt  time.Time
	EndsAt    time.Time
	Kind      string
	Notes     string
	CreatedAt time.Time
}

// OwnedBy reports whether the appointment sits on userID's agenda.
func (a Appointment) OwnedBy(userID int64) bool {
	return a.UserID == userID
}

// NewAppointment carries the fields for appointment creation.
type NewAppointment struct {
	UserID   int64
	ClientID *int64
	StartsAt time.Time
	EndsAt   time.Time
	Kind     string
	Notes    string
}
