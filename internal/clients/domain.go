package clients

import "time"

// Client represents a client of the office. CreatedByID and ResponsibleID
// reference users and are set null when the referenced user is deleted.
type Client struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	Document      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedByID   *int64
	ResponsibleID *int64
}

// OwnedBy reports whether userID is the responsible party. A client with no
// responsible user is owned by nobody.
func (c Client) OwnedBy(userID int64) bool {
	return c.ResponsibleID != nil && *c.ResponsibleID == userID
}

// NewClient carries the fields for client creation.
type NewClient struct {
	Name          string
	Email         string
	Phone         string
	Document      string
	Notes         string
	CreatedByID   int64
	ResponsibleID int64
}

// ClientPatch carries partial updates; nil fields are left unchanged.
type ClientPatch struct {
	Name          *string
	Email         *string
	Phone         *string
	Document      *string
	Notes         *string
	ResponsibleID *int64
}
