package users

import "time"

// User represents a staff account for administration.
type User struct {
	ID        int64
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	Roles     []string
}

// NewUser carries the fields required to create an account.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	Roles        []string
}

// UserPatch carries partial updates; nil fields are left unchanged.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
	Roles        *[]string
}
