package users

import "context"

// RepositoryPort defines data access methods for user administration.
// Mutations run inside a single transaction; role links are replaced
// atomically together with the user row.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, user NewUser) (*User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
