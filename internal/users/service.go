package users

import (
	"context"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// HashFunc turns a plain-text password into its stored hash.
type HashFunc func(plain string) (string, error)

// Service handles user administration. Every operation authorizes the
// acting principal through the guard before touching storage.
type Service struct {
	repo RepositoryPort
	hash HashFunc
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, hash HashFunc) *Service {
	return &Service{repo: repo, hash: hash}
}

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Username string
	Email    string
	Password string
	IsActive bool
	Roles    []string
}

// UpdateInput carries partial account changes; nil fields are unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
	Roles    *[]string
}

// List returns all accounts.
func (s *Service) List(ctx context.Context, actor *rbac.Principal) ([]User, error) {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersView)).Err(); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, actor *rbac.Principal, id int64) (*User, error) {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersView)).Err(); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, id)
}

// Create adds an account with the given roles.
func (s *Service) Create(ctx context.Context, actor *rbac.Principal, input CreateInput) (*User, error) {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersCreate)).Err(); err != nil {
		return nil, err
	}
	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, NewUser{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     input.IsActive,
		Roles:        dedupe(input.Roles),
	})
}

// Update applies partial changes to an account.
func (s *Service) Update(ctx context.Context, actor *rbac.Principal, id int64, input UpdateInput) (*User, error) {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersUpdate)).Err(); err != nil {
		return nil, err
	}
	patch := UserPatch{
		Username: input.Username,
		Email:    input.Email,
		IsActive: input.IsActive,
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := s.hash(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	if input.Roles != nil {
		roles := dedupe(*input.Roles)
		patch.Roles = &roles
	}
	return s.repo.UpdateUser(ctx, id, patch)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, actor *rbac.Principal, id int64) error {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermUsersDelete)).Err(); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
