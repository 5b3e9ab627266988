package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// PermissionSource resolves a user's effective permissions from durable state.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID int64) (rbac.PermissionSet, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo  Repository
	perms PermissionSource
}

// NewService constructs a new Service.
func NewService(repo Repository, perms PermissionSource) *Service {
	return &Service{repo: repo, perms: perms}
}

// Authenticate validates credentials and builds the session principal with a
// freshly resolved permission set. Unknown accounts, inactive accounts and
// wrong passwords are indistinguishable to the caller; storage failures are
// surfaced as such, not folded into the credential error.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*rbac.Principal, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	effective, err := s.perms.EffectivePermissions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &rbac.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		SessionID:   uuid.NewString(),
		Permissions: effective,
	}, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
