package clients

import (
	"context"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// assignPolicy lists the permissions that allow pointing a client at a
// responsible user other than the acting user.
var assignPolicy = rbac.AssignmentPolicy{Elevated: []string{
	shared.PermClientsAssignResponsible,
	shared.PermClientsUpdateAll,
}}

// Service applies the ownership policy to every client operation. The guard
// is consulted fresh on each call; handlers only gate route visibility.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new client.
type CreateInput struct {
	Name          string
	Email         string
	Phone         string
	Document      string
	Notes         string
	ResponsibleID *int64
}

// UpdateInput carries partial client changes; nil fields are unchanged.
type UpdateInput struct {
	Name          *string
	Email         *string
	Phone         *string
	Document      *string
	Notes         *string
	ResponsibleID *int64
}

// List returns the clients visible to the actor: every client with the
// "all" permission, only owned clients with the "own" permission, and an
// empty result with neither. No visible rows is a valid outcome, not an
// error.
func (s *Service) List(ctx context.Context, actor *rbac.Principal) ([]Client, error) {
	switch {
	case actor.Permissions.Has(shared.PermClientsViewAll):
		return s.repo.ListAll(ctx)
	case actor.Permissions.Has(shared.PermClientsViewOwn):
		return s.repo.ListByResponsible(ctx, actor.UserID)
	default:
		return []Client{}, nil
	}
}

// Get returns one client if the actor may view it.
func (s *Service) Get(ctx context.Context, actor *rbac.Principal, id int64) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermClientsViewAll,
		Own:     shared.PermClientsViewOwn,
		IsOwner: client.OwnedBy(actor.UserID),
	})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// Create adds a client. Without an elevated assignment permission any
// requested responsible party is overridden to the actor.
func (s *Service) Create(ctx context.Context, actor *rbac.Principal, input CreateInput) (*Client, error) {
	if err := rbac.Authorize(actor.Permissions, rbac.Unqualified(shared.PermClientsCreate)).Err(); err != nil {
		return nil, err
	}
	responsible := assignPolicy.Resolve(actor.Permissions, actor.UserID, input.ResponsibleID)
	return s.repo.Create(ctx, NewClient{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Document:      input.Document,
		Notes:         input.Notes,
		CreatedByID:   actor.UserID,
		ResponsibleID: responsible,
	})
}

// Update edits a client the actor may update. Changing the responsible
// party requires an elevated assignment permission and is refused outright,
// while unrelated field edits still go through under "update own".
func (s *Service) Update(ctx context.Context, actor *rbac.Principal, id int64, input UpdateInput) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermClientsUpdateAll,
		Own:     shared.PermClientsUpdateOwn,
		IsOwner: client.OwnedBy(actor.UserID),
	})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.ResponsibleID != nil && !sameResponsible(client.ResponsibleID, *input.ResponsibleID) {
		if !assignPolicy.CanAssign(actor.Permissions) {
			return nil, rbac.Deny("changing the responsible user requires an elevated assignment permission").Err()
		}
	}

	return s.repo.Update(ctx, id, ClientPatch{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Document:      input.Document,
		Notes:         input.Notes,
		ResponsibleID: input.ResponsibleID,
	})
}

// Delete removes a client the actor may delete.
func (s *Service) Delete(ctx context.Context, actor *rbac.Principal, id int64) error {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	decision := rbac.Authorize(actor.Permissions, rbac.OwnershipQualified{
		All:     shared.PermClientsDeleteAll,
		Own:     shared.PermClientsDeleteOwn,
		IsOwner: client.OwnedBy(actor.UserID),
	})
	if err := decision.Err(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func sameResponsible(current *int64, requested int64) bool {
	return current != nil && *current == requested
}
