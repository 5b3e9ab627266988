package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

type mockRepository struct {
	byName map[string]Role
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{byName: make(map[string]Role), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Role, error) {
	out := make([]Role, 0, len(m.byName))
	for _, role := range m.byName {
		out = append(out, role)
	}
	return out, nil
}

func (m *mockRepository) EnsureDefaults(ctx context.Context, defs []shared.RoleDefinition) error {
	for _, def := range defs {
		if _, ok := m.byName[def.Name]; ok {
			continue
		}
		m.byName[def.Name] = Role{ID: m.nextID, Name: def.Name, Description: def.Description}
		m.nextID++
	}
	return nil
}

func TestEnsureDefaultsIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	assert.Len(t, repo.byName, 4)

	// An edited description survives a second bootstrap.
	edited := repo.byName[shared.RoleIntern]
	edited.Description = "Trainee"
	repo.byName[shared.RoleIntern] = edited

	require.NoError(t, svc.EnsureDefaults(ctx))
	assert.Len(t, repo.byName, 4)
	assert.Equal(t, "Trainee", repo.byName[shared.RoleIntern].Description)
}

func TestListRequiresUsersView(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	admin := &rbac.Principal{UserID: 1, Permissions: rbac.NewPermissionSet(shared.PermUsersView)}
	roles, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, roles, 4)

	intern := &rbac.Principal{UserID: 2, Permissions: rbac.NewPermissionSet(shared.PermClientsViewOwn)}
	_, err = svc.List(ctx, intern)
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
}
