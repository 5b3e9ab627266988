package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	permissions []Permission
	roles       []Role
	rolePerms   map[int64]map[int64]struct{} // roleID -> permission ids
	userRoles   map[int64][]int64            // userID -> role ids
	nextPermID  int64

	insertCalls int
	attachCalls int
	listError   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		rolePerms:  make(map[int64]map[int64]struct{}),
		userRoles:  make(map[int64][]int64),
		nextPermID: 1,
	}
}

func (m *mockRepository) addRole(id int64, name string) {
	m.roles = append(m.roles, Role{ID: id, Name: name})
	if m.rolePerms[id] == nil {
		m.rolePerms[id] = make(map[int64]struct{})
	}
}

func (m *mockRepository) permByName(name string) (Permission, bool) {
	for _, p := range m.permissions {
		if p.Name == name {
			return p, true
		}
	}
	return Permission{}, false
}

func (m *mockRepository) ListPermissions(ctx context.Context) ([]Permission, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]Permission, len(m.permissions))
	copy(out, m.permissions)
	return out, nil
}

func (m *mockRepository) InsertPermissions(ctx context.Context, defs []PermissionDefinition) error {
	m.insertCalls++
	for _, def := range defs {
		if _, ok := m.permByName(def.Name); ok {
			continue
		}
		m.permissions = append(m.permissions, Permission{ID: m.nextPermID, Name: def.Name, Description: def.Description})
		m.nextPermID++
	}
	return nil
}

func (m *mockRepository) ListRoles(ctx context.Context) ([]Role, error) {
	out := make([]Role, len(m.roles))
	copy(out, m.roles)
	return out, nil
}

func (m *mockRepository) RolePermissionNames(ctx context.Context, roleID int64) ([]string, error) {
	var names []string
	for permID := range m.rolePerms[roleID] {
		for _, p := range m.permissions {
			if p.ID == permID {
				names = append(names, p.Name)
			}
		}
	}
	return names, nil
}

func (m *mockRepository) AttachPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	m.attachCalls++
	if m.rolePerms[roleID] == nil {
		m.rolePerms[roleID] = make(map[int64]struct{})
	}
	for _, id := range permissionIDs {
		m.rolePerms[roleID][id] = struct{}{}
	}
	return nil
}

func (m *mockRepository) UserPermissionNames(ctx context.Context, userID int64) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, roleID := range m.userRoles[userID] {
		for permID := range m.rolePerms[roleID] {
			for _, p := range m.permissions {
				if p.ID == permID {
					if _, ok := seen[p.Name]; !ok {
						seen[p.Name] = struct{}{}
						names = append(names, p.Name)
					}
				}
			}
		}
	}
	return names, nil
}

func TestEnsureCatalogCreatesMissingOnly(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	defs := []PermissionDefinition{
		{Name: "a.view", Description: "view"},
		{Name: "a.edit", Description: "edit"},
	}

	catalog, err := svc.EnsureCatalog(ctx, defs)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
	assert.Equal(t, 1, repo.insertCalls)

	// Re-running is a no-op: no further write is issued.
	catalog, err = svc.EnsureCatalog(ctx, defs)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
	assert.Equal(t, 1, repo.insertCalls)
}

func TestEnsureCatalogKeepsEditedDescriptions(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{{Name: "a.view", Description: "original"}})
	require.NoError(t, err)

	// Simulate an admin editing the description out of band.
	repo.permissions[0].Description = "edited"

	catalog, err := svc.EnsureCatalog(ctx, []PermissionDefinition{{Name: "a.view", Description: "original"}})
	require.NoError(t, err)
	assert.Equal(t, "edited", catalog[0].Description)
}

func TestEnsureCatalogPropagatesStorageFailure(t *testing.T) {
	repo := newMockRepository()
	repo.listError = errors.New("connection refused")
	svc := NewService(repo, nil)

	_, err := svc.EnsureCatalog(context.Background(), DefaultCatalog())
	require.Error(t, err)
}

func TestBindDefaultsIsAdditiveAndIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{
		{Name: "a.view", Description: "view"},
		{Name: "a.edit", Description: "edit"},
	})
	require.NoError(t, err)
	repo.addRole(1, "editor")

	grants := map[string][]string{"editor": {"a.edit"}}
	require.NoError(t, svc.BindDefaults(ctx, grants))

	names, err := repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.edit"}, names)

	// A manual grant must survive a re-run.
	manual, ok := repo.permByName("a.view")
	require.True(t, ok)
	repo.rolePerms[1][manual.ID] = struct{}{}

	require.NoError(t, svc.BindDefaults(ctx, grants))
	names, err = repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.edit", "a.view"}, names)
}

func TestBindDefaultsWildcardFollowsCatalogGrowth(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{{Name: "a.view", Description: "view"}})
	require.NoError(t, err)
	repo.addRole(1, "admin")

	grants := map[string][]string{"admin": {Wildcard}}
	require.NoError(t, svc.BindDefaults(ctx, grants))

	names, err := repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.view"}, names)

	// Growing the catalog and re-binding extends wildcard roles.
	_, err = svc.EnsureCatalog(ctx, []PermissionDefinition{
		{Name: "a.view", Description: "view"},
		{Name: "a.edit", Description: "edit"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.BindDefaults(ctx, grants))

	names, err = repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.view", "a.edit"}, names)
}

func TestBindDefaultsRejectsUnknownNames(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{{Name: "a.view", Description: "view"}})
	require.NoError(t, err)
	repo.addRole(1, "editor")

	err = svc.BindDefaults(ctx, map[string][]string{"editor": {"a.vew"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPermission))
	assert.Contains(t, err.Error(), "a.vew")

	err = svc.BindDefaults(ctx, map[string][]string{"edtor": {"a.view"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))

	// Nothing was attached by the failed runs.
	names, err := repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEffectivePermissionsUnionAcrossRoles(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{
		{Name: "a.view", Description: "view"},
		{Name: "a.edit", Description: "edit"},
		{Name: "b.view", Description: "view b"},
	})
	require.NoError(t, err)
	repo.addRole(1, "viewer")
	repo.addRole(2, "editor")
	require.NoError(t, svc.BindDefaults(ctx, map[string][]string{
		"viewer": {"a.view", "b.view"},
		"editor": {"a.view", "a.edit"},
	}))

	repo.userRoles[7] = []int64{1, 2}
	set, err := svc.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.view", "a.edit", "b.view"}, set.Names())

	// Removing a role shrinks the set on the next resolution.
	repo.userRoles[7] = []int64{1}
	set, err = svc.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.view", "b.view"}, set.Names())

	// No roles resolves to the empty set.
	repo.userRoles[7] = nil
	set, err = svc.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, set.Names())
}

func TestCatalogToDecisionFlow(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, []PermissionDefinition{
		{Name: "a.view", Description: "view"},
		{Name: "a.edit", Description: "edit"},
	})
	require.NoError(t, err)
	repo.addRole(1, "editor")
	require.NoError(t, svc.BindDefaults(ctx, map[string][]string{
		"editor": {"a.edit"},
	}))
	repo.userRoles[1] = []int64{1}

	set, err := svc.EffectivePermissions(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.edit"}, set.Names())

	assert.False(t, Authorize(set, Unqualified("a.view")).Allowed)
	assert.True(t, Authorize(set, Unqualified("a.edit")).Allowed)
}

func TestDefaultGrantsBindCleanly(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.EnsureCatalog(ctx, DefaultCatalog())
	require.NoError(t, err)
	for i, def := range []string{"admin", "lawyer", "reception", "intern"} {
		repo.addRole(int64(i+1), def)
	}

	require.NoError(t, svc.BindDefaults(ctx, DefaultRoleGrants()))

	// Admin holds the wildcard, so it carries the whole catalog.
	names, err := repo.RolePermissionNames(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, names, len(DefaultCatalog()))
}
