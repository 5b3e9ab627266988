package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

type mockRepository struct {
	users      map[int64]*User
	nextID     int64
	knownRoles map[string]struct{}
	byUsername map[string]int64
}

func newMockRepository(roles ...string) *mockRepository {
	m := &mockRepository{
		users:      make(map[int64]*User),
		nextID:     1,
		knownRoles: make(map[string]struct{}),
		byUsername: make(map[string]int64),
	}
	for _, r := range roles {
		m.knownRoles[r] = struct{}{}
	}
	return m
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	if _, ok := m.byUsername[user.Username]; ok {
		return nil, shared.ErrConflict
	}
	for _, role := range user.Roles {
		if _, ok := m.knownRoles[role]; !ok {
			return nil, fmt.Errorf("role %q: %w", role, shared.ErrNotFound)
		}
	}
	u := &User{
		ID:       m.nextID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
		Roles:    user.Roles,
	}
	m.users[u.ID] = u
	m.byUsername[u.Username] = u.ID
	m.nextID++
	return u, nil
}

func (m *mockRepository) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.Roles != nil {
		for _, role := range *patch.Roles {
			if _, ok := m.knownRoles[role]; !ok {
				return nil, fmt.Errorf("role %q: %w", role, shared.ErrNotFound)
			}
		}
		u.Roles = *patch.Roles
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func fakeHash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func adminActor() *rbac.Principal {
	return &rbac.Principal{
		UserID:      1,
		Username:    "admin",
		Permissions: rbac.NewPermissionSet(shared.UsersScopes()...),
	}
}

func viewerActor() *rbac.Principal {
	return &rbac.Principal{
		UserID:      2,
		Username:    "viewer",
		Permissions: rbac.NewPermissionSet(shared.PermUsersView),
	}
}

func TestCreateRequiresPermission(t *testing.T) {
	svc := NewService(newMockRepository(shared.RoleLawyer), fakeHash)

	_, err := svc.Create(context.Background(), viewerActor(), CreateInput{
		Username: "newbie", Email: "n@office.example", Password: "longenough",
	})
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))

	user, err := svc.Create(context.Background(), adminActor(), CreateInput{
		Username: "newbie", Email: "n@office.example", Password: "longenough",
		IsActive: true, Roles: []string{shared.RoleLawyer, shared.RoleLawyer},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{shared.RoleLawyer}, user.Roles, "duplicate role names are deduplicated")
}

func TestCreateConflictPropagates(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, fakeHash)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), CreateInput{Username: "dup", Email: "a@x", Password: "longenough"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, adminActor(), CreateInput{Username: "dup", Email: "b@x", Password: "longenough"})
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestUpdateHashesNewPassword(t *testing.T) {
	repo := newMockRepository()
	var gotPlain string
	hash := func(plain string) (string, error) {
		gotPlain = plain
		return "h", nil
	}
	svc := NewService(repo, hash)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Username: "u", Email: "u@x", Password: "firstsecret"})
	require.NoError(t, err)

	newPass := "secondsecret"
	_, err = svc.Update(ctx, adminActor(), created.ID, UpdateInput{Password: &newPass})
	require.NoError(t, err)
	assert.Equal(t, "secondsecret", gotPlain)
}

func TestUpdateUnknownRoleFails(t *testing.T) {
	repo := newMockRepository(shared.RoleLawyer)
	svc := NewService(repo, fakeHash)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Username: "u", Email: "u@x", Password: "longenough"})
	require.NoError(t, err)

	roles := []string{"advocate"}
	_, err = svc.Update(ctx, adminActor(), created.ID, UpdateInput{Roles: &roles})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestListAndDeletePermissions(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, fakeHash)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor(), CreateInput{Username: "u", Email: "u@x", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.List(ctx, viewerActor())
	assert.NoError(t, err, "viewer may list")

	err = svc.Delete(ctx, viewerActor(), created.ID)
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))

	require.NoError(t, svc.Delete(ctx, adminActor(), created.ID))
	err = svc.Delete(ctx, adminActor(), created.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestNoActorPermissionsDeniesEverything(t *testing.T) {
	svc := NewService(newMockRepository(), fakeHash)
	bare := &rbac.Principal{UserID: 3, Username: "bare", Permissions: rbac.NewPermissionSet()}

	_, err := svc.List(context.Background(), bare)
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
	_, err = svc.Get(context.Background(), bare, 1)
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
}
