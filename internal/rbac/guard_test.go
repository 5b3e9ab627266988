package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisgestao/jurisgestao/internal/shared"
)

func TestAuthorizeUnqualified(t *testing.T) {
	effective := NewPermissionSet("a.edit")

	assert.True(t, Authorize(effective, Unqualified("a.edit")).Allowed)
	assert.False(t, Authorize(effective, Unqualified("a.view")).Allowed)
	assert.False(t, Authorize(NewPermissionSet(), Unqualified("a.edit")).Allowed)
}

func TestAuthorizeOwnershipQualifiedTable(t *testing.T) {
	const (
		all = "res.update_all"
		own = "res.update_own"
	)

	cases := []struct {
		name    string
		hasAll  bool
		hasOwn  bool
		isOwner bool
		want    bool
	}{
		{"all present, owner", true, true, true, true},
		{"all present, not owner", true, true, false, true},
		{"all only, owner", true, false, true, true},
		{"all only, not owner", true, false, false, true},
		{"own only, owner", false, true, true, true},
		{"own only, not owner", false, true, false, false},
		{"neither, owner", false, false, true, false},
		{"neither, not owner", false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var names []string
			if tc.hasAll {
				names = append(names, all)
			}
			if tc.hasOwn {
				names = append(names, own)
			}
			decision := Authorize(NewPermissionSet(names...), OwnershipQualified{
				All:     all,
				Own:     own,
				IsOwner: tc.isOwner,
			})
			assert.Equal(t, tc.want, decision.Allowed)
			if !tc.want {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestAuthorizeAnyOf(t *testing.T) {
	effective := NewPermissionSet("clients.view_own")

	assert.True(t, Authorize(effective, AnyOf{"clients.create", "clients.view_all", "clients.view_own"}).Allowed)
	assert.False(t, Authorize(effective, AnyOf{"clients.create", "clients.view_all"}).Allowed)
	assert.False(t, Authorize(effective, AnyOf{}).Allowed)
}

func TestAuthorizeNilSpec(t *testing.T) {
	assert.False(t, Authorize(NewPermissionSet("a"), nil).Allowed)
}

func TestDecisionErr(t *testing.T) {
	require.NoError(t, Allow().Err())

	err := Deny("missing permission").Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "missing permission")
}

func TestAssignmentPolicyResolve(t *testing.T) {
	policy := AssignmentPolicy{Elevated: []string{
		shared.PermClientsAssignResponsible,
		shared.PermClientsUpdateAll,
	}}
	other := int64(9)

	t.Run("without elevated permission the actor is forced", func(t *testing.T) {
		effective := NewPermissionSet(shared.PermClientsCreate)
		assert.Equal(t, int64(5), policy.Resolve(effective, 5, &other))
	})

	t.Run("assign_responsible allows arbitrary assignment", func(t *testing.T) {
		effective := NewPermissionSet(shared.PermClientsAssignResponsible)
		assert.Equal(t, other, policy.Resolve(effective, 5, &other))
	})

	t.Run("update_all also allows arbitrary assignment", func(t *testing.T) {
		effective := NewPermissionSet(shared.PermClientsUpdateAll)
		assert.Equal(t, other, policy.Resolve(effective, 5, &other))
	})

	t.Run("nil or zero request defaults to the actor", func(t *testing.T) {
		effective := NewPermissionSet(shared.PermClientsAssignResponsible)
		assert.Equal(t, int64(5), policy.Resolve(effective, 5, nil))
		zero := int64(0)
		assert.Equal(t, int64(5), policy.Resolve(effective, 5, &zero))
	})
}
