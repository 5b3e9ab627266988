package rbac

import "context"

// Repository defines the persistence operations the RBAC engine needs.
// Writes are all-or-nothing: implementations run them in one transaction.
type Repository interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
	InsertPermissions(ctx context.Context, defs []PermissionDefinition) error
	ListRoles(ctx context.Context) ([]Role, error)
	RolePermissionNames(ctx context.Context, roleID int64) ([]string, error)
	AttachPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	UserPermissionNames(ctx context.Context, userID int64) ([]string, error)
}
