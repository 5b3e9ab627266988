package shared

// User administration permissions.
const (
	PermUsersView   = "users.view"
	PermUsersCreate = "users.create"
	PermUsersUpdate = "users.update"
	PermUsersDelete = "users.delete"
)

// UsersScopes lists all permissions related to user administration.
func UsersScopes() []string {
	return []string{
		PermUsersView,
		PermUsersCreate,
		PermUsersUpdate,
		PermUsersDelete,
	}
}
