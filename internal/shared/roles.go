package shared

// Default role names created at first run.
const (
	RoleAdmin     = "admin"
	RoleLawyer    = "lawyer"
	RoleReception = "reception"
	RoleIntern    = "intern"
)

// RoleDefinition describes a role to ensure at bootstrap.
type RoleDefinition struct {
	Name        string
	Description string
}

// DefaultRoles returns the roles the office starts with.
func DefaultRoles() []RoleDefinition {
	return []RoleDefinition{
		{Name: RoleAdmin, Description: "System administrator"},
		{Name: RoleLawyer, Description: "Lawyer with access to their own agenda and clients"},
		{Name: RoleReception, Description: "Front desk: scheduling and client intake"},
		{Name: RoleIntern, Description: "Support staff with restricted permissions"},
	}
}
