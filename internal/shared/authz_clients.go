package shared

// Client portfolio permissions. View, update and delete come in own/all
// pairs: the "own" variant only reaches clients the actor is responsible for.
const (
	PermClientsViewOwn   = "clients.view_own"
	PermClientsViewAll   = "clients.view_all"
	PermClientsCreate    = "clients.create"
	PermClientsUpdateOwn = "clients.update_own"
	PermClientsUpdateAll = "clients.update_all"
	PermClientsDeleteOwn = "clients.delete_own"
	PermClientsDeleteAll = "clients.delete_all"

	// PermClientsAssignResponsible allows pointing a client at a
	// responsible user other than the acting user.
	PermClientsAssignResponsible = "clients.assign_responsible"
)

// ClientsScopes lists all permissions related to the client portfolio.
func ClientsScopes() []string {
	return []string{
		PermClientsViewOwn,
		PermClientsViewAll,
		PermClientsCreate,
		PermClientsUpdateOwn,
		PermClientsUpdateAll,
		PermClientsDeleteOwn,
		PermClientsDeleteAll,
		PermClientsAssignResponsible,
	}
}
