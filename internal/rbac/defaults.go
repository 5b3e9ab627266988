package rbac

import "github.com/jurisgestao/jurisgestao/internal/shared"

// defaultDescriptions maps every catalog permission to the description it is
// created with. Descriptions are only used when an entry is first created.
var defaultDescriptions = map[string]string{
	shared.PermUsersView:   "View the user list",
	shared.PermUsersCreate: "Create users",
	shared.PermUsersUpdate: "Edit users",
	shared.PermUsersDelete: "Delete users",

	shared.PermClientsViewOwn:           "View own clients",
	shared.PermClientsViewAll:           "View all clients",
	shared.PermClientsCreate:            "Create clients",
	shared.PermClientsUpdateOwn:         "Edit own clients",
	shared.PermClientsUpdateAll:         "Edit all clients",
	shared.PermClientsDeleteOwn:         "Delete own clients",
	shared.PermClientsDeleteAll:         "Delete all clients",
	shared.PermClientsAssignResponsible: "Assign a client to another responsible user",

	shared.PermAgendaViewOwn:   "View own agenda",
	shared.PermAgendaViewAll:   "View all agendas",
	shared.PermAgendaManageOwn: "Manage own appointments",
	shared.PermAgendaManageAll: "Manage all appointments",
}

// DefaultCatalog returns the fixed universe of permissions the application
// ships with, assembled from each module's scope list so the catalog can
// never drift from the constants the services enforce with.
func DefaultCatalog() []PermissionDefinition {
	var defs []PermissionDefinition
	for _, scope := range [][]string{
		shared.UsersScopes(),
		shared.ClientsScopes(),
		shared.AgendaScopes(),
	} {
		for _, name := range scope {
			defs = append(defs, PermissionDefinition{Name: name, Description: defaultDescriptions[name]})
		}
	}
	return defs
}

// DefaultRoleGrants maps default roles to the permissions bound at bootstrap.
// The admin role receives the wildcard and therefore every permission in the
// catalog at bind time.
func DefaultRoleGrants() map[string][]string {
	return map[string][]string{
		shared.RoleAdmin: {Wildcard},
		shared.RoleLawyer: {
			shared.PermClientsViewOwn,
			shared.PermClientsCreate,
			shared.PermClientsUpdateOwn,
			shared.PermClientsDeleteOwn,
			shared.PermAgendaViewOwn,
			shared.PermAgendaManageOwn,
		},
		shared.RoleReception: {
			shared.PermUsersView,
			shared.PermClientsViewAll,
			shared.PermClientsCreate,
			shared.PermClientsAssignResponsible,
			shared.PermAgendaViewAll,
			shared.PermAgendaManageAll,
		},
		shared.RoleIntern: {
			shared.PermUsersView,
			shared.PermClientsViewOwn,
			shared.PermAgendaViewOwn,
		},
	}
}
