package shared

// Agenda permissions. Appointments belong to the user they are booked for;
// the "all" variants let reception manage other people's agendas.
const (
	PermAgendaViewOwn   = "agenda.view_own"
	PermAgendaViewAll   = "agenda.view_all"
	PermAgendaManageOwn = "agenda.manage_own"
	PermAgendaManageAll = "agenda.manage_all"
)

// AgendaScopes lists all permissions related to the agenda module.
func AgendaScopes() []string {
	return []string{
		PermAgendaViewOwn,
		PermAgendaViewAll,
		PermAgendaManageOwn,
		PermAgendaManageAll,
	}
}
