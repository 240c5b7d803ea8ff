package di

import (
	"agendad/internal/schedule"
	"agendad/internal/services"
)

// provideAgendaProvider narrows the service interface to the slice the
// reminder scheduler consumes.
func provideAgendaProvider(service services.AgendaServiceInterface) schedule.AgendaProvider {
	return service
}
