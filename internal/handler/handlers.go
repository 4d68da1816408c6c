package handler

import (
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single
// wired object.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Users    *UsersHandler
	Contacts *ContactsHandler
	Jobs     *JobsHandler
	Schedule *ScheduleHandler
	Invoices *InvoicesHandler
	Inbox    *InboxHandler
	Leads    *LeadsHandler
	Catalog  *CatalogHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Users:    NewUsersHandler(s, services.Users),
		Contacts: NewContactsHandler(s, services.Contacts),
		Jobs:     NewJobsHandler(s, services.Jobs),
		Schedule: NewScheduleHandler(s, services.Schedule),
		Invoices: NewInvoicesHandler(s, services.Invoices),
		Inbox:    NewInboxHandler(s, services.Inbox),
		Leads:    NewLeadsHandler(s, services.Leads),
		Catalog:  NewCatalogHandler(s, services.Catalog),
	}
}
